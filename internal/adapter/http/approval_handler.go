package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	domainApproval "sacco-backend/internal/domain/approval"
	approvaluc "sacco-backend/internal/usecase/approval"
)

type StepDecider interface {
	Decide(ctx context.Context, in approvaluc.DecideInput) (*approvaluc.DecideResult, error)
}

type ApprovalHandler struct{ uc StepDecider }

func NewApprovalHandler(uc StepDecider) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type decideReq struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

func (h *ApprovalHandler) DecideStep(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Decide(c.Request().Context(), approvaluc.DecideInput{
		LoanID:   loanID,
		ActorID:  actor,
		Decision: domainApproval.Decision(req.Decision),
		Comments: req.Comments,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
