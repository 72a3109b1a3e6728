package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/usecase/loanrequest"
)

type GuarantorResponder interface {
	Respond(ctx context.Context, in loanrequest.RespondInput) (*loanrequest.RespondResult, error)
	AddGuarantor(ctx context.Context, in loanrequest.AddGuarantorInput) (*guarantor.Guarantee, error)
}

type GuarantorHandler struct{ uc GuarantorResponder }

func NewGuarantorHandler(uc GuarantorResponder) *GuarantorHandler { return &GuarantorHandler{uc: uc} }

type respondReq struct {
	Decision       string `json:"decision"         validate:"required,oneof=accepted declined"`
	SharesToPledge int64  `json:"shares_to_pledge" validate:"gte=0"`
}

func (h *GuarantorHandler) RespondToRequest(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	var req respondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Respond(c.Request().Context(), loanrequest.RespondInput{
		RequestID:     requestID,
		GuarantorID:   actor,
		Accept:        req.Decision == "accepted",
		SharesPledged: req.SharesToPledge,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

type addGuarantorReq struct {
	GuarantorID     uint64 `json:"guarantor_id"     validate:"required"`
	SharesRequested int64  `json:"shares_requested" validate:"required,gt=0"`
}

// SendRequest adds a pending guarantor request to a loan still collecting
// pledges, so a declined guarantor can be replaced.
func (h *GuarantorHandler) SendRequest(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	var req addGuarantorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	g, err := h.uc.AddGuarantor(c.Request().Context(), loanrequest.AddGuarantorInput{
		LoanID:      loanID,
		BorrowerID:  actor,
		GuarantorID: req.GuarantorID,
		Shares:      req.SharesRequested,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, g)
}
