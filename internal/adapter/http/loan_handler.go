package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sacco-backend/internal/usecase/coverage"
	"sacco-backend/internal/usecase/loanrequest"
)

// LoanSubmitter is the slice of the loanrequest usecase this handler needs.
type LoanSubmitter interface {
	Submit(ctx context.Context, in loanrequest.SubmitInput) (*loanrequest.LoanDTO, error)
	Get(ctx context.Context, loanID string) (*loanrequest.LoanDetailDTO, error)
}

type LoanHandler struct{ uc LoanSubmitter }

func NewLoanHandler(uc LoanSubmitter) *LoanHandler { return &LoanHandler{uc: uc} }

type guarantorSelectionReq struct {
	GuarantorID     uint64 `json:"guarantor_id"     validate:"required"`
	SharesRequested int64  `json:"shares_requested" validate:"required,gt=0"`
}

type submitLoanReq struct {
	RequestedAmount float64                 `json:"requested_amount" validate:"required,gt=0,dec2"`
	RepaymentMonths int                     `json:"repayment_months" validate:"required,gte=1,lte=6"`
	Guarantors      []guarantorSelectionReq `json:"guarantors"       validate:"dive"`
}

func (h *LoanHandler) SubmitLoan(c echo.Context) error {
	borrowerID, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	var req submitLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := loanrequest.SubmitInput{
		BorrowerID:      borrowerID,
		Amount:          req.RequestedAmount,
		RepaymentMonths: req.RepaymentMonths,
	}
	for _, g := range req.Guarantors {
		in.Guarantors = append(in.Guarantors, coverage.Selection{
			GuarantorID:   g.GuarantorID,
			SharesPledged: g.SharesRequested,
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// actorID reads the acting member id set upstream by the auth layer.
func actorID(c echo.Context) (uint64, error) {
	raw := c.Request().Header.Get("X-User-Id")
	return strconv.ParseUint(raw, 10, 64)
}
