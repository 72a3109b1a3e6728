package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domainPenalty "sacco-backend/internal/domain/penalty"
	penaltyuc "sacco-backend/internal/usecase/penalty"
)

type PenaltyRunner interface {
	RunMonthlySweep(ctx context.Context, today time.Time) (*penaltyuc.SweepResult, error)
	MarkPaid(ctx context.Context, penaltyID string) (*domainPenalty.Penalty, error)
	Waive(ctx context.Context, penaltyID string) (*domainPenalty.Penalty, error)
}

type PenaltyHandler struct{ uc PenaltyRunner }

func NewPenaltyHandler(uc PenaltyRunner) *PenaltyHandler { return &PenaltyHandler{uc: uc} }

// RunSweep is invoked by the external scheduler once per day.
func (h *PenaltyHandler) RunSweep(c echo.Context) error {
	res, err := h.uc.RunMonthlySweep(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PenaltyHandler) MarkPaid(c echo.Context) error {
	p, err := h.uc.MarkPaid(c.Request().Context(), c.Param("penalty_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PenaltyHandler) Waive(c echo.Context) error {
	p, err := h.uc.Waive(c.Request().Context(), c.Param("penalty_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}
