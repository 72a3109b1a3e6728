// Package penalty runs the monthly late-payment sweep and the admin
// pay/waive transitions.
package penalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sacco-backend/internal/domain/ledger"
	domainPenalty "sacco-backend/internal/domain/penalty"
)

// Policy carries the externally configured constants: the fixed penalty
// amount, the monthly due day and the day the sweep applies.
type Policy struct {
	Amount     float64
	DueDay     int
	PenaltyDay int
}

type Usecase struct {
	penalties domainPenalty.Repository
	facts     ledger.Facts
	policy    Policy
	log       *zap.SugaredLogger
}

func NewUsecase(penalties domainPenalty.Repository, facts ledger.Facts, policy Policy, log *zap.SugaredLogger) *Usecase {
	return &Usecase{penalties: penalties, facts: facts, policy: policy, log: log}
}

type SweepResult struct {
	Penalties []domainPenalty.Penalty `json:"penalties"`
	Created   int                     `json:"created"`
	Skipped   int                     `json:"skipped"`
	Message   string                  `json:"message"`
}

// RunMonthlySweep creates penalties for members who missed the monthly
// due date. Off the penalty day it is a no-op. A repayment dated exactly
// on the due date counts as on time. Re-runs on the same day are safe:
// the (user, type, due date) unique constraint turns duplicates into
// skips.
func (u *Usecase) RunMonthlySweep(ctx context.Context, today time.Time) (*SweepResult, error) {
	if today.Day() != u.policy.PenaltyDay {
		return &SweepResult{Message: "not penalty application day"}, nil
	}

	due := time.Date(today.Year(), today.Month(), u.policy.DueDay, 0, 0, 0, 0, time.UTC)
	res := &SweepResult{}

	lateLoans, err := u.facts.DelinquentLoans(ctx, due, today)
	if err != nil {
		return nil, err
	}
	for _, dl := range lateLoans {
		loanID := dl.LoanID
		p := &domainPenalty.Penalty{
			ID:              uuid.NewString(),
			UserID:          dl.BorrowerID,
			PenaltyType:     domainPenalty.TypeLoan,
			Amount:          u.policy.Amount,
			DueDate:         due,
			RelatedEntityID: &loanID,
			Description:     fmt.Sprintf("late loan payment penalty for %s", due.Format("2006-01-02")),
			Status:          domainPenalty.StatusPending,
		}
		if err := u.record(ctx, p, res); err != nil {
			return nil, err
		}
	}

	lateMembers, err := u.facts.MembersWithoutWelfare(ctx, due, today)
	if err != nil {
		return nil, err
	}
	for _, memberID := range lateMembers {
		p := &domainPenalty.Penalty{
			ID:          uuid.NewString(),
			UserID:      memberID,
			PenaltyType: domainPenalty.TypeWelfare,
			Amount:      u.policy.Amount,
			DueDate:     due,
			Description: fmt.Sprintf("late welfare payment penalty for %s", due.Format("2006-01-02")),
			Status:      domainPenalty.StatusPending,
		}
		if err := u.record(ctx, p, res); err != nil {
			return nil, err
		}
	}

	res.Message = fmt.Sprintf("sweep complete: %d created, %d skipped", res.Created, res.Skipped)
	if u.log != nil {
		u.log.Infow("penalty sweep finished", "due_date", due.Format("2006-01-02"), "created", res.Created, "skipped", res.Skipped)
	}
	return res, nil
}

func (u *Usecase) record(ctx context.Context, p *domainPenalty.Penalty, res *SweepResult) error {
	err := u.penalties.Create(ctx, p)
	switch {
	case err == nil:
		res.Penalties = append(res.Penalties, *p)
		res.Created++
		return nil
	case errors.Is(err, domainPenalty.ErrDuplicate):
		res.Skipped++
		if u.log != nil {
			u.log.Debugw("penalty already recorded", "user_id", p.UserID, "type", p.PenaltyType, "due_date", p.DueDate.Format("2006-01-02"))
		}
		return nil
	default:
		return err
	}
}

// MarkPaid moves a pending penalty to paid.
func (u *Usecase) MarkPaid(ctx context.Context, penaltyID string) (*domainPenalty.Penalty, error) {
	return u.transition(ctx, penaltyID, domainPenalty.StatusPaid)
}

// Waive is the admin override for a pending penalty.
func (u *Usecase) Waive(ctx context.Context, penaltyID string) (*domainPenalty.Penalty, error) {
	return u.transition(ctx, penaltyID, domainPenalty.StatusWaived)
}

func (u *Usecase) transition(ctx context.Context, penaltyID string, to domainPenalty.Status) (*domainPenalty.Penalty, error) {
	p, err := u.penalties.FindByID(ctx, penaltyID)
	if err != nil {
		return nil, err
	}
	if p.Status != domainPenalty.StatusPending {
		return nil, domainPenalty.ErrInvalidStatus
	}
	p.Status = to
	if err := u.penalties.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
