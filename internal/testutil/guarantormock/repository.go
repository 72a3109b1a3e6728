package guarantormock

import (
	"context"

	domain "sacco-backend/internal/domain/guarantor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, g *domain.Guarantee) error
	FindByIDFn             func(ctx context.Context, id string) (*domain.Guarantee, error)
	ByLoanFn               func(ctx context.Context, loanID uint64) ([]domain.Guarantee, error)
	SaveFn                 func(ctx context.Context, g *domain.Guarantee) error
	CountByLoanAndStatusFn func(ctx context.Context, loanID uint64, status domain.Status) (int64, error)
	AcceptedSharesFn       func(ctx context.Context, loanID uint64) (int64, error)
	ReleaseByLoanFn        func(ctx context.Context, loanID uint64) error
}

func (m *Repo) Create(ctx context.Context, g *domain.Guarantee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.Guarantee, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ByLoan(ctx context.Context, loanID uint64) ([]domain.Guarantee, error) {
	if m.ByLoanFn != nil {
		return m.ByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, g *domain.Guarantee) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return nil
}

func (m *Repo) CountByLoanAndStatus(ctx context.Context, loanID uint64, status domain.Status) (int64, error) {
	if m.CountByLoanAndStatusFn != nil {
		return m.CountByLoanAndStatusFn(ctx, loanID, status)
	}
	return 0, nil
}

func (m *Repo) AcceptedShares(ctx context.Context, loanID uint64) (int64, error) {
	if m.AcceptedSharesFn != nil {
		return m.AcceptedSharesFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) ReleaseByLoan(ctx context.Context, loanID uint64) error {
	if m.ReleaseByLoanFn != nil {
		return m.ReleaseByLoanFn(ctx, loanID)
	}
	return nil
}
