package approvalmock

import (
	"context"

	domain "sacco-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Action) error
	CountApprovalsFn func(ctx context.Context, loanID, stepID uint64) (int64, error)
	HasVotedFn       func(ctx context.Context, approverID, loanID, stepID uint64) (bool, error)
	HistoryByLoanFn  func(ctx context.Context, loanID uint64) ([]domain.Action, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Action) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) CountApprovals(ctx context.Context, loanID, stepID uint64) (int64, error) {
	if m.CountApprovalsFn != nil {
		return m.CountApprovalsFn(ctx, loanID, stepID)
	}
	return 0, nil
}

func (m *Repo) HasVoted(ctx context.Context, approverID, loanID, stepID uint64) (bool, error) {
	if m.HasVotedFn != nil {
		return m.HasVotedFn(ctx, approverID, loanID, stepID)
	}
	return false, nil
}

func (m *Repo) HistoryByLoan(ctx context.Context, loanID uint64) ([]domain.Action, error) {
	if m.HistoryByLoanFn != nil {
		return m.HistoryByLoanFn(ctx, loanID)
	}
	return nil, nil
}
