package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Action) error
	// CountApprovals counts approved votes for a loan at a step.
	CountApprovals(ctx context.Context, loanID, stepID uint64) (int64, error)
	// HasVoted reports whether the actor already voted on this step.
	HasVoted(ctx context.Context, approverID, loanID, stepID uint64) (bool, error)
	HistoryByLoan(ctx context.Context, loanID uint64) ([]Action, error)
}
