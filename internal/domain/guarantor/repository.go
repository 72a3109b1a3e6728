package guarantor

import "context"

type Repository interface {
	Create(ctx context.Context, g *Guarantee) error
	FindByID(ctx context.Context, id string) (*Guarantee, error)
	ByLoan(ctx context.Context, loanID uint64) ([]Guarantee, error)
	Save(ctx context.Context, g *Guarantee) error
	CountByLoanAndStatus(ctx context.Context, loanID uint64, status Status) (int64, error)
	// AcceptedShares sums shares pledged by accepted guarantors of a loan.
	AcceptedShares(ctx context.Context, loanID uint64) (int64, error)
	// ReleaseByLoan moves all pending/accepted rows of a loan to released.
	ReleaseByLoan(ctx context.Context, loanID uint64) error
}
