package uow

import (
	"context"

	"sacco-backend/internal/domain/approval"
	"sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/domain/ledger"
	"sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/penalty"
)

type Repos struct {
	Loans      loan.Repository
	Guarantees guarantor.Repository
	Approvals  approval.Repository
	Penalties  penalty.Repository
	// Facts reads the ledger through the same transaction, so availability
	// checks see the rows the transaction writes and block concurrent
	// pledges on the same shares.
	Facts ledger.Facts
}

type UnitOfWork interface {
	// WithinTx runs fn inside one transaction over all repos.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then runs fn with it. Quorum
	// counting and step advances must happen under this lock.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
