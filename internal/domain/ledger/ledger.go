// Package ledger exposes the read-only facts the workflow core needs from
// the savings/shares side of the system: share holdings, pledges, and
// payment history.
package ledger

import (
	"context"
	"time"
)

// DelinquentLoan is an active loan with outstanding balance and no
// repayment inside the checked window.
type DelinquentLoan struct {
	LoanID           uint64
	BorrowerID       uint64
	BalanceRemaining float64
}

type Facts interface {
	// OwnedShares is the member's total active share count.
	OwnedShares(ctx context.Context, memberID uint64) (int64, error)
	// PledgedShares sums the member's pending/accepted guarantor pledges,
	// excluding those attached to excludeLoanID (0 excludes nothing).
	PledgedShares(ctx context.Context, memberID, excludeLoanID uint64) (int64, error)
	// RepaymentsInWindow lists repayments for a loan with payment dates in
	// [from, to], both ends inclusive.
	RepaymentsInWindow(ctx context.Context, loanID uint64, from, to time.Time) ([]Repayment, error)
	// DelinquentLoans lists active loans with balance remaining and no
	// repayment dated within [from, to].
	DelinquentLoans(ctx context.Context, from, to time.Time) ([]DelinquentLoan, error)
	// MembersWithoutWelfare lists active members with no welfare payment
	// dated within [from, to].
	MembersWithoutWelfare(ctx context.Context, from, to time.Time) ([]uint64, error)
}
