package ledgermock

import (
	"context"
	"time"

	domain "sacco-backend/internal/domain/ledger"
)

var _ domain.Facts = (*Facts)(nil)

// Facts is a function-backed mock for the ledger read contract. The
// SharesByMember / PledgedByMember maps give a quick fixture setup when
// the per-call functions are not set.
type Facts struct {
	SharesByMember  map[uint64]int64
	PledgedByMember map[uint64]int64

	OwnedSharesFn           func(ctx context.Context, memberID uint64) (int64, error)
	PledgedSharesFn         func(ctx context.Context, memberID, excludeLoanID uint64) (int64, error)
	RepaymentsInWindowFn    func(ctx context.Context, loanID uint64, from, to time.Time) ([]domain.Repayment, error)
	DelinquentLoansFn       func(ctx context.Context, from, to time.Time) ([]domain.DelinquentLoan, error)
	MembersWithoutWelfareFn func(ctx context.Context, from, to time.Time) ([]uint64, error)
}

func (m *Facts) OwnedShares(ctx context.Context, memberID uint64) (int64, error) {
	if m.OwnedSharesFn != nil {
		return m.OwnedSharesFn(ctx, memberID)
	}
	return m.SharesByMember[memberID], nil
}

func (m *Facts) PledgedShares(ctx context.Context, memberID, excludeLoanID uint64) (int64, error) {
	if m.PledgedSharesFn != nil {
		return m.PledgedSharesFn(ctx, memberID, excludeLoanID)
	}
	return m.PledgedByMember[memberID], nil
}

func (m *Facts) RepaymentsInWindow(ctx context.Context, loanID uint64, from, to time.Time) ([]domain.Repayment, error) {
	if m.RepaymentsInWindowFn != nil {
		return m.RepaymentsInWindowFn(ctx, loanID, from, to)
	}
	return nil, nil
}

func (m *Facts) DelinquentLoans(ctx context.Context, from, to time.Time) ([]domain.DelinquentLoan, error) {
	if m.DelinquentLoansFn != nil {
		return m.DelinquentLoansFn(ctx, from, to)
	}
	return nil, nil
}

func (m *Facts) MembersWithoutWelfare(ctx context.Context, from, to time.Time) ([]uint64, error) {
	if m.MembersWithoutWelfareFn != nil {
		return m.MembersWithoutWelfareFn(ctx, from, to)
	}
	return nil, nil
}
