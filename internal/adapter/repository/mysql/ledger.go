package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sacco-backend/internal/domain/guarantor"
	ledgerDomain "sacco-backend/internal/domain/ledger"
)

// LedgerFacts answers the read-only queries the coverage calculator and
// penalty sweep need.
type LedgerFacts struct {
	db         *gorm.DB
	lockShares bool
}

func NewLedgerFacts(db *gorm.DB) *LedgerFacts { return &LedgerFacts{db: db} }

// txLedgerFacts reads share and pledge rows with FOR UPDATE, so two
// transactions checking the same guarantor's availability serialize
// instead of both passing on a stale count.
func txLedgerFacts(tx *gorm.DB) *LedgerFacts { return &LedgerFacts{db: tx, lockShares: true} }

func (r *LedgerFacts) shareQuery(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.lockShares {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (r *LedgerFacts) OwnedShares(ctx context.Context, memberID uint64) (int64, error) {
	var n int64
	err := r.shareQuery(ctx).
		Model(&ledgerDomain.Share{}).
		Where("user_id = ? AND status = ?", memberID, "active").
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&n).Error
	return n, err
}

func (r *LedgerFacts) PledgedShares(ctx context.Context, memberID, excludeLoanID uint64) (int64, error) {
	q := r.shareQuery(ctx).
		Model(&guarantor.Guarantee{}).
		Where("guarantor_id = ? AND status IN ?", memberID,
			[]guarantor.Status{guarantor.StatusPending, guarantor.StatusAccepted})
	if excludeLoanID != 0 {
		q = q.Where("loan_id <> ?", excludeLoanID)
	}
	var n int64
	err := q.Select("COALESCE(SUM(shares_pledged), 0)").Scan(&n).Error
	return n, err
}

func (r *LedgerFacts) RepaymentsInWindow(ctx context.Context, loanID uint64, from, to time.Time) ([]ledgerDomain.Repayment, error) {
	var out []ledgerDomain.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND DATE(payment_date) >= DATE(?) AND DATE(payment_date) <= DATE(?)", loanID, from, to).
		Order("payment_date").
		Find(&out).Error
	return out, err
}

func (r *LedgerFacts) DelinquentLoans(ctx context.Context, from, to time.Time) ([]ledgerDomain.DelinquentLoan, error) {
	var out []ledgerDomain.DelinquentLoan
	err := r.db.WithContext(ctx).Raw(`
		SELECT l.id AS loan_id, l.borrower_id, l.balance_remaining
		FROM loans l
		WHERE l.status = 'active'
		  AND l.balance_remaining > 0
		  AND l.deleted_at IS NULL
		  AND NOT EXISTS (
		    SELECT 1 FROM loan_repayments lr
		    WHERE lr.loan_id = l.id
		      AND DATE(lr.payment_date) >= DATE(?)
		      AND DATE(lr.payment_date) <= DATE(?)
		  )`, from, to).Scan(&out).Error
	return out, err
}

func (r *LedgerFacts) MembersWithoutWelfare(ctx context.Context, from, to time.Time) ([]uint64, error) {
	var out []uint64
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id
		FROM users u
		WHERE u.role = 'member'
		  AND u.is_active = true
		  AND NOT EXISTS (
		    SELECT 1 FROM welfare_payments wp
		    WHERE wp.user_id = u.id
		      AND DATE(wp.payment_date) >= DATE(?)
		      AND DATE(wp.payment_date) <= DATE(?)
		  )`, from, to).Scan(&out).Error
	return out, err
}
