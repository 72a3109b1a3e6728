package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	guarantorDomain "sacco-backend/internal/domain/guarantor"
)

type GuaranteeRepository struct{ db *gorm.DB }

func NewGuaranteeRepository(db *gorm.DB) *GuaranteeRepository { return &GuaranteeRepository{db: db} }

func (r *GuaranteeRepository) Create(ctx context.Context, g *guarantorDomain.Guarantee) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GuaranteeRepository) FindByID(ctx context.Context, id string) (*guarantorDomain.Guarantee, error) {
	var out guarantorDomain.Guarantee
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, guarantorDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *GuaranteeRepository) ByLoan(ctx context.Context, loanID uint64) ([]guarantorDomain.Guarantee, error) {
	var out []guarantorDomain.Guarantee
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at").
		Find(&out).Error
	return out, err
}

func (r *GuaranteeRepository) Save(ctx context.Context, g *guarantorDomain.Guarantee) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GuaranteeRepository) CountByLoanAndStatus(ctx context.Context, loanID uint64, status guarantorDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&guarantorDomain.Guarantee{}).
		Where("loan_id = ? AND status = ?", loanID, status).
		Count(&n).Error
	return n, err
}

func (r *GuaranteeRepository) AcceptedShares(ctx context.Context, loanID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&guarantorDomain.Guarantee{}).
		Where("loan_id = ? AND status = ?", loanID, guarantorDomain.StatusAccepted).
		Select("COALESCE(SUM(shares_pledged), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GuaranteeRepository) ReleaseByLoan(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Model(&guarantorDomain.Guarantee{}).
		Where("loan_id = ? AND status IN ?", loanID, []guarantorDomain.Status{guarantorDomain.StatusPending, guarantorDomain.StatusAccepted}).
		Update("status", guarantorDomain.StatusReleased).Error
}
