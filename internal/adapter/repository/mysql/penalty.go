package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	penaltyDomain "sacco-backend/internal/domain/penalty"
)

type PenaltyRepository struct{ db *gorm.DB }

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository { return &PenaltyRepository{db: db} }

// Create relies on the (user_id, penalty_type, due_date) unique index;
// requires TranslateError on the gorm connection so driver duplicate-key
// errors surface as gorm.ErrDuplicatedKey.
func (r *PenaltyRepository) Create(ctx context.Context, p *penaltyDomain.Penalty) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return penaltyDomain.ErrDuplicate
	}
	return err
}

func (r *PenaltyRepository) FindByID(ctx context.Context, id string) (*penaltyDomain.Penalty, error) {
	var out penaltyDomain.Penalty
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, penaltyDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *PenaltyRepository) ByUser(ctx context.Context, userID uint64) ([]penaltyDomain.Penalty, error) {
	var out []penaltyDomain.Penalty
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date DESC").
		Find(&out).Error
	return out, err
}

func (r *PenaltyRepository) Save(ctx context.Context, p *penaltyDomain.Penalty) error {
	return r.db.WithContext(ctx).Save(p).Error
}
