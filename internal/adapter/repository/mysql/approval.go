package mysql

import (
	"context"

	"gorm.io/gorm"

	approvalDomain "sacco-backend/internal/domain/approval"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Action) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) CountApprovals(ctx context.Context, loanID, stepID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&approvalDomain.Action{}).
		Where("entity_type = ? AND entity_id = ? AND step_id = ? AND action = ?",
			"loan", loanID, stepID, approvalDomain.DecisionApproved).
		Count(&n).Error
	return n, err
}

func (r *ApprovalRepository) HasVoted(ctx context.Context, approverID, loanID, stepID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&approvalDomain.Action{}).
		Where("approver_id = ? AND entity_type = ? AND entity_id = ? AND step_id = ?",
			approverID, "loan", loanID, stepID).
		Count(&n).Error
	return n > 0, err
}

func (r *ApprovalRepository) HistoryByLoan(ctx context.Context, loanID uint64) ([]approvalDomain.Action, error) {
	var out []approvalDomain.Action
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", "loan", loanID).
		Order("created_at").
		Find(&out).Error
	return out, err
}
