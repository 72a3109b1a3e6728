package mysql

import (
	"context"

	"gorm.io/gorm"

	ledgerDomain "sacco-backend/internal/domain/ledger"
)

// RoleChecker gates approval votes on the role bound to a workflow step.
type RoleChecker struct{ db *gorm.DB }

func NewRoleChecker(db *gorm.DB) *RoleChecker { return &RoleChecker{db: db} }

func (r *RoleChecker) ActorHasRole(ctx context.Context, actorID, roleID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&ledgerDomain.Member{}).
		Where("id = ? AND role_id = ? AND is_active = ?", actorID, roleID, true).
		Count(&n).Error
	return n > 0, err
}
