package mysql

import (
	"context"

	"gorm.io/gorm"

	workflowDomain "sacco-backend/internal/domain/workflow"
)

type WorkflowRepository struct{ db *gorm.DB }

func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository { return &WorkflowRepository{db: db} }

func (r *WorkflowRepository) Definitions(ctx context.Context) ([]workflowDomain.Definition, error) {
	var out []workflowDomain.Definition
	err := r.db.WithContext(ctx).Order("min_amount").Find(&out).Error
	return out, err
}

func (r *WorkflowRepository) Steps(ctx context.Context) ([]workflowDomain.Step, error) {
	var out []workflowDomain.Step
	err := r.db.WithContext(ctx).Order("workflow_id, step_order").Find(&out).Error
	return out, err
}
