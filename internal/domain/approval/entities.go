package approval

import (
	"errors"
	"time"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

var (
	ErrUnauthorizedRole  = errors.New("actor does not hold the role for this step")
	ErrDuplicateApproval = errors.New("actor already voted on this step")
	ErrSelfApproval      = errors.New("borrower cannot approve their own loan")
	ErrInvalidDecision   = errors.New("decision must be approved or rejected")
)

// Action is one approve/reject vote on a loan at a specific step.
// Rows are append-only; quorum is computed by counting approvals per step.
type Action struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	EntityType string    `gorm:"size:16;default:'loan';index:idx_approval_history_entity" json:"entity_type"`
	LoanID     uint64    `gorm:"column:entity_id;index:idx_approval_history_entity" json:"loan_id"`
	WorkflowID uint64    `json:"workflow_id"`
	StepID     uint64    `gorm:"index" json:"step_id"`
	ApproverID uint64    `json:"approver_id"`
	Decision   Decision  `gorm:"column:action;size:16" json:"decision"`
	Comments   string    `gorm:"type:text" json:"comments"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Action) TableName() string { return "approval_history" }
