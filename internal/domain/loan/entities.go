package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingGuarantors Status = "pending_guarantors"
	StatusPendingApproval   Status = "pending_approval"
	StatusActive            Status = "active"
	StatusRejected          Status = "rejected"
	StatusClosed            Status = "closed"
)

var (
	ErrNotFound        = errors.New("loan not found")
	ErrNotOwner        = errors.New("loan belongs to another member")
	ErrAlreadyAssigned = errors.New("loan already has a workflow assigned")
	ErrNoWorkflow      = errors.New("loan workflow not initialized")
	ErrInvalidStatus   = errors.New("loan status does not allow this action")
)

// Loan is soft-closed via Status; rows are never deleted. Any status other
// than pending_guarantors must carry both WorkflowID and CurrentStepID.
type Loan struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID       uint64         `gorm:"index:idx_loans_borrower_active" json:"borrower_id"`
	RequestedAmount  float64        `gorm:"type:decimal(18,2)" json:"requested_amount"`
	RepaymentMonths  int            `json:"repayment_months"`
	Status           Status         `gorm:"size:24;default:'pending_guarantors'" json:"status"`
	WorkflowID       *uint64        `gorm:"index" json:"workflow_id"`
	CurrentStepID    *uint64        `json:"current_step_id"`
	BalanceRemaining float64        `gorm:"type:decimal(18,2)" json:"balance_remaining"`
	StatusUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
