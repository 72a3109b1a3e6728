package guarantor

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusReleased Status = "released"
)

var (
	ErrNotFound         = errors.New("guarantor request not found")
	ErrNotOwner         = errors.New("guarantor request belongs to another member")
	ErrAlreadyResponded = errors.New("guarantor request already processed")
	ErrDuplicateRequest = errors.New("guarantor already has an open request for this loan")
	ErrSelfGuarantee    = errors.New("borrower cannot guarantee their own loan")
)

// Guarantee links a loan to a guarantor pledging shares. Pending and
// accepted rows count against the guarantor's available shares; rejected
// or closed loans release them.
type Guarantee struct {
	ID            string     `gorm:"type:char(36);primaryKey" json:"id"`
	LoanID        uint64     `gorm:"index" json:"loan_id"`
	GuarantorID   uint64     `gorm:"index" json:"guarantor_id"`
	SharesPledged int64      `json:"shares_pledged"`
	AmountCovered float64    `gorm:"type:decimal(18,2)" json:"amount_covered"`
	Status        Status     `gorm:"size:16;default:'pending'" json:"status"`
	RespondedAt   *time.Time `json:"responded_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guarantee) TableName() string { return "loan_guarantors" }
