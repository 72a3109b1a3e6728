package penalty

import (
	"errors"
	"time"
)

type Type string

const (
	TypeLoan    Type = "loan"
	TypeWelfare Type = "welfare"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusWaived  Status = "waived"
)

var (
	ErrNotFound = errors.New("penalty not found")
	// ErrDuplicate means a penalty for the same member, type and period
	// already exists. The sweep treats it as a benign skip.
	ErrDuplicate     = errors.New("penalty already recorded for this period")
	ErrInvalidStatus = errors.New("penalty status does not allow this transition")
)

// Penalty has an immutable amount; only Status moves, and only one way
// (pending to paid or waived) outside an admin override.
type Penalty struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          uint64    `gorm:"uniqueIndex:ux_penalties_user_period" json:"user_id"`
	PenaltyType     Type      `gorm:"size:16;uniqueIndex:ux_penalties_user_period" json:"penalty_type"`
	Amount          float64   `gorm:"type:decimal(18,2)" json:"amount"`
	DueDate         time.Time `gorm:"type:date;uniqueIndex:ux_penalties_user_period" json:"due_date"`
	RelatedEntityID *uint64   `json:"related_entity_id"`
	Description     string    `gorm:"type:text" json:"description"`
	Status          Status    `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Penalty) TableName() string { return "penalties" }
