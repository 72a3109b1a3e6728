package workflow

import (
	"errors"
	"time"
)

var (
	// ErrConfiguration signals bad or ambiguous catalog data. It is fatal
	// and surfaced to the admin, never resolved by picking an arbitrary
	// workflow.
	ErrConfiguration = errors.New("workflow catalog misconfigured")
	ErrNoSteps       = errors.New("workflow has no steps")
	ErrNotFound      = errors.New("workflow not found")
)

type EntityType string

const EntityLoan EntityType = "loan"

// Definition is an approval workflow bound to an inclusive amount band.
// A nil MinAmount/MaxAmount means the band is open on that end.
type Definition struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string     `gorm:"size:64" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	EntityType  EntityType `gorm:"size:16;index" json:"entity_type"`
	MinAmount   *float64   `gorm:"type:decimal(18,2)" json:"min_amount"`
	MaxAmount   *float64   `gorm:"type:decimal(18,2)" json:"max_amount"`
	IsDefault   bool       `gorm:"default:false" json:"is_default"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Definition) TableName() string { return "approval_workflows" }

// contains reports whether amount falls inside the band, both ends inclusive.
func (d Definition) contains(amount float64) bool {
	if d.MinAmount != nil && amount < *d.MinAmount {
		return false
	}
	if d.MaxAmount != nil && amount > *d.MaxAmount {
		return false
	}
	return true
}

// Step is one role-gated stage of a workflow. StepOrder is 1-based and
// contiguous per workflow; steps are traversed strictly in ascending order.
type Step struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"id"`
	WorkflowID        uint64    `gorm:"index;uniqueIndex:ux_workflow_steps_order" json:"workflow_id"`
	StepOrder         int       `gorm:"uniqueIndex:ux_workflow_steps_order" json:"step_order"`
	StepName          string    `gorm:"size:64" json:"step_name"`
	RoleID            uint64    `json:"role_id"`
	ApproversRequired int       `gorm:"default:1" json:"approvers_required"`
	Description       string    `gorm:"type:text" json:"description"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Step) TableName() string { return "workflow_steps" }
