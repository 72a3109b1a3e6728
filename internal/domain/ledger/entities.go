package ledger

import "time"

// Share is a purchased share lot. Only active lots count toward coverage.
type Share struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    uint64    `gorm:"index" json:"user_id"`
	Quantity  int64     `json:"quantity"`
	Status    string    `gorm:"size:16;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Share) TableName() string { return "shares" }

type Repayment struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID      uint64    `gorm:"index" json:"loan_id"`
	Amount      float64   `gorm:"type:decimal(18,2)" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;index" json:"payment_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "loan_repayments" }

type WelfarePayment struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID      uint64    `gorm:"index" json:"user_id"`
	Amount      float64   `gorm:"type:decimal(18,2)" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;index" json:"payment_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WelfarePayment) TableName() string { return "welfare_payments" }

// Member is the slice of the users table the core reads: role binding for
// approval gating and activity for the welfare sweep.
type Member struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"id"`
	FullName string `gorm:"size:128" json:"full_name"`
	Email    string `gorm:"size:128" json:"email"`
	RoleID   uint64 `gorm:"index" json:"role_id"`
	Role     string `gorm:"size:32;default:'member'" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Member) TableName() string { return "users" }
