package models

import "time"

// Transaction types. Exactly these two values are accepted.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record owned by one user.
// Date is when the transaction happened (defaults to creation time),
// CreatedAt breaks ordering ties between same-day records.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user"`
	Type        string    `gorm:"size:16;index;not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
