package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionStatus represents the lifecycle status of a transaction
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
)

// Transaction represents a financial transaction. Amounts are stored in
// minor units (cents/pence) and are always positive; the type determines
// whether the amount counts as income or expense.
type Transaction struct {
	Base
	UserID      string            `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string           `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Type        TransactionType   `gorm:"not null" json:"type"`
	Amount      int64             `gorm:"type:bigint;not null" json:"amount"`
	Description string            `json:"description"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	Currency    string            `gorm:"size:3;default:GBP" json:"currency"`
	Account     string            `json:"account"`
	Status      TransactionStatus `gorm:"default:completed" json:"status"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
