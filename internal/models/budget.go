package models

import "time"

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget represents a spending budget for a category. AlertThreshold is the
// spent fraction (0..1] at which the budget is flagged as nearing its limit.
type Budget struct {
	Base
	UserID         string       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID     string       `gorm:"type:uuid;not null" json:"category_id"`
	Name           string       `gorm:"not null" json:"name"`
	Amount         int64        `gorm:"type:bigint;not null" json:"amount"`
	Period         BudgetPeriod `gorm:"not null" json:"period"`
	StartDate      time.Time    `gorm:"not null" json:"start_date"`
	EndDate        *time.Time   `json:"end_date,omitempty"`
	AlertThreshold float64      `gorm:"default:0.8" json:"alert_threshold"`
	IsActive       bool         `gorm:"default:true" json:"is_active"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
