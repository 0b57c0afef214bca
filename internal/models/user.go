package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Username           string     `gorm:"uniqueIndex;not null" json:"username"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	IsDemo             bool       `gorm:"default:false" json:"is_demo"`
	MonthlyBudget      int64      `gorm:"type:bigint;default:0" json:"monthly_budget"`
	CurrencyPreference string     `gorm:"size:3;default:GBP" json:"currency_preference"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}

// HasMonthlyBudget reports whether the user has configured a monthly budget.
// A zero budget means "no budget configured".
func (u *User) HasMonthlyBudget() bool {
	return u.MonthlyBudget > 0
}
