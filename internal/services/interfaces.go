package services

import (
	"time"

	"fincoach/internal/models"
	"fincoach/internal/pagination"
)

// UserUpdateFields holds optional profile fields for a partial update.
// Nil fields are left unchanged.
type UserUpdateFields struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Password           *string
	CurrencyPreference *string
	MonthlyBudget      *int64
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password, firstName, lastName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetActiveUserByID(id string) (*models.User, error)
	UpdateProfile(userID string, fields UserUpdateFields) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
// The visible scope of a user is their own categories plus system defaults.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, description, icon, colour string) (*models.Category, error)
	GetVisibleCategories(userID string, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	ResolveCategoryByName(userID, name string, categoryType models.CategoryType) (*models.Category, error)
	UpdateCategory(userID, categoryID string, fields CategoryUpdateFields) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// CategoryUpdateFields holds optional category fields for a partial update.
type CategoryUpdateFields struct {
	Name        *string
	Description *string
	Icon        *string
	Colour      *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionUpdateFields holds optional transaction fields for a partial
// update. Nil fields are left unchanged; CategoryID uses a double pointer so
// callers can distinguish "don't change" from "clear the category".
type TransactionUpdateFields struct {
	Amount      *int64
	Description *string
	Date        *time.Time
	CategoryID  **string
	Type        *models.TransactionType
	Account     *string
	Currency    *string
	Status      *models.TransactionStatus
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryName string, transactionType models.TransactionType, amount int64, description, account, currency string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetProgress contains spending vs budget data for a budget's current period.
type BudgetProgress struct {
	BudgetID   string  `json:"budget_id"`
	Budgeted   int64   `json:"budgeted"`
	Spent      int64   `json:"spent"`
	Remaining  int64   `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Alert      bool    `json:"alert"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID, name string, amount int64, period models.BudgetPeriod, startDate time.Time, endDate *time.Time, alertThreshold float64) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, name string, amount *int64, period *models.BudgetPeriod, endDate *time.Time, alertThreshold *float64) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetProgress(userID, budgetID string) (*BudgetProgress, error)
}

// CategorySpending is one entry of an expense-by-category breakdown.
type CategorySpending struct {
	CategoryName     string  `json:"category_name"`
	CategoryIcon     string  `json:"category_icon"`
	CategoryColour   string  `json:"category_colour"`
	TotalAmount      int64   `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// RecentTransaction is a transaction rendered with its resolved category name.
type RecentTransaction struct {
	ID          string                   `json:"id"`
	Amount      int64                    `json:"amount"`
	Description string                   `json:"description"`
	Date        time.Time                `json:"date"`
	Category    string                   `json:"category"`
	Type        models.TransactionType   `json:"type"`
	Account     string                   `json:"account"`
	Currency    string                   `json:"currency"`
	Status      models.TransactionStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// DashboardStats is the full windowed dashboard report.
type DashboardStats struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	NetBalance   int64 `json:"net_balance"`

	TotalTransactions   int `json:"total_transactions"`
	IncomeTransactions  int `json:"income_transactions"`
	ExpenseTransactions int `json:"expense_transactions"`

	AverageTransactionAmount float64 `json:"average_transaction_amount"`
	AverageDailySpend        float64 `json:"average_daily_spend"`
	AverageWeeklySpend       float64 `json:"average_weekly_spend"`

	TopSpendingCategories []CategorySpending `json:"top_spending_categories"`

	MonthlyBudget         *int64   `json:"monthly_budget,omitempty"`
	BudgetSpentPercentage *float64 `json:"budget_spent_percentage,omitempty"`
	BudgetRemaining       *float64 `json:"budget_remaining,omitempty"`

	RecentTransactions []RecentTransaction `json:"recent_transactions"`
}

// QuickStats is the unwindowed overview with a current-calendar-month budget check.
type QuickStats struct {
	TotalIncome           int64    `json:"total_income"`
	TotalExpense          int64    `json:"total_expense"`
	NetBalance            int64    `json:"net_balance"`
	BudgetSpentPercentage *float64 `json:"budget_spent_percentage,omitempty"`
	BudgetRemaining       *float64 `json:"budget_remaining,omitempty"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetDashboardStats(userID string, days int) (*DashboardStats, error)
	GetQuickStats(userID string) (*QuickStats, error)
	GetSpendingByCategory(userID string, days, limit int) ([]CategorySpending, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
