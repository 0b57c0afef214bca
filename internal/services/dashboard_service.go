package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/models"
)

// uncategorised is the display name for transactions with no resolved category.
const uncategorised = "Uncategorised"

// budgetMonthDays is the fixed month length used to prorate a monthly
// budget onto a shorter window. A calendar-accurate value would change the
// reported numbers, so the approximation is kept deliberately.
const budgetMonthDays = 30

// dashboardService computes aggregated statistics over a user's
// transactions. All arithmetic is total: every division guards a zero
// denominator, so the aggregator itself never produces domain errors.
type dashboardService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, userService UserServicer) DashboardServicer {
	return &dashboardService{db: db, userService: userService}
}

// categoryRow is the scan target for the grouped category-spending query.
type categoryRow struct {
	CategoryName     string
	CategoryIcon     string
	CategoryColour   string
	TotalAmount      int64
	TransactionCount int
}

// GetDashboardStats computes the full dashboard report over the inclusive
// window [now-days, now]. The days parameter is validated by the caller
// (1..365) before this runs.
func (s *dashboardService) GetDashboardStats(userID string, days int) (*DashboardStats, error) {
	user, err := s.userService.GetActiveUserByID(userID)
	if err != nil {
		return nil, err
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -days)

	var transactions []models.Transaction
	if err := s.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, startDate, endDate).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalIncome, totalExpense int64
	var incomeCount, expenseCount int
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			totalIncome += t.Amount
			incomeCount++
		case models.TransactionTypeExpense:
			totalExpense += t.Amount
			expenseCount++
		}
	}
	totalCount := len(transactions)

	var averageTransactionAmount float64
	if totalCount > 0 {
		averageTransactionAmount = float64(totalIncome+totalExpense) / float64(totalCount)
	}

	var averageDailySpend, averageWeeklySpend float64
	if days > 0 {
		averageDailySpend = float64(totalExpense) / float64(days)
		averageWeeklySpend = averageDailySpend * 7
	}

	topCategories, err := s.expenseByCategory(userID, startDate, endDate, totalExpense, 5)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Period:                   fmt.Sprintf("last_%d_days", days),
		StartDate:                startDate,
		EndDate:                  endDate,
		TotalIncome:              totalIncome,
		TotalExpense:             totalExpense,
		NetBalance:               totalIncome - totalExpense,
		TotalTransactions:        totalCount,
		IncomeTransactions:       incomeCount,
		ExpenseTransactions:      expenseCount,
		AverageTransactionAmount: averageTransactionAmount,
		AverageDailySpend:        averageDailySpend,
		AverageWeeklySpend:       averageWeeklySpend,
		TopSpendingCategories:    topCategories,
	}

	if user.HasMonthlyBudget() {
		monthlyBudget := user.MonthlyBudget
		daysInPeriod := days
		if daysInPeriod > budgetMonthDays {
			daysInPeriod = budgetMonthDays
		}
		budgetForPeriod := float64(monthlyBudget) / budgetMonthDays * float64(daysInPeriod)

		var spentPercentage float64
		if budgetForPeriod > 0 {
			spentPercentage = float64(totalExpense) / budgetForPeriod * 100
		}
		remaining := budgetForPeriod - float64(totalExpense)

		stats.MonthlyBudget = &monthlyBudget
		stats.BudgetSpentPercentage = &spentPercentage
		stats.BudgetRemaining = &remaining
	}

	recent, err := s.recentTransactions(userID, 5)
	if err != nil {
		return nil, err
	}
	stats.RecentTransactions = recent

	return stats, nil
}

// GetQuickStats computes an all-time overview plus a budget check scoped to
// the current calendar month.
func (s *dashboardService) GetQuickStats(userID string) (*QuickStats, error) {
	user, err := s.userService.GetActiveUserByID(userID)
	if err != nil {
		return nil, err
	}

	type totalsRow struct {
		Type  models.TransactionType
		Total int64
	}
	var rows []totalsRow
	if err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalIncome, totalExpense int64
	for _, r := range rows {
		switch r.Type {
		case models.TransactionTypeIncome:
			totalIncome = r.Total
		case models.TransactionTypeExpense:
			totalExpense = r.Total
		}
	}

	stats := &QuickStats{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		NetBalance:   totalIncome - totalExpense,
	}

	if user.HasMonthlyBudget() {
		now := time.Now().UTC()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		var monthExpense int64
		if err := s.db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ? AND type = ? AND date >= ?", userID, models.TransactionTypeExpense, startOfMonth).
			Scan(&monthExpense).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		spentPercentage := float64(monthExpense) / float64(user.MonthlyBudget) * 100
		remaining := float64(user.MonthlyBudget - monthExpense)
		stats.BudgetSpentPercentage = &spentPercentage
		stats.BudgetRemaining = &remaining
	}

	return stats, nil
}

// GetSpendingByCategory returns the expense-by-category breakdown over the
// inclusive window [now-days, now], limited to at most limit entries. The
// caller validates days (1..365) and limit (1..50).
func (s *dashboardService) GetSpendingByCategory(userID string, days, limit int) ([]CategorySpending, error) {
	if _, err := s.userService.GetActiveUserByID(userID); err != nil {
		return nil, err
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -days)

	var totalExpense int64
	if err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND date BETWEEN ? AND ?",
			userID, models.TransactionTypeExpense, startDate, endDate).
		Scan(&totalExpense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.expenseByCategory(userID, startDate, endDate, totalExpense, limit)
}

// expenseByCategory groups the user's expense transactions by category over
// the window, ordered by summed amount descending. Uncategorized
// transactions carry no resolved category and are excluded from the
// breakdown; they still count toward the raw totals.
func (s *dashboardService) expenseByCategory(userID string, startDate, endDate time.Time, totalExpense int64, limit int) ([]CategorySpending, error) {
	var rows []categoryRow
	if err := s.db.Model(&models.Transaction{}).
		Select("categories.name AS category_name, categories.icon AS category_icon, categories.colour AS category_colour, "+
			"COALESCE(SUM(transactions.amount), 0) AS total_amount, COUNT(transactions.id) AS transaction_count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date BETWEEN ? AND ?",
			userID, models.TransactionTypeExpense, startDate, endDate).
		Group("categories.id, categories.name, categories.icon, categories.colour").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := make([]CategorySpending, 0, len(rows))
	for _, row := range rows {
		var percentage float64
		if totalExpense > 0 {
			percentage = float64(row.TotalAmount) / float64(totalExpense) * 100
		}
		breakdown = append(breakdown, CategorySpending{
			CategoryName:     row.CategoryName,
			CategoryIcon:     row.CategoryIcon,
			CategoryColour:   row.CategoryColour,
			TotalAmount:      row.TotalAmount,
			TransactionCount: row.TransactionCount,
			Percentage:       percentage,
		})
	}
	return breakdown, nil
}

// recentTransactions returns the user's most recently dated transactions,
// independent of any aggregation window, with category names resolved.
func (s *dashboardService) recentTransactions(userID string, limit int) ([]RecentTransaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recent := make([]RecentTransaction, 0, len(transactions))
	for _, t := range transactions {
		categoryName := uncategorised
		if t.Category != nil {
			categoryName = t.Category.Name
		}
		recent = append(recent, RecentTransaction{
			ID:          t.ID,
			Amount:      t.Amount,
			Description: t.Description,
			Date:        t.Date,
			Category:    categoryName,
			Type:        t.Type,
			Account:     t.Account,
			Currency:    t.Currency,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return recent, nil
}
