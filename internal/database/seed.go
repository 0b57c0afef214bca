package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fincoach/internal/logger"
	"fincoach/internal/models"
)

// defaultCategories is the standard category set visible to every user.
// Each entry is seeded independently with a check-then-insert, so the
// bootstrap is idempotent and has no ordering dependency between items.
var defaultCategories = []models.Category{
	// Income categories
	{Name: "Salary", Type: models.CategoryTypeIncome, Description: "From a job or business", Icon: "💰", Colour: "#85BB65"},
	{Name: "Freelance", Type: models.CategoryTypeIncome, Description: "From freelance work or side hustles", Icon: "💼", Colour: "#35B535"},
	{Name: "Investments", Type: models.CategoryTypeIncome, Description: "Money received from investments", Icon: "📈", Colour: "#FFD700"},
	{Name: "Gifts", Type: models.CategoryTypeIncome, Description: "Received as gifts from friends and family", Icon: "🎁", Colour: "#D1F6FF"},
	{Name: "Other", Type: models.CategoryTypeIncome, Description: "Other income", Icon: "🤑", Colour: "#999999"},

	// Expense categories
	{Name: "Food", Type: models.CategoryTypeExpense, Description: "Restaurant meals and takeaways", Icon: "🍔", Colour: "#DB8400"},
	{Name: "Transport", Type: models.CategoryTypeExpense, Description: "Public transport, fuel, parking and vehicle maintenance", Icon: "🚗", Colour: "#2196F3"},
	{Name: "Housing", Type: models.CategoryTypeExpense, Description: "Rent, mortgage, house maintenance", Icon: "🏠", Colour: "#8C92AC"},
	{Name: "Entertainment", Type: models.CategoryTypeExpense, Description: "Entertainment such as movies, games, and subscriptions", Icon: "🎬", Colour: "#8B5CF6"},
	{Name: "Health", Type: models.CategoryTypeExpense, Description: "Medical expenses and fitness", Icon: "🏥", Colour: "#ED1B24"},
	{Name: "Utilities", Type: models.CategoryTypeExpense, Description: "Utilities such as electricity, water, gas and internet", Icon: "💡", Colour: "#FFFF33"},
	{Name: "Shopping", Type: models.CategoryTypeExpense, Description: "Shopping for clothes, electronics, and other items", Icon: "🛍️", Colour: "#F6A5C1"},
	{Name: "Groceries", Type: models.CategoryTypeExpense, Description: "Groceries and household items", Icon: "🛒", Colour: "#457D00"},
	{Name: "Education", Type: models.CategoryTypeExpense, Description: "Education and training", Icon: "📚", Colour: "#EDE6CA"},
	{Name: "Other", Type: models.CategoryTypeExpense, Description: "Other expenses", Icon: "💸", Colour: "#333333"},
}

// SeedDefaultCategories inserts any missing default categories. Existing
// rows are matched on (name, type) and left untouched, so the procedure
// is safe to run on every startup.
func SeedDefaultCategories(db *gorm.DB) error {
	log := logger.Get()
	added := 0

	for _, tmpl := range defaultCategories {
		var existing models.Category
		err := db.Where("name = ? AND type = ? AND is_default = ?", tmpl.Name, tmpl.Type, true).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check default category %q: %w", tmpl.Name, err)
		}

		category := tmpl
		category.IsDefault = true
		category.UserID = nil
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed default category %q: %w", tmpl.Name, err)
		}
		added++
	}

	log.Infof("Default categories seeded: %d new, %d total", added, len(defaultCategories))
	return nil
}

// SeedDemoUser creates the demo account if it does not exist yet.
func SeedDemoUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("is_demo = ?", true).First(&existing).Error
	if err == nil {
		logger.Get().Debug("Demo user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check demo user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	demo := &models.User{
		Username:           "demo",
		Email:              "demo@fincoach.dev",
		Password:           string(hash),
		FirstName:          "Demo",
		LastName:           "User",
		IsActive:           true,
		IsDemo:             true,
		MonthlyBudget:      350000, // 3500.00 in minor units
		CurrencyPreference: "GBP",
	}
	if err := db.Create(demo).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	logger.Get().Info("Demo user created: username 'demo'")
	return nil
}

// Seed runs all bootstrap seeding steps. Each step is independently
// idempotent, so Seed may run on every startup.
func Seed(db *gorm.DB) error {
	if err := SeedDefaultCategories(db); err != nil {
		return err
	}
	return SeedDemoUser(db)
}
