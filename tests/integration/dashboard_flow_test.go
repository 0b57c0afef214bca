package integration

import (
	"net/http"
	"testing"
)

func TestDashboardFlow_StatsAfterTransactions(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "dash", "dash@test.com", "password123")

	// Set a monthly budget of 3500.00
	rec := app.request("PUT", "/api/v1/profile", `{"monthly_budget":350000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set budget failed: %d %s", rec.Code, rec.Body.String())
	}

	app.createTransaction(t, token, `{"category":"Salary","type":"income","amount":350000}`)
	app.createTransaction(t, token, `{"category":"Groceries","type":"expense","amount":90000}`)
	app.createTransaction(t, token, `{"category":"Transport","type":"expense","amount":30000}`)

	rec = app.request("GET", "/api/v1/dashboard/stats", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats failed: %d %s", rec.Code, rec.Body.String())
	}
	stats := parseJSON(t, rec)

	if stats["total_income"] != float64(350000) {
		t.Errorf("expected total income 350000, got %v", stats["total_income"])
	}
	if stats["total_expense"] != float64(120000) {
		t.Errorf("expected total expense 120000, got %v", stats["total_expense"])
	}
	if stats["net_balance"] != float64(230000) {
		t.Errorf("expected net balance 230000, got %v", stats["net_balance"])
	}
	if stats["total_transactions"] != float64(3) {
		t.Errorf("expected 3 transactions, got %v", stats["total_transactions"])
	}
	if stats["period"] != "last_30_days" {
		t.Errorf("expected period label last_30_days, got %v", stats["period"])
	}

	// Budget fields present at the full 30 day window
	if stats["monthly_budget"] != float64(350000) {
		t.Errorf("expected monthly budget 350000, got %v", stats["monthly_budget"])
	}
	if stats["budget_remaining"] != float64(230000) {
		t.Errorf("expected budget remaining 230000, got %v", stats["budget_remaining"])
	}

	top := stats["top_spending_categories"].([]interface{})
	if len(top) != 2 {
		t.Fatalf("expected 2 top categories, got %d", len(top))
	}
	first := top[0].(map[string]interface{})
	if first["category_name"] != "Groceries" {
		t.Errorf("expected Groceries first, got %v", first["category_name"])
	}
	if first["percentage"] != float64(75) {
		t.Errorf("expected 75 percent, got %v", first["percentage"])
	}

	recent := stats["recent_transactions"].([]interface{})
	if len(recent) != 3 {
		t.Fatalf("expected 3 recent transactions, got %d", len(recent))
	}
}

func TestDashboardFlow_EmptyWindow(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "empty", "empty@test.com", "password123")

	rec := app.request("GET", "/api/v1/dashboard/stats", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats failed: %d %s", rec.Code, rec.Body.String())
	}
	stats := parseJSON(t, rec)

	if stats["total_income"] != float64(0) || stats["total_expense"] != float64(0) {
		t.Error("expected zero totals for a fresh user")
	}
	if stats["average_transaction_amount"] != float64(0) {
		t.Errorf("expected zero average, got %v", stats["average_transaction_amount"])
	}
	if _, present := stats["monthly_budget"]; present {
		t.Error("budget fields should be omitted when no budget is set")
	}
	if recent := stats["recent_transactions"].([]interface{}); len(recent) != 0 {
		t.Errorf("expected no recent transactions, got %d", len(recent))
	}
}

func TestDashboardFlow_UncategorisedInRecent(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "recent", "recent@test.com", "password123")

	app.createTransaction(t, token, `{"type":"expense","amount":1500,"description":"Cash withdrawal"}`)

	rec := app.request("GET", "/api/v1/dashboard/stats", "", token)
	stats := parseJSON(t, rec)
	recent := stats["recent_transactions"].([]interface{})
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent transaction, got %d", len(recent))
	}
	entry := recent[0].(map[string]interface{})
	if entry["category"] != "Uncategorised" {
		t.Errorf("expected Uncategorised fallback, got %v", entry["category"])
	}
}

func TestDashboardFlow_QuickStats(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "quick", "quick@test.com", "password123")

	rec := app.request("PUT", "/api/v1/profile", `{"monthly_budget":100000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set budget failed: %d %s", rec.Code, rec.Body.String())
	}

	app.createTransaction(t, token, `{"category":"Salary","type":"income","amount":200000}`)
	app.createTransaction(t, token, `{"category":"Food","type":"expense","amount":25000}`)

	rec = app.request("GET", "/api/v1/dashboard/quick-stats", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("quick stats failed: %d %s", rec.Code, rec.Body.String())
	}
	stats := parseJSON(t, rec)

	if stats["total_income"] != float64(200000) {
		t.Errorf("expected income 200000, got %v", stats["total_income"])
	}
	if stats["net_balance"] != float64(175000) {
		t.Errorf("expected net balance 175000, got %v", stats["net_balance"])
	}
	if stats["budget_spent_percentage"] != float64(25) {
		t.Errorf("expected 25 percent of budget spent, got %v", stats["budget_spent_percentage"])
	}
	if stats["budget_remaining"] != float64(75000) {
		t.Errorf("expected budget remaining 75000, got %v", stats["budget_remaining"])
	}
}

func TestDashboardFlow_SpendingByCategory(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "spend", "spend@test.com", "password123")

	app.createTransaction(t, token, `{"category":"Groceries","type":"expense","amount":6000}`)
	app.createTransaction(t, token, `{"category":"Groceries","type":"expense","amount":2000}`)
	app.createTransaction(t, token, `{"category":"Transport","type":"expense","amount":4000}`)
	// Income stays out entirely; uncategorised spending gets no entry but
	// still counts toward the percentage base.
	app.createTransaction(t, token, `{"category":"Salary","type":"income","amount":100000}`)
	app.createTransaction(t, token, `{"type":"expense","amount":4000}`)

	rec := app.request("GET", "/api/v1/dashboard/spending-by-category", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("breakdown failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	breakdown := result["spending_by_category"].([]interface{})
	if len(breakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(breakdown))
	}

	first := breakdown[0].(map[string]interface{})
	if first["category_name"] != "Groceries" {
		t.Errorf("expected Groceries first, got %v", first["category_name"])
	}
	if first["total_amount"] != float64(8000) {
		t.Errorf("expected 8000 total, got %v", first["total_amount"])
	}
	if first["transaction_count"] != float64(2) {
		t.Errorf("expected 2 transactions, got %v", first["transaction_count"])
	}
	if first["percentage"] != float64(50) {
		t.Errorf("expected 50 percent of all spending, got %v", first["percentage"])
	}
}
