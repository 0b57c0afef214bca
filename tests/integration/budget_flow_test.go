package integration

import (
	"net/http"
	"testing"
)

// expenseCategoryID returns the ID of a seeded default expense category by name.
func expenseCategoryID(t *testing.T, app *testApp, token, name string) string {
	t.Helper()
	rec := app.request("GET", "/api/v1/categories?type=expense&page_size=50", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	for _, item := range data {
		category := item.(map[string]interface{})
		if category["name"] == name {
			return category["id"].(string)
		}
	}
	t.Fatalf("default category %q not found", name)
	return ""
}

func TestBudgetFlow_CreateAndProgress(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "budgetflow", "budgetflow@test.com", "password123")
	categoryID := expenseCategoryID(t, app, token, "Groceries")

	// Create a monthly budget of 100.00
	rec := app.request("POST", "/api/v1/budgets",
		`{"category_id":"`+categoryID+`","name":"Groceries cap","amount":10000,"period":"monthly"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := budget["id"].(string)
	if budget["alert_threshold"] != float64(0.8) {
		t.Errorf("expected default threshold 0.8, got %v", budget["alert_threshold"])
	}

	// Spend 40.00 in the category this month
	app.createTransaction(t, token, `{"category":"Groceries","type":"expense","amount":2500}`)
	app.createTransaction(t, token, `{"category":"Groceries","type":"expense","amount":1500}`)

	// Income and other categories must not count
	app.createTransaction(t, token, `{"category":"Salary","type":"income","amount":250000}`)
	app.createTransaction(t, token, `{"category":"Transport","type":"expense","amount":9999}`)

	rec = app.request("GET", "/api/v1/budgets/"+budgetID+"/progress", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("progress failed: %d %s", rec.Code, rec.Body.String())
	}
	progress := parseJSON(t, rec)["progress"].(map[string]interface{})
	if progress["spent"] != float64(4000) {
		t.Errorf("expected spent 4000, got %v", progress["spent"])
	}
	if progress["remaining"] != float64(6000) {
		t.Errorf("expected remaining 6000, got %v", progress["remaining"])
	}
	if progress["percentage"] != float64(40) {
		t.Errorf("expected percentage 40, got %v", progress["percentage"])
	}
	if progress["alert"] != false {
		t.Error("expected no alert at 40 percent")
	}
}

func TestBudgetFlow_UpdateAndFilters(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "budgetedit", "budgetedit@test.com", "password123")
	categoryID := expenseCategoryID(t, app, token, "Transport")

	rec := app.request("POST", "/api/v1/budgets",
		`{"category_id":"`+categoryID+`","name":"Transport cap","amount":5000,"period":"monthly"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(string)

	// Update amount and threshold
	rec = app.request("PUT", "/api/v1/budgets/"+budgetID,
		`{"amount":7500,"alert_threshold":0.5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["budget"].(map[string]interface{})
	if updated["amount"] != float64(7500) {
		t.Errorf("expected amount 7500, got %v", updated["amount"])
	}
	if updated["name"] != "Transport cap" {
		t.Errorf("name should be unchanged, got %v", updated["name"])
	}

	// Period filter
	rec = app.request("GET", "/api/v1/budgets?period=monthly", "", token)
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 monthly budget, got %d", len(data))
	}
	rec = app.request("GET", "/api/v1/budgets?period=yearly", "", token)
	data = parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 0 {
		t.Fatalf("expected 0 yearly budgets, got %d", len(data))
	}
}

func TestBudgetFlow_IsolatedBetweenUsers(t *testing.T) {
	app := setupApp(t)

	tokenA, _ := app.registerUser(t, "bfa", "bfa@test.com", "password123")
	tokenB, _ := app.registerUser(t, "bfb", "bfb@test.com", "password123")

	categoryID := expenseCategoryID(t, app, tokenA, "Food")
	rec := app.request("POST", "/api/v1/budgets",
		`{"category_id":"`+categoryID+`","name":"Food cap","amount":5000,"period":"monthly"}`, tokenA)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(string)

	rec = app.request("GET", "/api/v1/budgets/"+budgetID, "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's budget, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/budgets/"+budgetID, "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting another user's budget, got %d", rec.Code)
	}
}
