package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_ReplaceAndCheckVariance(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budget@test.com", "password123")

	// First access creates the master budget
	rec := app.request("GET", "/api/v1/budget", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting budget, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	budget := result["budget"].(map[string]interface{})
	if budget["name"] != "My Budget" {
		t.Errorf("expected default budget name, got %v", budget["name"])
	}

	// Replace with planned lines across frequencies
	rec = app.request("PUT", "/api/v1/budget",
		`{"name":"My Budget","categories":[
			{"name":"Salary","kind":"income","planned_amount":60000,"frequency":"yearly"},
			{"name":"Groceries","kind":"expense","planned_amount":400,"frequency":"monthly"},
			{"name":"Transport","kind":"expense","planned_amount":30,"frequency":"weekly"}
		]}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 replacing budget, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	totals := result["totals"].(map[string]interface{})
	if totals["monthly_income"].(float64) != 5000 {
		t.Errorf("expected monthly income 5000, got %v", totals["monthly_income"])
	}
	wantExpenses := 400 + 30*52.0/12.0
	if diff := totals["monthly_expenses"].(float64) - wantExpenses; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected monthly expenses %.4f, got %v", wantExpenses, totals["monthly_expenses"])
	}

	// Actual spending in a fixed month
	for _, body := range []string{
		`{"amount":250,"kind":"expense","category":"Groceries","description":"Weekly shop","date":"2024-03-05T00:00:00Z"}`,
		`{"amount":300,"kind":"expense","category":"Groceries","description":"Big shop","date":"2024-03-19T00:00:00Z"}`,
		`{"amount":5000,"kind":"income","category":"Salary","description":"March pay","date":"2024-03-15T00:00:00Z"}`,
	} {
		rec = app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 creating transaction, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	// Variance for that month
	rec = app.request("GET", "/api/v1/budget/variance?year=2024&month=3", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from variance, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	rows := result["variance"].([]interface{})

	byCategory := map[string]map[string]interface{}{}
	for _, row := range rows {
		r := row.(map[string]interface{})
		byCategory[r["category"].(string)] = r
	}

	groceries, ok := byCategory["Groceries"]
	if !ok {
		t.Fatalf("expected a Groceries variance row, got %v", rows)
	}
	if groceries["actual"].(float64) != 550 {
		t.Errorf("expected Groceries actual 550, got %v", groceries["actual"])
	}
	if groceries["variance"].(float64) != 150 {
		t.Errorf("expected Groceries variance 150, got %v", groceries["variance"])
	}

	salary, ok := byCategory["Salary"]
	if !ok {
		t.Fatalf("expected a Salary variance row, got %v", rows)
	}
	if salary["variance"].(float64) != 0 {
		t.Errorf("expected Salary on target, got %v", salary["variance"])
	}

	// Transport was budgeted but never spent; it still gets a row
	transport, ok := byCategory["Transport"]
	if !ok {
		t.Fatalf("expected a Transport variance row, got %v", rows)
	}
	if transport["actual"].(float64) != 0 {
		t.Errorf("expected Transport actual 0, got %v", transport["actual"])
	}
}

func TestBudgetFlow_PatchLine(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "patchline@test.com", "password123")

	rec := app.request("PUT", "/api/v1/budget",
		`{"name":"My Budget","categories":[{"name":"Rent","kind":"expense","planned_amount":1800,"frequency":"monthly"}]}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 replacing budget, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	budget := result["budget"].(map[string]interface{})
	lines := budget["categories"].([]interface{})
	lineID := lines[0].(map[string]interface{})["id"].(float64)

	rec = app.request("PATCH", fmt.Sprintf("/api/v1/budget/lines/%.0f", lineID),
		`{"planned_amount":1950}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 patching line, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	line := result["category"].(map[string]interface{})
	if line["planned_amount"].(float64) != 1950 {
		t.Errorf("expected planned amount 1950, got %v", line["planned_amount"])
	}
	if line["name"] != "Rent" {
		t.Errorf("expected untouched fields preserved, got %v", line["name"])
	}
}

func TestBudgetFlow_IsolatedBetweenUsers(t *testing.T) {
	app := setupApp(t)
	tokenA, _, _ := app.registerUser(t, "alice@test.com", "password123")
	tokenB, _, _ := app.registerUser(t, "bob@test.com", "password123")

	rec := app.request("PUT", "/api/v1/budget",
		`{"name":"Alice Budget","categories":[{"name":"Rent","kind":"expense","planned_amount":2000,"frequency":"monthly"}]}`, tokenA)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/budget", "", tokenB)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	budget := result["budget"].(map[string]interface{})
	if budget["name"] == "Alice Budget" {
		t.Error("expected each user to get their own budget")
	}
	if lines := budget["categories"].([]interface{}); len(lines) != 0 {
		t.Errorf("expected an empty budget for the second user, got %d lines", len(lines))
	}
}
