package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	token, _, userID := app.registerUser(t, "auth@test.com", "password123")
	if userID == 0 {
		t.Fatal("expected a user ID from registration")
	}

	// Registration seeds the default category set
	rec := app.request("GET", "/api/v1/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing categories, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	categories := result["categories"].([]interface{})
	if len(categories) != 12 {
		t.Errorf("expected 12 default categories after registration, got %d", len(categories))
	}

	// Fresh login issues a working token
	loginToken, _ := app.loginUser(t, "auth@test.com", "password123")
	rec = app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile, got %d: %s", rec.Code, rec.Body.String())
	}
	profile := parseJSON(t, rec)
	user := profile["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" {
		t.Errorf("expected auth@test.com, got %v", user["email"])
	}
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "dup@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"email":"dup@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_WrongPassword(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "wrongpw@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"wrongpw@test.com","password":"not-the-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d: %s", rec.Code, rec.Body.String())
	}

	// Unknown email produces the same status so the two cases are indistinguishable
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"nobody@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_RefreshRotation(t *testing.T) {
	app := setupApp(t)
	_, refreshToken, _ := app.registerUser(t, "refresh@test.com", "password123")

	// Exchange the refresh token for a new pair
	rec := app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 refreshing, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	newAccess := result["access_token"].(string)

	// The new access token works
	rec = app.request("GET", "/api/v1/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with refreshed token, got %d", rec.Code)
	}

	// Rotation invalidates the old refresh token
	rec = app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 reusing a rotated refresh token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	paths := []string{"/api/v1/profile", "/api/v1/transactions", "/api/v1/budget", "/api/v1/assets"}
	for _, path := range paths {
		rec := app.request("GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without token, got %d", path, rec.Code)
		}
	}
}

func TestAuthFlow_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	app := setupApp(t)
	_, refreshToken, _ := app.registerUser(t, "tokentype@test.com", "password123")

	rec := app.request("GET", "/api/v1/profile", "", refreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 using refresh token as access token, got %d", rec.Code)
	}
}
