package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Kind:   kind,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with the given kind, amount,
// and date under a generic category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, kind models.TransactionKind, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransactionInCategory(t, db, userID, kind, amount, date, "Test Category")
}

// CreateTestTransactionInCategory creates a transaction with an explicit
// category label.
func CreateTestTransactionInCategory(t *testing.T, db *gorm.DB, userID uint, kind models.TransactionKind, amount float64, date time.Time, category string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        date,
		Source:      models.TransactionSourceManual,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAsset creates an asset with a single opening balance snapshot.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID uint, openingBalance float64, openingDate time.Time) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Asset %d", nextID()),
		Type:           models.AssetTypeSavings,
		CurrentBalance: openingBalance,
		LastUpdated:    openingDate,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}

	balance := &models.AssetBalance{
		AssetID: asset.ID,
		Amount:  openingBalance,
		Date:    openingDate,
	}
	if err := db.Create(balance).Error; err != nil {
		t.Fatalf("failed to create test asset balance: %v", err)
	}
	asset.Balances = []models.AssetBalance{*balance}
	return asset
}

// CreateTestBudgetLine appends a line to the user's budget, creating the
// budget row on first use.
func CreateTestBudgetLine(t *testing.T, db *gorm.DB, userID uint, name string, kind models.CategoryKind, amount float64, frequency models.BudgetFrequency) *models.BudgetLine {
	t.Helper()

	var budget models.Budget
	if err := db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		budget = models.Budget{UserID: userID, Name: "Test Budget"}
		if err := db.Create(&budget).Error; err != nil {
			t.Fatalf("failed to create test budget: %v", err)
		}
	}

	line := &models.BudgetLine{
		BudgetID:      budget.ID,
		Name:          name,
		Kind:          kind,
		PlannedAmount: amount,
		Frequency:     frequency,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("failed to create test budget line: %v", err)
	}
	return line
}
