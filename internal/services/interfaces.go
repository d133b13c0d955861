package services

import (
	"time"

	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/timeline"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, kind models.CategoryKind, sortOrder int) (*models.Category, error)
	GetUserCategories(userID uint, kind *models.CategoryKind) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name string, sortOrder *int) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
	EnsureDefaults(userID uint) ([]models.Category, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Kind      *models.TransactionKind
	Category  *string
	Source    *models.TransactionSource
	MinAmount *float64
	MaxAmount *float64
}

// MonthlySummary aggregates one month of transactions for the monthly view.
type MonthlySummary struct {
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	Net           float64            `json:"net"`
	ByCategory    map[string]float64 `json:"by_category"`
}

// MonthlyView is the transactions-plus-summary response for a single month.
type MonthlyView struct {
	Year         int                  `json:"year"`
	Month        int                  `json:"month"`
	Transactions []models.Transaction `json:"transactions"`
	Summary      MonthlySummary       `json:"summary"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, amount float64, kind models.TransactionKind, category, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, amount *float64, kind *models.TransactionKind, category, description string, date *time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	GetMonthlyView(userID uint, year, month int) (*MonthlyView, error)
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(userID uint, name string, assetType models.AssetType, description, institution, accountNumber string, openingBalance float64, openingDate time.Time) (*models.Asset, error)
	GetUserAssets(userID uint) ([]models.Asset, error)
	GetAssetByID(userID, assetID uint) (*models.Asset, error)
	UpdateAsset(userID, assetID uint, name, description, institution, accountNumber string) (*models.Asset, error)
	DeleteAsset(userID, assetID uint) error
	AddBalance(userID, assetID uint, amount float64, date time.Time) (*models.Asset, error)
	DeleteBalance(userID, assetID, balanceID uint) (*models.Asset, error)
}

// BudgetTotals carries the monthly-normalized totals over a budget's lines.
type BudgetTotals struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	MonthlyNet      float64 `json:"monthly_net"`
}

// BudgetView is a budget together with its derived totals.
type BudgetView struct {
	Budget *models.Budget `json:"budget"`
	Totals BudgetTotals   `json:"totals"`
}

// BudgetLineInput is the write shape for one budget or scenario line.
type BudgetLineInput struct {
	Name          string                 `json:"name" binding:"required"`
	Kind          models.CategoryKind    `json:"kind" binding:"required,category_kind"`
	PlannedAmount float64                `json:"planned_amount" binding:"gte=0"`
	Frequency     models.BudgetFrequency `json:"frequency" binding:"required,frequency"`
	Description   string                 `json:"description"`
	CategoryID    *uint                  `json:"category_id"`
}

// BudgetLinePatch is the partial-update shape for a single budget line.
type BudgetLinePatch struct {
	Name          *string                 `json:"name"`
	Kind          *models.CategoryKind    `json:"kind" binding:"omitempty,category_kind"`
	PlannedAmount *float64                `json:"planned_amount" binding:"omitempty,gte=0"`
	Frequency     *models.BudgetFrequency `json:"frequency" binding:"omitempty,frequency"`
	Description   *string                 `json:"description"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	GetOrCreateBudget(userID uint) (*BudgetView, error)
	ReplaceBudget(userID uint, name, description string, lines []BudgetLineInput) (*BudgetView, error)
	PatchLine(userID, lineID uint, patch BudgetLinePatch) (*models.BudgetLine, error)
	Variance(userID uint, year, month int) ([]timeline.CategoryVariance, error)
}

// TimelineServicer defines the contract for the aggregated timeline view.
type TimelineServicer interface {
	GetTimeline(userID uint, granularity timeline.Granularity, start, end time.Time) ([]timeline.TimelineRecord, error)
}

// ScenarioServicer defines the contract for what-if scenario projections.
type ScenarioServicer interface {
	CreateScenario(userID uint, name, description string, projectionMonths int, lines []BudgetLineInput) (*models.Scenario, error)
	GetUserScenarios(userID uint) ([]models.Scenario, error)
	GetScenarioByID(userID, scenarioID uint) (*models.Scenario, error)
	UpdateScenario(userID, scenarioID uint, name, description string, projectionMonths *int, lines []BudgetLineInput) (*models.Scenario, error)
	DeleteScenario(userID, scenarioID uint) error
}

// StatementRow is one parsed line of an imported bank statement. Amount keeps
// the bank's sign convention; the import converts it to an unsigned amount
// plus a transaction kind.
type StatementRow struct {
	Date        time.Time
	Description string
	Amount      float64
}

// ImportResult summarizes a statement import.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
}

// MonthlyAggregate is one month of income/expense/net totals.
type MonthlyAggregate struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// BankServicer defines the contract for bank balance and statement logic.
type BankServicer interface {
	UpsertMonthlyBalance(userID uint, year, month int, balance float64) (*models.MonthlyBankBalance, error)
	GetMonthlyBalances(userID uint, year *int) ([]models.MonthlyBankBalance, error)
	GetMonthlyAggregates(userID uint, year int) ([]MonthlyAggregate, error)
	ImportStatement(userID uint, rows []StatementRow) (*ImportResult, error)
}
