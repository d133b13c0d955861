package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a new manual transaction. Negative amounts are
// normalized to their magnitude; the kind carries the sign.
func (s *transactionService) CreateTransaction(
	userID uint,
	amount float64,
	kind models.TransactionKind,
	category, description string,
	date time.Time,
) (*models.Transaction, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Amount:      math.Abs(amount),
		Kind:        kind,
		Category:    category,
		Description: description,
		Date:        date,
		Source:      models.TransactionSourceManual,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions returns a paginated list of transactions for the user
// with optional filters, newest first.
func (s *transactionService) GetUserTransactions(
	userID uint,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Kind != nil {
		base = base.Where("kind = ?", *filter.Kind)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Source != nil {
		base = base.Where("source = ?", *filter.Source)
	}
	if filter.MinAmount != nil {
		base = base.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		base = base.Where("amount <= ?", *filter.MaxAmount)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction by ID if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates an existing transaction's fields.
func (s *transactionService) UpdateTransaction(
	userID, transactionID uint,
	amount *float64,
	kind *models.TransactionKind,
	category, description string,
	date *time.Time,
) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		updates["amount"] = math.Abs(*amount)
	}
	if kind != nil {
		updates["kind"] = *kind
	}
	if category != "" {
		updates["category"] = category
	}
	if description != "" {
		updates["description"] = description
	}
	if date != nil {
		updates["date"] = *date
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetMonthlyView returns one calendar month of transactions with a per-kind
// and per-category summary.
func (s *transactionService) GetMonthlyView(userID uint, year, month int) (*MonthlyView, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := MonthlySummary{ByCategory: make(map[string]float64)}
	for _, t := range transactions {
		if t.Kind == models.TransactionKindIncome {
			summary.TotalIncome += t.Amount
		} else {
			summary.TotalExpenses += t.Amount
		}
		summary.ByCategory[t.Category] += t.Amount
	}
	summary.Net = summary.TotalIncome - summary.TotalExpenses

	return &MonthlyView{
		Year:         year,
		Month:        month,
		Transactions: transactions,
		Summary:      summary,
	}, nil
}
