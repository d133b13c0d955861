package services

import (
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finboard/internal/categorizer"
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/uuid"
)

// bankService handles monthly bank balances and statement imports.
type bankService struct {
	db *gorm.DB
}

// NewBankService creates a new BankServicer.
func NewBankService(db *gorm.DB) BankServicer {
	return &bankService{db: db}
}

// UpsertMonthlyBalance records the bank balance for a calendar month,
// replacing any existing value for the same (user, year, month).
func (s *bankService) UpsertMonthlyBalance(userID uint, year, month int, balance float64) (*models.MonthlyBankBalance, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	record := &models.MonthlyBankBalance{
		UserID:  userID,
		Year:    year,
		Month:   month,
		Balance: balance,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so the caller gets the row's real ID and timestamps after an
	// update conflict
	var saved models.MonthlyBankBalance
	if err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// GetMonthlyBalances returns the user's monthly bank balances in
// chronological order, optionally restricted to one year.
func (s *bankService) GetMonthlyBalances(userID uint, year *int) ([]models.MonthlyBankBalance, error) {
	query := s.db.Where("user_id = ?", userID)
	if year != nil {
		query = query.Where("year = ?", *year)
	}

	var balances []models.MonthlyBankBalance
	if err := query.Order("year ASC, month ASC").Find(&balances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balances, nil
}

// GetMonthlyAggregates sums imported transactions per month of a year into
// income, expense, and net totals.
func (s *bankService) GetMonthlyAggregates(userID uint, year int) ([]MonthlyAggregate, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND source = ? AND date BETWEEN ? AND ?",
		userID, models.TransactionSourceImported, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byMonth := make(map[int]*MonthlyAggregate)
	for _, t := range transactions {
		m := int(t.Date.Month())
		agg, ok := byMonth[m]
		if !ok {
			agg = &MonthlyAggregate{Year: year, Month: m}
			byMonth[m] = agg
		}
		if t.Kind == models.TransactionKindIncome {
			agg.Income += t.Amount
		} else {
			agg.Expenses += t.Amount
		}
	}

	aggregates := make([]MonthlyAggregate, 0, len(byMonth))
	for m := 1; m <= 12; m++ {
		if agg, ok := byMonth[m]; ok {
			agg.Net = agg.Income - agg.Expenses
			aggregates = append(aggregates, *agg)
		}
	}
	return aggregates, nil
}

// ImportStatement converts parsed statement rows into transactions. Signed
// amounts become unsigned magnitudes with a kind: negative is expense,
// positive is income. Categories are assigned by the merchant categorizer
// and every row shares one time-ordered batch ID.
func (s *bankService) ImportStatement(userID uint, rows []StatementRow) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyImport
	}

	batchID := uuid.New()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			kind := models.TransactionKindExpense
			if row.Amount > 0 {
				kind = models.TransactionKindIncome
			}
			transaction := models.Transaction{
				UserID:        userID,
				Amount:        math.Abs(row.Amount),
				Kind:          kind,
				Category:      categorizer.Categorize(row.Description),
				Description:   row.Description,
				Date:          row.Date,
				Source:        models.TransactionSourceImported,
				ImportBatchID: batchID,
			}
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &ImportResult{BatchID: batchID, Imported: len(rows)}, nil
}
