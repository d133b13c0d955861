package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/timeline"
)

const defaultBudgetName = "My Budget"

// budgetService handles the per-user master budget and its variance report.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetOrCreateBudget returns the user's master budget, creating an empty one
// on first access. Each user has exactly one budget.
func (s *budgetService) GetOrCreateBudget(userID uint) (*BudgetView, error) {
	var budget models.Budget
	err := s.db.Where("user_id = ?", userID).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		budget = models.Budget{
			UserID: userID,
			Name:   defaultBudgetName,
			Lines:  []models.BudgetLine{},
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	} else if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	view := &BudgetView{Budget: &budget, Totals: computeTotals(budget.Lines)}
	return view, nil
}

// ReplaceBudget replaces the budget's name, description, and full line set.
func (s *budgetService) ReplaceBudget(userID uint, name, description string, lines []BudgetLineInput) (*BudgetView, error) {
	view, err := s.GetOrCreateBudget(userID)
	if err != nil {
		return nil, err
	}
	budget := view.Budget

	if name == "" {
		name = budget.Name
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(budget).Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error; err != nil {
			return err
		}
		// Full replace: old lines go away entirely, including soft-delete rows
		if err := tx.Unscoped().Where("budget_id = ?", budget.ID).Delete(&models.BudgetLine{}).Error; err != nil {
			return err
		}
		for _, in := range lines {
			line := models.BudgetLine{
				BudgetID:      budget.ID,
				Name:          in.Name,
				Kind:          in.Kind,
				PlannedAmount: in.PlannedAmount,
				Frequency:     in.Frequency,
				Description:   in.Description,
				CategoryID:    in.CategoryID,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetOrCreateBudget(userID)
}

// PatchLine applies a partial update to a single budget line.
func (s *budgetService) PatchLine(userID, lineID uint, patch BudgetLinePatch) (*models.BudgetLine, error) {
	view, err := s.GetOrCreateBudget(userID)
	if err != nil {
		return nil, err
	}

	var line models.BudgetLine
	if err := s.db.Where("id = ? AND budget_id = ?", lineID, view.Budget.ID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetLineNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Kind != nil {
		updates["kind"] = *patch.Kind
	}
	if patch.PlannedAmount != nil {
		updates["planned_amount"] = *patch.PlannedAmount
	}
	if patch.Frequency != nil {
		updates["frequency"] = *patch.Frequency
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&line).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &line, nil
}

// Variance compares the budget's monthly-normalized planned amounts against
// the actual transactions of one calendar month.
func (s *budgetService) Variance(userID uint, year, month int) ([]timeline.CategoryVariance, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	view, err := s.GetOrCreateBudget(userID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lines := make([]timeline.BudgetLine, len(view.Budget.Lines))
	for i, l := range view.Budget.Lines {
		lines[i] = timeline.BudgetLine{
			Name:          l.Name,
			Kind:          timeline.Kind(l.Kind),
			PlannedAmount: l.PlannedAmount,
			Frequency:     timeline.Frequency(l.Frequency),
		}
	}

	actuals := make([]timeline.CategoryTransaction, len(transactions))
	for i, t := range transactions {
		actuals[i] = timeline.CategoryTransaction{
			Category: t.Category,
			Kind:     timeline.Kind(t.Kind),
			Amount:   t.Amount,
		}
	}

	return timeline.Variance(lines, actuals), nil
}

// computeTotals derives the monthly-normalized income, expense, and net
// totals over a budget's lines.
func computeTotals(lines []models.BudgetLine) BudgetTotals {
	var totals BudgetTotals
	for _, l := range lines {
		monthly := timeline.MonthlyAmount(l.PlannedAmount, timeline.Frequency(l.Frequency))
		if l.Kind == models.CategoryKindIncome {
			totals.MonthlyIncome += monthly
		} else {
			totals.MonthlyExpenses += monthly
		}
	}
	totals.MonthlyNet = totals.MonthlyIncome - totals.MonthlyExpenses
	return totals
}
