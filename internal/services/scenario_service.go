package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/timeline"
)

const (
	minProjectionMonths = 1
	maxProjectionMonths = 120
)

// scenarioService handles what-if scenarios and their derived projections.
type scenarioService struct {
	db *gorm.DB
}

// NewScenarioService creates a new ScenarioServicer.
func NewScenarioService(db *gorm.DB) ScenarioServicer {
	return &scenarioService{db: db}
}

// CreateScenario creates a scenario and generates its monthly projections.
func (s *scenarioService) CreateScenario(userID uint, name, description string, projectionMonths int, lines []BudgetLineInput) (*models.Scenario, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario name is required")
	}
	if projectionMonths == 0 {
		projectionMonths = 12
	}
	if projectionMonths < minProjectionMonths || projectionMonths > maxProjectionMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "projection_months must be between 1 and 120")
	}

	scenario := &models.Scenario{
		UserID:           userID,
		Name:             name,
		Description:      description,
		ProjectionMonths: projectionMonths,
		IsActive:         true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(scenario).Error; err != nil {
			return err
		}
		for _, in := range lines {
			line := models.ScenarioLine{
				ScenarioID:    scenario.ID,
				Name:          in.Name,
				Kind:          in.Kind,
				PlannedAmount: in.PlannedAmount,
				Frequency:     in.Frequency,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			scenario.Lines = append(scenario.Lines, line)
		}
		return s.regenerateProjections(tx, scenario)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetScenarioByID(userID, scenario.ID)
}

// GetUserScenarios returns all scenarios for the user with lines and projections.
func (s *scenarioService) GetUserScenarios(userID uint) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := s.db.Where("user_id = ?", userID).
		Preload("Lines").
		Preload("Projections", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC, month ASC")
		}).
		Order("created_at DESC").
		Find(&scenarios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenarios, nil
}

// GetScenarioByID returns a scenario with lines and projections if it belongs to the user.
func (s *scenarioService) GetScenarioByID(userID, scenarioID uint) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := s.db.Where("id = ? AND user_id = ?", scenarioID, userID).
		Preload("Lines").
		Preload("Projections", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC, month ASC")
		}).
		First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &scenario, nil
}

// UpdateScenario updates a scenario. When its lines or horizon change the
// projections are regenerated in the same transaction.
func (s *scenarioService) UpdateScenario(userID, scenarioID uint, name, description string, projectionMonths *int, lines []BudgetLineInput) (*models.Scenario, error) {
	scenario, err := s.GetScenarioByID(userID, scenarioID)
	if err != nil {
		return nil, err
	}

	if projectionMonths != nil && (*projectionMonths < minProjectionMonths || *projectionMonths > maxProjectionMonths) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "projection_months must be between 1 and 120")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{})
		if name != "" {
			updates["name"] = name
		}
		if description != "" {
			updates["description"] = description
		}
		if projectionMonths != nil {
			updates["projection_months"] = *projectionMonths
			scenario.ProjectionMonths = *projectionMonths
		}
		if len(updates) > 0 {
			if err := tx.Model(scenario).Updates(updates).Error; err != nil {
				return err
			}
		}

		if lines != nil {
			if err := tx.Unscoped().Where("scenario_id = ?", scenario.ID).Delete(&models.ScenarioLine{}).Error; err != nil {
				return err
			}
			scenario.Lines = scenario.Lines[:0]
			for _, in := range lines {
				line := models.ScenarioLine{
					ScenarioID:    scenario.ID,
					Name:          in.Name,
					Kind:          in.Kind,
					PlannedAmount: in.PlannedAmount,
					Frequency:     in.Frequency,
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
				scenario.Lines = append(scenario.Lines, line)
			}
		}

		if lines != nil || projectionMonths != nil {
			return s.regenerateProjections(tx, scenario)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetScenarioByID(userID, scenarioID)
}

// DeleteScenario soft-deletes a scenario and drops its derived rows.
func (s *scenarioService) DeleteScenario(userID, scenarioID uint) error {
	scenario, err := s.GetScenarioByID(userID, scenarioID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scenario_id = ?", scenarioID).Delete(&models.ScenarioProjection{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("scenario_id = ?", scenarioID).Delete(&models.ScenarioLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(scenario).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// regenerateProjections rebuilds the scenario's monthly projections starting
// from the current month. Net income accumulates into a running cumulative
// net across the horizon.
func (s *scenarioService) regenerateProjections(tx *gorm.DB, scenario *models.Scenario) error {
	if err := tx.Where("scenario_id = ?", scenario.ID).Delete(&models.ScenarioProjection{}).Error; err != nil {
		return err
	}

	var monthlyIncome, monthlyExpenses float64
	for _, l := range scenario.Lines {
		monthly := timeline.MonthlyAmount(l.PlannedAmount, timeline.Frequency(l.Frequency))
		if l.Kind == models.CategoryKindIncome {
			monthlyIncome += monthly
		} else {
			monthlyExpenses += monthly
		}
	}
	net := monthlyIncome - monthlyExpenses

	now := time.Now().UTC()
	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cumulative := 0.0
	for i := 0; i < scenario.ProjectionMonths; i++ {
		cumulative += net
		projection := models.ScenarioProjection{
			ScenarioID:    scenario.ID,
			Month:         int(cursor.Month()),
			Year:          cursor.Year(),
			TotalIncome:   monthlyIncome,
			TotalExpenses: monthlyExpenses,
			NetIncome:     net,
			CumulativeNet: cumulative,
		}
		if err := tx.Create(&projection).Error; err != nil {
			return err
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return nil
}
