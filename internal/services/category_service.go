package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(userID uint, name string, kind models.CategoryKind, sortOrder int) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	// Names are unique per user regardless of case
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		SortOrder: sortOrder,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves the user's categories in display order,
// optionally filtered by kind.
func (s *categoryService) GetUserCategories(userID uint, kind *models.CategoryKind) ([]models.Category, error) {
	query := s.db.Where("user_id = ?", userID)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	var categories []models.Category
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category's name or display order.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name string, sortOrder *int) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" && name != category.Name {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", userID, name, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if sortOrder != nil {
		updates["sort_order"] = *sortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category. Transactions keep their category
// label as plain text, so historical records are unaffected.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// EnsureDefaults provisions the default category set for a user. Idempotent:
// if the user already has any categories it returns the existing set without
// creating anything.
func (s *categoryService) EnsureDefaults(userID uint) ([]models.Category, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return s.GetUserCategories(userID, nil)
	}

	defaults := make([]models.Category, 0, len(models.DefaultExpenseCategories)+len(models.DefaultIncomeCategories))
	for i, name := range models.DefaultExpenseCategories {
		defaults = append(defaults, models.Category{
			UserID:    userID,
			Name:      name,
			Kind:      models.CategoryKindExpense,
			SortOrder: i,
			IsDefault: true,
		})
	}
	for i, name := range models.DefaultIncomeCategories {
		defaults = append(defaults, models.Category{
			UserID:    userID,
			Name:      name,
			Kind:      models.CategoryKindIncome,
			SortOrder: i,
			IsDefault: true,
		})
	}

	if err := s.db.Create(&defaults).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetUserCategories(userID, nil)
}
