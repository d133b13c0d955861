package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset together with its opening balance snapshot.
// An asset always has at least one snapshot.
func (s *assetService) CreateAsset(
	userID uint,
	name string,
	assetType models.AssetType,
	description, institution, accountNumber string,
	openingBalance float64,
	openingDate time.Time,
) (*models.Asset, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if openingDate.IsZero() {
		openingDate = time.Now().UTC()
	}

	asset := &models.Asset{
		UserID:         userID,
		Name:           name,
		Type:           assetType,
		Description:    description,
		Institution:    institution,
		AccountNumber:  accountNumber,
		CurrentBalance: openingBalance,
		LastUpdated:    openingDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		opening := &models.AssetBalance{
			AssetID: asset.ID,
			Amount:  openingBalance,
			Date:    openingDate,
		}
		if err := tx.Create(opening).Error; err != nil {
			return err
		}
		asset.Balances = []models.AssetBalance{*opening}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetUserAssets returns all assets for the user with their balance history.
func (s *assetService) GetUserAssets(userID uint) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).
		Preload("Balances", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Order("name ASC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// GetAssetByID returns an asset with its balance history if it belongs to the user.
func (s *assetService) GetAssetByID(userID, assetID uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).
		Preload("Balances", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset updates an asset's descriptive fields. Balances are managed
// through AddBalance and DeleteBalance only.
func (s *assetService) UpdateAsset(userID, assetID uint, name, description, institution, accountNumber string) (*models.Asset, error) {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if institution != "" {
		updates["institution"] = institution
	}
	if accountNumber != "" {
		updates["account_number"] = accountNumber
	}

	if len(updates) > 0 {
		if err := s.db.Model(asset).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return asset, nil
}

// DeleteAsset soft-deletes an asset and hard-deletes its balance history.
func (s *assetService) DeleteAsset(userID, assetID uint) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", assetID).Delete(&models.AssetBalance{}).Error; err != nil {
			return err
		}
		return tx.Delete(asset).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddBalance records a new balance snapshot and recomputes the derived
// current balance in the same database transaction.
func (s *assetService) AddBalance(userID, assetID uint, amount float64, date time.Time) (*models.Asset, error) {
	if _, err := s.GetAssetByID(userID, assetID); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		balance := &models.AssetBalance{
			AssetID: assetID,
			Amount:  amount,
			Date:    date,
		}
		if err := tx.Create(balance).Error; err != nil {
			return err
		}
		return s.recomputeDerived(tx, assetID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetAssetByID(userID, assetID)
}

// DeleteBalance removes a balance snapshot. The last remaining snapshot of
// an asset cannot be deleted; every asset keeps at least one.
func (s *assetService) DeleteBalance(userID, assetID, balanceID uint) (*models.Asset, error) {
	if _, err := s.GetAssetByID(userID, assetID); err != nil {
		return nil, err
	}

	var balance models.AssetBalance
	if err := s.db.Where("id = ? AND asset_id = ?", balanceID, assetID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBalanceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.AssetBalance{}).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count <= 1 {
		return nil, apperrors.ErrLastBalance
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&balance).Error; err != nil {
			return err
		}
		return s.recomputeDerived(tx, assetID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetAssetByID(userID, assetID)
}

// recomputeDerived refreshes an asset's current_balance and last_updated
// from the snapshot with the maximum date. Must run inside the transaction
// that mutated the snapshots.
func (s *assetService) recomputeDerived(tx *gorm.DB, assetID uint) error {
	var latest models.AssetBalance
	if err := tx.Where("asset_id = ?", assetID).
		Order("date DESC, id DESC").
		First(&latest).Error; err != nil {
		return err
	}
	return tx.Model(&models.Asset{}).Where("id = ?", assetID).Updates(map[string]interface{}{
		"current_balance": latest.Amount,
		"last_updated":    latest.Date,
	}).Error
}
