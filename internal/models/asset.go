package models

import "time"

// AssetType represents the type of tracked asset
type AssetType string

const (
	AssetTypeSavings    AssetType = "savings"
	AssetTypeInvestment AssetType = "investment"
	AssetTypeProperty   AssetType = "property"
	AssetTypeOther      AssetType = "other"
)

// Asset represents a tracked asset with a dated balance history.
// CurrentBalance and LastUpdated are derived from the snapshot with the
// maximum date; the asset service recomputes them on every balance change.
type Asset struct {
	Base
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Type           AssetType `gorm:"not null" json:"type"`
	Description    string    `json:"description"`
	Institution    string    `json:"institution"`
	AccountNumber  string    `json:"account_number"`
	CurrentBalance float64   `gorm:"not null" json:"current_balance"`
	LastUpdated    time.Time `gorm:"not null" json:"last_updated"`

	Balances []AssetBalance `gorm:"foreignKey:AssetID" json:"balances,omitempty"`
}

// AssetBalance is a dated balance observation for an asset. Immutable
// time-series data, hard-deleted, so no Base embed.
type AssetBalance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   uint      `gorm:"not null;index" json:"asset_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
