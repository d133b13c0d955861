package models

import "time"

// MonthlyBankBalance is a point-in-time bank balance per calendar month.
// Upsert-only time-series data, one row per user+year+month, so no Base
// embed and no soft deletes.
type MonthlyBankBalance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bank_balance_period" json:"user_id"`
	Year      int       `gorm:"not null;uniqueIndex:idx_bank_balance_period" json:"year"`
	Month     int       `gorm:"not null;uniqueIndex:idx_bank_balance_period" json:"month"`
	Balance   float64   `gorm:"not null" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
