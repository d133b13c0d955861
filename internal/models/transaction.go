package models

import "time"

// TransactionKind represents the direction of a transaction
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// TransactionSource records where a transaction came from
type TransactionSource string

const (
	TransactionSourceManual    TransactionSource = "manual"
	TransactionSourceImported  TransactionSource = "imported"
	TransactionSourceRecurring TransactionSource = "recurring-generated"
)

// Transaction represents a financial transaction in the system. Amount is
// always an unsigned magnitude; Kind carries the direction. Signed inputs
// (bank exports) are converted at the import boundary.
type Transaction struct {
	Base
	UserID        uint              `gorm:"not null;index:idx_transactions_user_date" json:"user_id"`
	Amount        float64           `gorm:"not null" json:"amount"`
	Description   string            `gorm:"not null" json:"description"`
	Category      string            `gorm:"not null" json:"category"`
	Kind          TransactionKind   `gorm:"not null" json:"kind"`
	Date          time.Time         `gorm:"not null;index:idx_transactions_user_date" json:"date"`
	Source        TransactionSource `gorm:"not null;default:'manual'" json:"source"`
	ImportBatchID string            `gorm:"index" json:"import_batch_id,omitempty"`
}
