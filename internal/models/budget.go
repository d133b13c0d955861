package models

// BudgetFrequency represents the recurrence cadence of a planned amount
type BudgetFrequency string

const (
	BudgetFrequencyWeekly      BudgetFrequency = "weekly"
	BudgetFrequencyFortnightly BudgetFrequency = "fortnightly"
	BudgetFrequencyMonthly     BudgetFrequency = "monthly"
	BudgetFrequencyYearly      BudgetFrequency = "yearly"
	BudgetFrequencyOnce        BudgetFrequency = "once"
)

// Budget is the single master budget each user owns. Totals over its lines
// are derived on read, never stored.
type Budget struct {
	Base
	UserID      uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	Lines []BudgetLine `gorm:"foreignKey:BudgetID" json:"categories"`
}

// BudgetLine is one planned category amount within a budget.
type BudgetLine struct {
	Base
	BudgetID      uint            `gorm:"not null;index" json:"budget_id"`
	Name          string          `gorm:"not null" json:"name"`
	Kind          CategoryKind    `gorm:"not null" json:"kind"`
	PlannedAmount float64         `gorm:"not null;default:0" json:"planned_amount"`
	Frequency     BudgetFrequency `gorm:"not null;default:'monthly'" json:"frequency"`
	Description   string          `json:"description"`
	CategoryID    *uint           `json:"category_id,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
