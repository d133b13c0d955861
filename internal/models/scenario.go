package models

// Scenario models a what-if budget whose monthly projections are generated
// from its lines whenever the lines or horizon change.
type Scenario struct {
	Base
	UserID           uint   `gorm:"not null;index" json:"user_id"`
	Name             string `gorm:"not null" json:"name"`
	Description      string `json:"description"`
	ProjectionMonths int    `gorm:"not null;default:12" json:"projection_months"`
	IsActive         bool   `gorm:"default:true" json:"is_active"`

	Lines       []ScenarioLine       `gorm:"foreignKey:ScenarioID" json:"categories"`
	Projections []ScenarioProjection `gorm:"foreignKey:ScenarioID" json:"projections"`
}

// ScenarioLine is one planned category amount within a scenario.
type ScenarioLine struct {
	Base
	ScenarioID    uint            `gorm:"not null;index" json:"scenario_id"`
	Name          string          `gorm:"not null" json:"name"`
	Kind          CategoryKind    `gorm:"not null" json:"kind"`
	PlannedAmount float64         `gorm:"not null;default:0" json:"planned_amount"`
	Frequency     BudgetFrequency `gorm:"not null;default:'monthly'" json:"frequency"`
}

// ScenarioProjection is one derived month of a scenario. Regenerated rows,
// hard-deleted and recreated, so no Base embed.
type ScenarioProjection struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ScenarioID    uint    `gorm:"not null;index" json:"scenario_id"`
	Month         int     `gorm:"not null" json:"month"`
	Year          int     `gorm:"not null" json:"year"`
	TotalIncome   float64 `gorm:"not null" json:"total_income"`
	TotalExpenses float64 `gorm:"not null" json:"total_expenses"`
	NetIncome     float64 `gorm:"not null" json:"net_income"`
	CumulativeNet float64 `gorm:"not null" json:"cumulative_net"`
}
