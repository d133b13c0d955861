package models

// CategoryKind represents whether a category tracks money in or money out
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Category represents a transaction category
type Category struct {
	Base
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	Name      string       `gorm:"not null" json:"name"`
	Kind      CategoryKind `gorm:"not null" json:"kind"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	IsDefault bool         `gorm:"default:false" json:"is_default"`
}

// DefaultExpenseCategories are seeded for every new user, in display order.
var DefaultExpenseCategories = []string{
	"Groceries",
	"Shopping",
	"Entertainment",
	"Clothing and Footwear",
	"Insurance and Financial services",
	"Transport",
	"Food and Drink",
	"Rates and Utilities",
	"Investment costs",
	"Holiday",
}

// DefaultIncomeCategories are seeded for every new user, in display order.
var DefaultIncomeCategories = []string{
	"Salary",
	"Rent",
}
