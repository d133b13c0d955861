package timeline

import "sort"

// BudgetLine is one planned category amount at a recurrence frequency.
type BudgetLine struct {
	Name          string
	Kind          Kind
	PlannedAmount float64
	Frequency     Frequency
}

// CategoryTransaction is the slice of a transaction the variance
// calculator needs.
type CategoryTransaction struct {
	Category string
	Kind     Kind
	Amount   float64
}

// CategoryVariance compares one category's actuals for a month against its
// monthly-normalized planned amount. Variance is always actual minus
// budgeted; whether a positive value is good (income above target) or bad
// (expense over budget) is the consumer's call.
type CategoryVariance struct {
	Category string  `json:"category"`
	Kind     Kind    `json:"kind"`
	Budgeted float64 `json:"budgeted"`
	Actual   float64 `json:"actual"`
	Variance float64 `json:"variance"`
}

// Variance matches actual per-category transaction totals for one calendar
// month against the budget's category lines. Every category present in
// either side appears in the result: categories without a budget line get a
// budgeted amount of zero, lines with no matching transactions get an
// actual of zero. Matching is exact string equality on the category name.
// Results are ordered by category name.
func Variance(lines []BudgetLine, actuals []CategoryTransaction) []CategoryVariance {
	byCategory := make(map[string]*CategoryVariance)

	for _, line := range lines {
		cv, ok := byCategory[line.Name]
		if !ok {
			cv = &CategoryVariance{Category: line.Name, Kind: line.Kind}
			byCategory[line.Name] = cv
		}
		cv.Budgeted += MonthlyAmount(line.PlannedAmount, line.Frequency)
	}

	for _, tx := range actuals {
		cv, ok := byCategory[tx.Category]
		if !ok {
			cv = &CategoryVariance{Category: tx.Category, Kind: tx.Kind}
			byCategory[tx.Category] = cv
		}
		cv.Actual += tx.Amount
	}

	result := make([]CategoryVariance, 0, len(byCategory))
	for _, cv := range byCategory {
		cv.Variance = cv.Actual - cv.Budgeted
		result = append(result, *cv)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result
}
