package timeline

import "time"

// Kind tags an amount as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// TransactionPoint is the slice of a transaction the aggregator needs.
type TransactionPoint struct {
	Amount float64
	Kind   Kind
	Date   time.Time
}

// PeriodTotals holds the summed income and expenses for one period bucket.
type PeriodTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Aggregate groups transactions into per-period income and expense totals.
// Each transaction's bucket is derived independently from its own date, so
// every input amount lands in exactly one bucket and the per-period sums
// conserve the input totals. Filtering to a date range is the caller's job;
// anything passed in is counted.
func Aggregate(points []TransactionPoint, g Granularity) map[string]PeriodTotals {
	totals := make(map[string]PeriodTotals)
	for _, p := range points {
		key := KeyFor(p.Date, g)
		t := totals[key]
		if p.Kind == KindIncome {
			t.Income += p.Amount
		} else {
			t.Expenses += p.Amount
		}
		totals[key] = t
	}
	return totals
}
