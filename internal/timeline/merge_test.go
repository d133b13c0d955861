package timeline

import (
	"testing"
	"time"
)

func TestMerge(t *testing.T) {
	t.Run("zero_fill_vs_null", func(t *testing.T) {
		periods := []string{"2024-01", "2024-02"}
		totals := map[string]PeriodTotals{
			"2024-01": {Income: 100, Expenses: 40},
		}
		assetTotals := map[string]float64{} // no asset data anywhere

		records := Merge(periods, totals, assetTotals, GranularityMonth)

		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		// Absent transactions are a real zero, absent assets are null.
		feb := records[1]
		if feb.Income != 0 || feb.Expenses != 0 {
			t.Errorf("expected zero income/expenses for 2024-02, got %+v", feb)
		}
		if records[0].TotalAssets != nil || feb.TotalAssets != nil {
			t.Error("expected null asset totals when no assets contributed")
		}
	})

	t.Run("asset_zero_is_not_null", func(t *testing.T) {
		records := Merge(
			[]string{"2024-01"},
			map[string]PeriodTotals{},
			map[string]float64{"2024-01": 0},
			GranularityMonth,
		)

		if records[0].TotalAssets == nil {
			t.Fatal("expected a non-null asset total of zero")
		}
		if *records[0].TotalAssets != 0 {
			t.Errorf("expected 0, got %v", *records[0].TotalAssets)
		}
	})

	t.Run("chronological_order_for_week_keys_across_years", func(t *testing.T) {
		// Fed out of map iteration order; the merger must sort by parsed
		// date, so the December week precedes the January weeks.
		periods := []string{"2025-01-06", "2024-12-30", "2025-01-13"}
		records := Merge(periods, nil, nil, GranularityWeek)

		want := []string{"2024-12-30", "2025-01-06", "2025-01-13"}
		for i, rec := range records {
			if rec.Period != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], rec.Period)
			}
		}
	})

	t.Run("empty_periods", func(t *testing.T) {
		records := Merge(nil, map[string]PeriodTotals{"2024-01": {Income: 5}}, nil, GranularityMonth)
		if len(records) != 0 {
			t.Errorf("expected no records without periods, got %v", records)
		}
	})
}

// TestTimelineEndToEnd walks the full pipeline through the documented
// three-month scenario: an income and an expense in different months, and
// one asset whose balance rose after its only snapshot.
func TestTimelineEndToEnd(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2024, time.March, 31)

	periods := Keys(start, end, GranularityMonth)
	totals := Aggregate([]TransactionPoint{
		{Amount: 3000, Kind: KindIncome, Date: date(2024, time.January, 15)},
		{Amount: 200, Kind: KindExpense, Date: date(2024, time.February, 3)},
	}, GranularityMonth)
	assetTotals := ResolveAssetTotals([]AssetHistory{{
		CreatedAt:      date(2024, time.January, 10),
		CurrentBalance: 1200,
		Snapshots:      []BalancePoint{{Amount: 1000, Date: date(2024, time.January, 10)}},
	}}, periods, GranularityMonth)

	records := Merge(periods, totals, assetTotals, GranularityMonth)

	want := []struct {
		period   string
		income   float64
		expenses float64
		assets   float64
	}{
		{"2024-01", 3000, 0, 1000},
		{"2024-02", 0, 200, 1000},
		{"2024-03", 0, 0, 1000},
	}

	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i, w := range want {
		rec := records[i]
		if rec.Period != w.period {
			t.Errorf("record %d: expected period %q, got %q", i, w.period, rec.Period)
		}
		if rec.Income != w.income {
			t.Errorf("%s: expected income %v, got %v", w.period, w.income, rec.Income)
		}
		if rec.Expenses != w.expenses {
			t.Errorf("%s: expected expenses %v, got %v", w.period, w.expenses, rec.Expenses)
		}
		if rec.TotalAssets == nil {
			t.Errorf("%s: expected non-null asset total", w.period)
		} else if *rec.TotalAssets != w.assets {
			// The snapshot stays authoritative for later months: the newer
			// current balance never overrides recorded history.
			t.Errorf("%s: expected assets %v, got %v", w.period, w.assets, *rec.TotalAssets)
		}
	}
}
