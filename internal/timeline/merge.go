package timeline

import "sort"

// TimelineRecord is one period row of the merged timeline. TotalAssets is
// nil when no asset contributed to the period; income and expenses are real
// zeros for periods with no transactions.
type TimelineRecord struct {
	Period      string   `json:"period"`
	Income      float64  `json:"income"`
	Expenses    float64  `json:"expenses"`
	TotalAssets *float64 `json:"totalAssets"`
}

// Merge reconciles the aggregator's and resolver's per-period maps over the
// full period sequence into an ordered list of timeline records. Output
// order is chronological by the period's parsed start date, never by raw
// string comparison, so week keys stay ordered across year boundaries.
func Merge(periods []string, totals map[string]PeriodTotals, assetTotals map[string]float64, g Granularity) []TimelineRecord {
	records := make([]TimelineRecord, 0, len(periods))
	for _, period := range periods {
		rec := TimelineRecord{Period: period}
		if t, ok := totals[period]; ok {
			rec.Income = t.Income
			rec.Expenses = t.Expenses
		}
		if v, ok := assetTotals[period]; ok {
			value := v
			rec.TotalAssets = &value
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		di, errI := StartOf(records[i].Period, g)
		dj, errJ := StartOf(records[j].Period, g)
		if errI != nil || errJ != nil {
			return records[i].Period < records[j].Period
		}
		return di.Before(dj)
	})

	return records
}
