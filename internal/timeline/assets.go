package timeline

import "time"

// BalancePoint is a dated balance observation for an asset.
type BalancePoint struct {
	Amount float64
	Date   time.Time
}

// AssetHistory is the slice of an asset the resolver needs.
type AssetHistory struct {
	CreatedAt      time.Time
	CurrentBalance float64
	Snapshots      []BalancePoint
}

// ResolveAssetTotals computes, for each period, the sum across all assets
// of each asset's best-known balance as of the period's end boundary.
//
// Per asset the resolution is three-tiered: the most recent snapshot dated
// on or before the boundary wins; failing that, an asset created on or
// before the boundary contributes its current balance as a best estimate;
// an asset created after the period contributes nothing. A period is absent
// from the result only when no asset contributed at all, which keeps
// net-worth timelines meaningful for users who started recording balance
// history partway through an asset's life.
func ResolveAssetTotals(assets []AssetHistory, periods []string, g Granularity) map[string]float64 {
	totals := make(map[string]float64, len(periods))
	for _, period := range periods {
		boundary, err := EndOfPeriod(period, g)
		if err != nil {
			continue
		}

		var sum float64
		contributed := false
		for i := range assets {
			asset := &assets[i]
			if snap, ok := latestOnOrBefore(asset.Snapshots, boundary); ok {
				sum += snap.Amount
				contributed = true
			} else if !asset.CreatedAt.After(boundary) {
				sum += asset.CurrentBalance
				contributed = true
			}
		}
		if contributed {
			totals[period] = sum
		}
	}
	return totals
}

// latestOnOrBefore finds the snapshot with the maximum date not after the
// boundary. Snapshots need not be sorted.
func latestOnOrBefore(snapshots []BalancePoint, boundary time.Time) (BalancePoint, bool) {
	var best BalancePoint
	found := false
	for _, s := range snapshots {
		if s.Date.After(boundary) {
			continue
		}
		if !found || s.Date.After(best.Date) {
			best = s
			found = true
		}
	}
	return best, found
}
