package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/timeline"
)

// timelineService assembles the aggregated income/expense/asset timeline
// from persisted transactions and asset histories.
type timelineService struct {
	db *gorm.DB
}

// NewTimelineService creates a new TimelineServicer.
func NewTimelineService(db *gorm.DB) TimelineServicer {
	return &timelineService{db: db}
}

// GetTimeline returns one record per period between start and end at the
// requested granularity. Transactions outside the range are excluded before
// aggregation; assets contribute their balance as of each period's end.
func (s *timelineService) GetTimeline(
	userID uint,
	granularity timeline.Granularity,
	start, end time.Time,
) ([]timeline.TimelineRecord, error) {
	if !granularity.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "granularity must be week, month, or year")
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).
		Preload("Balances").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	points := make([]timeline.TransactionPoint, len(transactions))
	for i, t := range transactions {
		points[i] = timeline.TransactionPoint{
			Amount: t.Amount,
			Kind:   timeline.Kind(t.Kind),
			Date:   t.Date,
		}
	}

	histories := make([]timeline.AssetHistory, len(assets))
	for i, a := range assets {
		snapshots := make([]timeline.BalancePoint, len(a.Balances))
		for j, b := range a.Balances {
			snapshots[j] = timeline.BalancePoint{Amount: b.Amount, Date: b.Date}
		}
		histories[i] = timeline.AssetHistory{
			CreatedAt:      a.CreatedAt,
			CurrentBalance: a.CurrentBalance,
			Snapshots:      snapshots,
		}
	}

	periods := timeline.Keys(start, end, granularity)
	totals := timeline.Aggregate(points, granularity)
	assetTotals := timeline.ResolveAssetTotals(histories, periods, granularity)

	return timeline.Merge(periods, totals, assetTotals, granularity), nil
}
