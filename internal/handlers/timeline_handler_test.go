package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/services"
	"finboard/internal/timeline"
)

type mockTimelineService struct {
	getTimelineFn func(userID uint, granularity timeline.Granularity, start, end time.Time) ([]timeline.TimelineRecord, error)
}

var _ services.TimelineServicer = (*mockTimelineService)(nil)

func (m *mockTimelineService) GetTimeline(userID uint, granularity timeline.Granularity, start, end time.Time) ([]timeline.TimelineRecord, error) {
	if m.getTimelineFn != nil {
		return m.getTimelineFn(userID, granularity, start, end)
	}
	return []timeline.TimelineRecord{}, nil
}

func setupTimelineRouter(handler *TimelineHandler) *gin.Engine {
	r := gin.New()
	r.GET("/timeline", injectUserID(1), handler.GetTimeline)
	return r
}

func TestTimelineHandler_GetTimeline(t *testing.T) {
	t.Run("returns 200 with records", func(t *testing.T) {
		total := 1500.0
		svc := &mockTimelineService{
			getTimelineFn: func(userID uint, granularity timeline.Granularity, start, end time.Time) ([]timeline.TimelineRecord, error) {
				if userID != 1 {
					t.Errorf("expected userID 1, got %d", userID)
				}
				if granularity != timeline.GranularityMonth {
					t.Errorf("expected month granularity, got %q", granularity)
				}
				if got := start.Format("2006-01-02"); got != "2024-01-01" {
					t.Errorf("expected start 2024-01-01, got %s", got)
				}
				return []timeline.TimelineRecord{
					{Period: "2024-01", Income: 3000, Expenses: 200, TotalAssets: &total},
				}, nil
			},
		}
		r := setupTimelineRouter(NewTimelineHandler(svc))

		rec := doRequest(r, http.MethodGet, "/timeline?granularity=month&startDate=2024-01-01&endDate=2024-03-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		records, ok := result["timeline"].([]interface{})
		if !ok || len(records) != 1 {
			t.Fatalf("expected one timeline record, got %v", result)
		}
		first := records[0].(map[string]interface{})
		if first["period"] != "2024-01" {
			t.Errorf("expected period 2024-01, got %v", first["period"])
		}
		if first["totalAssets"] != 1500.0 {
			t.Errorf("expected totalAssets 1500, got %v", first["totalAssets"])
		}
	})

	t.Run("returns 400 on unknown granularity", func(t *testing.T) {
		r := setupTimelineRouter(NewTimelineHandler(&mockTimelineService{}))

		rec := doRequest(r, http.MethodGet, "/timeline?granularity=daily&startDate=2024-01-01&endDate=2024-03-31", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing range", func(t *testing.T) {
		r := setupTimelineRouter(NewTimelineHandler(&mockTimelineService{}))

		rec := doRequest(r, http.MethodGet, "/timeline?granularity=month", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupTimelineRouter(NewTimelineHandler(&mockTimelineService{}))

		rec := doRequest(r, http.MethodGet, "/timeline?granularity=month&startDate=01-2024&endDate=2024-03-31", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
