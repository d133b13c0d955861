package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/services"
	"finboard/internal/timeline"
)

// TimelineHandler handles the aggregated timeline view.
type TimelineHandler struct {
	timelineService services.TimelineServicer
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(timelineService services.TimelineServicer) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

// TimelineQuery represents the query parameters for the timeline endpoint.
type TimelineQuery struct {
	Granularity string `form:"granularity" binding:"required,granularity"`
	StartDate   string `form:"startDate" binding:"required"`
	EndDate     string `form:"endDate" binding:"required"`
}

// GetTimeline returns income, expenses, and asset totals per period.
// @Summary     Get the timeline
// @Description Get aggregated income/expense/asset records per week, month, or year
// @Tags        timeline
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       granularity query string true "Bucket size (week/month/year)"
// @Param       startDate   query string true "Range start (YYYY-MM-DD)"
// @Param       endDate     query string true "Range end (YYYY-MM-DD)"
// @Success     200 {array} timeline.TimelineRecord "Timeline records"
// @Failure     400 {object} ErrorResponse "Invalid granularity or dates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /timeline [get]
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query TimelineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, err := time.Parse("2006-01-02", query.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid startDate"))
		return
	}
	end, err := time.Parse("2006-01-02", query.EndDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid endDate"))
		return
	}

	records, err := h.timelineService.GetTimeline(userID, timeline.Granularity(query.Granularity), start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": records})
}
