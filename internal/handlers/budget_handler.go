package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/services"
)

// BudgetHandler handles master-budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// ReplaceBudgetRequest represents the request payload for replacing the budget.
type ReplaceBudgetRequest struct {
	Name        string                     `json:"name" binding:"omitempty,min=1,max=100"`
	Description string                     `json:"description" binding:"max=255"`
	Categories  []services.BudgetLineInput `json:"categories" binding:"dive"`
}

// GetBudget returns the user's master budget.
// @Summary     Get the budget
// @Description Get the user's master budget, creating an empty one on first access
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BudgetView "Budget with derived totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.budgetService.GetOrCreateBudget(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ReplaceBudget replaces the budget's name, description, and lines.
// @Summary     Replace the budget
// @Description Replace the master budget's metadata and full category line set
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReplaceBudgetRequest true "New budget contents"
// @Success     200 {object} services.BudgetView "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget [put]
func (h *BudgetHandler) ReplaceBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReplaceBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	view, err := h.budgetService.ReplaceBudget(userID, req.Name, req.Description, req.Categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// PatchLine applies a partial update to one budget line.
// @Summary     Patch a budget line
// @Description Update individual fields of a single budget category line
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       lineId  path uint                     true "Budget line ID"
// @Param       request body services.BudgetLinePatch true "Fields to update"
// @Success     200 {object} models.BudgetLine "Updated line"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/lines/{lineId} [patch]
func (h *BudgetHandler) PatchLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lineID, err := parsePathID(c, "lineId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var patch services.BudgetLinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.budgetService.PatchLine(userID, lineID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": line})
}

// GetVariance returns the budget-vs-actual report for one month.
// @Summary     Get budget variance
// @Description Compare monthly-normalized planned amounts against one month's actual transactions
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {array} timeline.CategoryVariance "Per-category variance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/variance [get]
func (h *BudgetHandler) GetVariance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.budgetService.Variance(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variance": report})
}
