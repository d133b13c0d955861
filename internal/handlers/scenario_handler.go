package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/services"
)

// ScenarioHandler handles what-if scenario requests.
type ScenarioHandler struct {
	scenarioService services.ScenarioServicer
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService services.ScenarioServicer) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// CreateScenarioRequest represents the request payload for creating a scenario.
type CreateScenarioRequest struct {
	Name             string                     `json:"name" binding:"required,min=1,max=100"`
	Description      string                     `json:"description" binding:"max=255"`
	ProjectionMonths int                        `json:"projection_months" binding:"omitempty,min=1,max=120"`
	Categories       []services.BudgetLineInput `json:"categories" binding:"dive"`
}

// UpdateScenarioRequest represents the request payload for updating a scenario.
type UpdateScenarioRequest struct {
	Name             string                     `json:"name" binding:"omitempty,min=1,max=100"`
	Description      string                     `json:"description" binding:"omitempty,max=255"`
	ProjectionMonths *int                       `json:"projection_months" binding:"omitempty,min=1,max=120"`
	Categories       []services.BudgetLineInput `json:"categories" binding:"omitempty,dive"`
}

// CreateScenario handles the creation of a new scenario.
// @Summary     Create a scenario
// @Description Create a what-if scenario; monthly projections are generated server-side
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateScenarioRequest true "Scenario details"
// @Success     201 {object} models.Scenario "Scenario created with projections"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios [post]
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.CreateScenario(userID, req.Name, req.Description, req.ProjectionMonths, req.Categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"scenario": scenario})
}

// GetScenarios handles listing scenarios for the authenticated user.
// @Summary     Get scenarios
// @Description Get all scenarios with their lines and projections
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Scenario "Scenarios"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios [get]
func (h *ScenarioHandler) GetScenarios(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenarios, err := h.scenarioService.GetUserScenarios(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

// GetScenario returns a single scenario.
// @Summary     Get a scenario
// @Description Get a scenario by ID with its lines and projections
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "Scenario ID"
// @Success     200 {object} models.Scenario "Scenario"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [get]
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.GetScenarioByID(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenario": scenario})
}

// UpdateScenario handles updating a scenario.
// @Summary     Update a scenario
// @Description Update a scenario; projections regenerate when lines or the horizon change
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path uint                  true "Scenario ID"
// @Param       request body UpdateScenarioRequest true "Fields to update"
// @Success     200 {object} models.Scenario "Scenario updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [put]
func (h *ScenarioHandler) UpdateScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.UpdateScenario(userID, scenarioID, req.Name, req.Description, req.ProjectionMonths, req.Categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenario": scenario})
}

// DeleteScenario handles deleting a scenario.
// @Summary     Delete a scenario
// @Description Delete a scenario and its derived projections
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "Scenario ID"
// @Success     204 "Scenario deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.scenarioService.DeleteScenario(userID, scenarioID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
