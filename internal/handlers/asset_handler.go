package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=100"`
	Type           models.AssetType `json:"type" binding:"required,asset_type"`
	Description    string           `json:"description" binding:"max=255"`
	Institution    string           `json:"institution" binding:"max=100"`
	AccountNumber  string           `json:"account_number" binding:"max=50"`
	OpeningBalance float64          `json:"opening_balance"`
	OpeningDate    *time.Time       `json:"opening_date"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
type UpdateAssetRequest struct {
	Name          string `json:"name" binding:"omitempty,min=1,max=100"`
	Description   string `json:"description" binding:"omitempty,max=255"`
	Institution   string `json:"institution" binding:"omitempty,max=100"`
	AccountNumber string `json:"account_number" binding:"omitempty,max=50"`
}

// AddBalanceRequest represents the request payload for adding a balance snapshot.
type AddBalanceRequest struct {
	Amount float64    `json:"amount" binding:"required"`
	Date   *time.Time `json:"date"`
}

// CreateAsset handles the creation of a new asset.
// @Summary     Create an asset
// @Description Create a tracked asset with its opening balance snapshot
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	openingDate := time.Time{}
	if req.OpeningDate != nil {
		openingDate = *req.OpeningDate
	}

	asset, err := h.assetService.CreateAsset(userID, req.Name, req.Type, req.Description, req.Institution, req.AccountNumber, req.OpeningBalance, openingDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles listing assets for the authenticated user.
// @Summary     Get assets
// @Description Get all assets with their balance histories
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Asset "Assets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assets, err := h.assetService.GetUserAssets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetAsset returns a single asset with its balance history.
// @Summary     Get an asset
// @Description Get an asset by ID with its balance history
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles updating an asset's descriptive fields.
// @Summary     Update an asset
// @Description Update an asset's name, description, institution, or account number
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path uint               true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.Asset "Asset updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(userID, assetID, req.Name, req.Description, req.Institution, req.AccountNumber)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting an asset.
// @Summary     Delete an asset
// @Description Delete an asset and its balance history
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "Asset ID"
// @Success     204 "Asset deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddBalance records a new balance snapshot for an asset.
// @Summary     Add a balance snapshot
// @Description Record a dated balance observation; the asset's current balance is recomputed
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path uint              true "Asset ID"
// @Param       request body AddBalanceRequest true "Balance snapshot"
// @Success     201 {object} models.Asset "Asset with updated history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/balances [post]
func (h *AssetHandler) AddBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	asset, err := h.assetService.AddBalance(userID, assetID, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// DeleteBalance removes a balance snapshot from an asset.
// @Summary     Delete a balance snapshot
// @Description Remove a balance observation; the last snapshot cannot be deleted
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path uint true "Asset ID"
// @Param       balanceId path uint true "Balance ID"
// @Success     200 {object} models.Asset "Asset with updated history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset or balance not found"
// @Failure     409 {object} ErrorResponse "Last remaining snapshot"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/balances/{balanceId} [delete]
func (h *AssetHandler) DeleteBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	balanceID, err := parsePathID(c, "balanceId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.DeleteBalance(userID, assetID, balanceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}
