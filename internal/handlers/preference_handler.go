package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/services"
)

// PreferenceHandler handles dashboard preference requests
type PreferenceHandler struct {
	preferenceService services.PreferenceServicer
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferenceService services.PreferenceServicer) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// SaveLayoutRequest represents the dashboard layout save payload
type SaveLayoutRequest struct {
	Layout string `json:"layout" binding:"required"`
}

// GetLayout returns the user's saved dashboard layout
// @Summary     Get dashboard layout
// @Description Get the user's saved dashboard widget layout
// @Tags        preferences
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Layout"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /preferences/layout [get]
func (h *PreferenceHandler) GetLayout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pref, err := h.preferenceService.GetLayout(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": pref.Layout})
}

// SaveLayout stores the user's dashboard layout
// @Summary     Save dashboard layout
// @Description Save the user's dashboard widget layout as a JSON document
// @Tags        preferences
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SaveLayoutRequest true "Layout JSON"
// @Success     200 {object} map[string]string "Layout saved"
// @Failure     400 {object} ErrorResponse "Invalid layout"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /preferences/layout [put]
func (h *PreferenceHandler) SaveLayout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pref, err := h.preferenceService.SaveLayout(userID, req.Layout)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": pref.Layout})
}
