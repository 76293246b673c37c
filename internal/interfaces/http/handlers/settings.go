// internal/interfaces/http/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projektikatalog/jeftinoRS/internal/domain/settings"
)

// SettingsHandler handles admin settings endpoints
type SettingsHandler struct {
	settingsService *settings.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *settings.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// ListSettings handles GET /admin/settings
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	all, err := h.settingsService.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": all,
	})
}

// SetSettingRequest upserts a setting value.
type SetSettingRequest struct {
	Value string `json:"value"`
}

// SetSetting handles PUT /admin/settings/:key
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.settingsService.Set(c.Param("key"), req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save setting",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Setting saved",
	})
}
