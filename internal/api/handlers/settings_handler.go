// internal/api/handlers/settings_handler.go
package handlers

import (
	"net/http"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service *service.SettingsService
}

func NewSettingsHandler(service *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

type settingRequest struct {
	ConfigValue string `json:"config_value" binding:"required"`
	Description string `json:"description"`
}

func (h *SettingsHandler) Set(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting := domain.SystemConfig{
		ConfigKey:   c.Param("key"),
		ConfigValue: req.ConfigValue,
		Description: req.Description,
	}

	if err := h.service.Set(c.Request.Context(), &setting); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SettingsHandler) GetLeadTimeSummary(c *gin.Context) {
	summary, err := h.service.GetLeadTimeSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
