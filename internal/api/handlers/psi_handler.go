// internal/api/handlers/psi_handler.go
package handlers

import (
	"net/http"

	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type PSIHandler struct {
	service *service.PSIService
}

func NewPSIHandler(service *service.PSIService) *PSIHandler {
	return &PSIHandler{service: service}
}

func (h *PSIHandler) GetMonthlyPSI(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	month, ok := queryMonth(c)
	if !ok {
		return
	}

	psi, err := h.service.CalculateMonthlyPSI(c.Request.Context(), productID, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, psi)
}

func (h *PSIHandler) GetAllMonthlyPSI(c *gin.Context) {
	month, ok := queryMonth(c)
	if !ok {
		return
	}

	results, err := h.service.CalculateAllMonthlyPSI(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   month.Format("2006-01"),
		"results": results,
	})
}

func (h *PSIHandler) GetEndToEndStock(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	stock, err := h.service.GetEndToEndStock(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stock)
}

func (h *PSIHandler) GetAllEndToEndStock(c *gin.Context) {
	results, err := h.service.GetAllEndToEndStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
