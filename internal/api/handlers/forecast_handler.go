// internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetWeeklySales(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "8"))

	points, err := h.service.GetWeeklySalesData(c.Request.Context(), productID, weeks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"weeks":      points,
	})
}

func (h *ForecastHandler) GetPurchaseForecast(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	forecastWeeks, _ := strconv.Atoi(c.DefaultQuery("forecast_weeks", "4"))

	forecast, err := h.service.GetPurchaseForecast(c.Request.Context(), productID, forecastWeeks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

func (h *ForecastHandler) GetAllPurchaseForecasts(c *gin.Context) {
	forecastWeeks, _ := strconv.Atoi(c.DefaultQuery("forecast_weeks", "4"))

	forecasts, err := h.service.GetAllPurchaseForecasts(c.Request.Context(), forecastWeeks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}

type salesForecastRequest struct {
	ProductID    int64  `json:"product_id" binding:"required"`
	Month        string `json:"month" binding:"required"`
	Channel      string `json:"channel"`
	Quantity     int    `json:"quantity"`
	ForecastType string `json:"forecast_type"`
	Version      string `json:"version" binding:"required"`
}

func (h *ForecastHandler) CreateSalesForecast(c *gin.Context) {
	var req salesForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted YYYY-MM"})
		return
	}

	forecast := domain.SalesForecast{
		ProductID:    req.ProductID,
		ForecastDate: month,
		Channel:      req.Channel,
		Quantity:     req.Quantity,
		ForecastType: req.ForecastType,
		Version:      req.Version,
	}

	if err := h.service.SaveSalesForecast(c.Request.Context(), &forecast); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, forecast)
}

func (h *ForecastHandler) GetSalesForecast(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	month, ok := queryMonth(c)
	if !ok {
		return
	}

	forecast, err := h.service.GetSalesForecast(c.Request.Context(), productID, month, c.Query("channel"))
	if err != nil {
		respondError(c, err)
		return
	}
	if forecast == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sales forecast for this month"})
		return
	}

	c.JSON(http.StatusOK, forecast)
}
