// internal/api/handlers/plan_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	service *service.PlanService
}

func NewPlanHandler(service *service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) List(c *gin.Context) {
	filter := domain.PlanFilter{Version: c.Query("version")}

	if productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64); err == nil && productID > 0 {
		filter.ProductID = &productID
	}
	if raw := c.Query("month"); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted YYYY-MM"})
			return
		}
		filter.PlanMonth = &month
	}

	plans, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

type planRequest struct {
	ProductID       int64  `json:"product_id" binding:"required"`
	PlanMonth       string `json:"plan_month" binding:"required"`
	Week1Purchase   int    `json:"week_1_purchase"`
	Week2Purchase   int    `json:"week_2_purchase"`
	Week3Purchase   int    `json:"week_3_purchase"`
	Week4Purchase   int    `json:"week_4_purchase"`
	OpeningBalance  int    `json:"opening_balance"`
	SalesForecast   int    `json:"sales_forecast"`
	EndingInventory int    `json:"ending_inventory"`
	Version         string `json:"version"`
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	month, err := parseMonth(req.PlanMonth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan_month must be formatted YYYY-MM"})
		return
	}

	plan := domain.MonthlyPlan{
		ProductID:       req.ProductID,
		PlanMonth:       month,
		Week1Purchase:   req.Week1Purchase,
		Week2Purchase:   req.Week2Purchase,
		Week3Purchase:   req.Week3Purchase,
		Week4Purchase:   req.Week4Purchase,
		OpeningBalance:  req.OpeningBalance,
		SalesForecast:   req.SalesForecast,
		EndingInventory: req.EndingInventory,
		Version:         req.Version,
	}

	if err := h.service.Create(c.Request.Context(), &plan); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

type generatePlanRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Month     string `json:"month" binding:"required"`
}

// Generate computes the month's PSI row and stores it as the next plan
// version.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted YYYY-MM"})
		return
	}

	plan, err := h.service.GeneratePlan(c.Request.Context(), req.ProductID, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
