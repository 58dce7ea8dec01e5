// internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	products, err := h.service.ListProducts(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	SKU                       string  `json:"sku" binding:"required"`
	Name                      string  `json:"name" binding:"required"`
	ShippingMode              string  `json:"shipping_mode"`
	Status                    string  `json:"status"`
	Remarks                   string  `json:"remarks"`
	SafetyStockDays           int     `json:"safety_stock_days"`
	SafetyThresholdPercentage float64 `json:"safety_threshold_percentage"`
	LeadTimeWeeks             int     `json:"lead_time_weeks"`
	IsActive                  bool    `json:"is_active"`
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := domain.Product{
		SKU:                       req.SKU,
		Name:                      req.Name,
		ShippingMode:              req.ShippingMode,
		Status:                    req.Status,
		Remarks:                   req.Remarks,
		SafetyStockDays:           req.SafetyStockDays,
		SafetyThresholdPercentage: req.SafetyThresholdPercentage,
		LeadTimeWeeks:             req.LeadTimeWeeks,
		IsActive:                  req.IsActive,
	}

	if err := h.service.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

type planningConfigRequest struct {
	SafetyStockDays           int     `json:"safety_stock_days"`
	SafetyThresholdPercentage float64 `json:"safety_threshold_percentage"`
	LeadTimeWeeks             int     `json:"lead_time_weeks"`
}

func (h *InventoryHandler) UpdatePlanningConfig(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req planningConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.UpdateProductPlanningConfig(c.Request.Context(), id,
		req.SafetyStockDays, req.SafetyThresholdPercentage, req.LeadTimeWeeks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *InventoryHandler) List(c *gin.Context) {
	inventories, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": inventories})
}

func (h *InventoryHandler) GetByProduct(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	inv, err := h.service.GetByProductID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

type inventoryRequest struct {
	CurrentStock  int `json:"current_stock"`
	CBUInHand     int `json:"cbu_in_hand"`
	KitsInFactory int `json:"kits_in_factory"`
}

func (h *InventoryHandler) Upsert(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv := domain.Inventory{
		ProductID:     productID,
		CurrentStock:  req.CurrentStock,
		CBUInHand:     req.CBUInHand,
		KitsInFactory: req.KitsInFactory,
	}

	if err := h.service.Upsert(c.Request.Context(), &inv); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) GetLowStockAlerts(c *gin.Context) {
	alerts, err := h.service.LowStockAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
