// internal/api/handlers/po_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type POHandler struct {
	service   *service.POService
	generator *service.POGeneratorService
	shipments *service.ShipmentService
}

func NewPOHandler(poService *service.POService, generator *service.POGeneratorService, shipments *service.ShipmentService) *POHandler {
	return &POHandler{service: poService, generator: generator, shipments: shipments}
}

func (h *POHandler) parseFilter(c *gin.Context) domain.PurchaseOrderFilter {
	filter := domain.PurchaseOrderFilter{}

	if productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64); err == nil && productID > 0 {
		filter.ProductID = &productID
	}
	filter.Status = c.Query("status")
	filter.Stage = c.Query("stage")

	// Malformed dates are ignored rather than rejected; the filter is
	// best-effort like the rest of the list parameters.
	if start, err := time.Parse("2006-01-02", c.Query("start_week")); err == nil {
		filter.StartWeek = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("end_week")); err == nil {
		filter.EndWeek = &end
	}

	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && offset >= 0 {
		filter.Offset = offset
	}

	return filter
}

func (h *POHandler) List(c *gin.Context) {
	pos, err := h.service.List(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchase_orders": pos})
}

func (h *POHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	po, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, po)
}

func (h *POHandler) Create(c *gin.Context) {
	var po domain.PurchaseOrder
	if err := c.ShouldBindJSON(&po); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(c.Request.Context(), &po); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, po)
}

func (h *POHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var po domain.PurchaseOrder
	if err := c.ShouldBindJSON(&po); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	po.ID = id

	if err := h.service.Update(c.Request.Context(), &po); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, po)
}

func (h *POHandler) Delete(c *gin.Context) {
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

type updateStageRequest struct {
	Stage  string `json:"stage" binding:"required"`
	Status string `json:"status"`
}

func (h *POHandler) UpdateStage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.shipments.UpdateStage(c.Request.Context(), id, req.Stage, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "stage": req.Stage})
}

// GenerateWeekly runs the generator for one order week. The week query
// parameter accepts any date; generation snaps it to its Saturday.
func (h *POHandler) GenerateWeekly(c *gin.Context) {
	week := time.Now()
	if parsed, ok := queryDate(c, "week"); !ok {
		return
	} else if parsed != nil {
		week = *parsed
	}

	result, err := h.generator.GenerateWeekly(c.Request.Context(), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *POHandler) GenerateAnnual(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	result, err := h.generator.GenerateAnnual(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *POHandler) GetDelayedShipments(c *gin.Context) {
	delayed, err := h.shipments.DelayedShipments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"delayed_shipments": delayed})
}

func (h *POHandler) ProgressStages(c *gin.Context) {
	updated, err := h.shipments.ProgressStages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
