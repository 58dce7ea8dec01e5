// internal/api/handlers/sales_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

func (h *SalesHandler) List(c *gin.Context) {
	filter := domain.SalesFilter{Channel: c.Query("channel")}

	if productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64); err == nil && productID > 0 {
		filter.ProductID = &productID
	}
	if start, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		filter.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		filter.EndDate = &end
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && offset >= 0 {
		filter.Offset = offset
	}

	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": records})
}

func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

type salesRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	SaleDate  string `json:"sale_date" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Channel   string `json:"channel" binding:"required"`
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req salesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_date must be formatted YYYY-MM-DD"})
		return
	}

	sale := domain.SalesRecord{
		ProductID: req.ProductID,
		SaleDate:  saleDate,
		Quantity:  req.Quantity,
		Channel:   req.Channel,
	}

	if err := h.service.Create(c.Request.Context(), &sale); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SalesHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req salesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_date must be formatted YYYY-MM-DD"})
		return
	}

	sale := domain.SalesRecord{
		ID:        id,
		ProductID: req.ProductID,
		SaleDate:  saleDate,
		Quantity:  req.Quantity,
		Channel:   req.Channel,
	}

	if err := h.service.Update(c.Request.Context(), &sale); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) Delete(c *gin.Context) {
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
