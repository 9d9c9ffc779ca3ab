package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/makerflow/mfg/internal/mfg/service"
)

type StockHandler struct {
	svc *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

func (h *StockHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.StockListParams{
		ProductID: c.Query("product_id"),
		Page:      page,
		Size:      pageSize,
	}
	levels, total, err := h.svc.ListLevels(c.Request.Context(), params)
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Items:      levels,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// Entries GET /stock/entries 库存台账
func (h *StockHandler) Entries(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.StockListParams{
		ProductID: c.Query("product_id"),
		Page:      page,
		Size:      pageSize,
	}
	entries, total, err := h.svc.ListEntries(c.Request.Context(), params)
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Items:      entries,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}
