package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/makerflow/mfg/internal/mfg/service"
)

type ProductHandler struct {
	svc    *service.ProductService
	bomSvc *service.BOMService
}

func NewProductHandler(svc *service.ProductService, bomSvc *service.BOMService) *ProductHandler {
	return &ProductHandler{svc: svc, bomSvc: bomSvc}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.ProductListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		Size:     pageSize,
	}
	products, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Items:      products,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	product, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListBOMs GET /products/:id/boms
func (h *ProductHandler) ListBOMs(c *gin.Context) {
	boms, err := h.bomSvc.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boms": boms})
}
