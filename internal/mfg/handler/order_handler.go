package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/makerflow/mfg/internal/mfg/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// === 展示视图 ===

type productView struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

type componentView struct {
	ComponentProduct productView `json:"component_product"`
	QuantityRequired float64     `json:"quantity_required"`
	QuantityConsumed float64     `json:"quantity_consumed"`
	Unit             string      `json:"unit"`
}

type orderView struct {
	ID                 string             `json:"id"`
	Reference          string             `json:"reference"`
	Product            productView        `json:"product"`
	Quantity           float64            `json:"quantity"`
	Status             string             `json:"status"`
	Priority           string             `json:"priority"`
	Description        string             `json:"description,omitempty"`
	PlannedStartDate   string             `json:"planned_start_date"`
	PlannedEndDate     string             `json:"planned_end_date"`
	ActualStart        *time.Time         `json:"actual_start,omitempty"`
	ActualEnd          *time.Time         `json:"actual_end,omitempty"`
	ComponentsRequired []componentView    `json:"components_required"`
	WorkOrders         []entity.WorkOrder `json:"work_orders,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

func newOrderView(order *entity.ManufacturingOrder) orderView {
	components := make([]componentView, 0, len(order.Components))
	for _, comp := range order.Components {
		components = append(components, componentView{
			ComponentProduct: productView{
				ID:   comp.ComponentID,
				SKU:  comp.ComponentSKU,
				Name: comp.ComponentName,
			},
			QuantityRequired: comp.QuantityRequired,
			QuantityConsumed: comp.QuantityConsumed,
			Unit:             comp.Unit,
		})
	}
	return orderView{
		ID:        order.ID,
		Reference: order.Reference,
		Product: productView{
			ID:   order.ProductID,
			SKU:  order.ProductSKU,
			Name: order.ProductName,
		},
		Quantity:           order.Quantity,
		Status:             order.Status,
		Priority:           order.Priority,
		Description:        order.Description,
		PlannedStartDate:   order.PlannedStartDate.Format("2006-01-02"),
		PlannedEndDate:     order.PlannedEndDate.Format("2006-01-02"),
		ActualStart:        order.ActualStart,
		ActualEnd:          order.ActualEnd,
		ComponentsRequired: components,
		WorkOrders:         order.WorkOrders,
		CreatedAt:          order.CreatedAt,
	}
}

// CreateByProductSearch POST /manufacturing-orders/by-product-search
func (h *OrderHandler) CreateByProductSearch(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	order, err := h.svc.CreateByProductSearch(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"manufacturing_order": newOrderView(order)})
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturing_order": newOrderView(order)})
}

func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.OrderListParams{
		Status:    c.Query("status"),
		ProductID: c.Query("product_id"),
		Keyword:   c.Query("keyword"),
		Page:      page,
		Size:      pageSize,
	}
	orders, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Items:      orders,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *OrderHandler) Confirm(c *gin.Context) {
	order, err := h.svc.Confirm(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturing_order": newOrderView(order)})
}

func (h *OrderHandler) Start(c *gin.Context) {
	order, err := h.svc.Start(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturing_order": newOrderView(order)})
}

func (h *OrderHandler) Close(c *gin.Context) {
	order, err := h.svc.Close(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturing_order": newOrderView(order)})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manufacturing_order": newOrderView(order)})
}

func (h *OrderHandler) StartWorkOrder(c *gin.Context) {
	wo, err := h.svc.StartWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order": wo})
}

func (h *OrderHandler) CompleteWorkOrder(c *gin.Context) {
	wo, err := h.svc.CompleteWorkOrder(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order": wo})
}

// Export GET /manufacturing-orders/export 导出XLSX订单清单
func (h *OrderHandler) Export(c *gin.Context) {
	f, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		FailDomain(c, err)
		return
	}
	defer f.Close()
	filename := fmt.Sprintf("manufacturing-orders-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
