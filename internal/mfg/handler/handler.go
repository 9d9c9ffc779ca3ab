package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/service"
	"gorm.io/gorm"
)

// Handlers HTTP处理器集合
type Handlers struct {
	Product *ProductHandler
	BOM     *BOMHandler
	Order   *OrderHandler
	Stock   *StockHandler
	Audit   *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Product: NewProductHandler(services.Product, services.BOM),
		BOM:     NewBOMHandler(services.BOM),
		Order:   NewOrderHandler(services.Order),
		Stock:   NewStockHandler(services.Stock),
		Audit:   NewAuditHandler(services.Audit),
	}
}

// === 响应辅助函数 ===

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error   bool     `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func Fail(c *gin.Context, status int, message string, details ...string) {
	c.JSON(status, ErrorResponse{Error: true, Message: message, Details: details})
}

// FailDomain 按领域错误类型映射HTTP状态码
func FailDomain(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		Fail(c, http.StatusBadRequest, "validation failed", vErr.Details...)
	case errors.Is(err, service.ErrProductNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAmbiguousProduct):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMissingBOM), errors.Is(err, service.ErrInsufficientStock):
		Fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		Fail(c, http.StatusNotFound, "record not found")
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}
