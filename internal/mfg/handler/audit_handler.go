package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/service"
)

type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	logs, total, err := h.svc.List(c.Request.Context(), c.Query("entity_type"), page, pageSize)
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Items:      logs,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}
