package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerflow/mfg/internal/mfg/service"
)

type BOMHandler struct {
	svc *service.BOMService
}

func NewBOMHandler(svc *service.BOMService) *BOMHandler {
	return &BOMHandler{svc: svc}
}

func (h *BOMHandler) Create(c *gin.Context) {
	var req service.CreateBOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	bom, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bom": bom})
}

func (h *BOMHandler) Get(c *gin.Context) {
	bom, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bom": bom})
}
