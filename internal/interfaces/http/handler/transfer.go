package handler

import (
	"github.com/gin-gonic/gin"

	staffingapp "github.com/vetcare/backend/internal/application/staffing"
)

// TransferHandler handles practitioner transfer API endpoints
type TransferHandler struct {
	BaseHandler
	transferService *staffingapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *staffingapp.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// RegisterRoutes registers the staffing routes
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staffing := rg.Group("/staffing")
	{
		staffing.POST("/transfers", h.RequestTransfer)
	}
}

// RequestTransfer validates and commits a practitioner branch transfer.
// Business-rule rejections come back as a 200 with success=false inside
// the result payload; conflicts and missing entities map to error codes.
func (h *TransferHandler) RequestTransfer(c *gin.Context) {
	var req staffingapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.transferService.RequestTransfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
