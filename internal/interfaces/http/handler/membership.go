package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	membershipapp "github.com/vetcare/backend/internal/application/membership"
)

// MembershipHandler handles membership policy API endpoints
type MembershipHandler struct {
	BaseHandler
	policyService *membershipapp.PolicyService
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(policyService *membershipapp.PolicyService) *MembershipHandler {
	return &MembershipHandler{
		policyService: policyService,
	}
}

// RegisterRoutes registers the membership routes
func (h *MembershipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	membership := rg.Group("/membership")
	{
		membership.GET("/tiers", h.GetTierTable)
		membership.PUT("/tiers/:id", h.UpdateTier)
		membership.GET("/customers/:id/tier", h.ClassifyCustomer)
	}
}

// GetTierTable returns the tier policy table ordered by minimum spend
func (h *MembershipHandler) GetTierTable(c *gin.Context) {
	tiers, err := h.policyService.GetTierTable(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tiers)
}

// ClassifyCustomer returns a customer's current tier membership
func (h *MembershipHandler) ClassifyCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id: invalid UUID format")
		return
	}

	result, err := h.policyService.ClassifyCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateTier applies an administrative edit to one tier policy row
func (h *MembershipHandler) UpdateTier(c *gin.Context) {
	tierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id: invalid UUID format")
		return
	}

	var req membershipapp.TierPolicyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	updated, err := h.policyService.UpdateTier(c.Request.Context(), tierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}
