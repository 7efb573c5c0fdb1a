package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/services"
)

type RedemptionHandler struct {
	ledger  *services.LedgerService
	configs *services.ConfigService
}

func NewRedemptionHandler(ledger *services.LedgerService, configs *services.ConfigService) *RedemptionHandler {
	return &RedemptionHandler{ledger: ledger, configs: configs}
}

// GetAvailableDiscounts lists the whole-pound discounts the customer's
// balance can fund under the tenant's config.
func (h *RedemptionHandler) GetAvailableDiscounts(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	points, err := h.ledger.CalculateCustomerPoints(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate points"})
		return
	}

	cfg := h.configs.ResolveConfig(c.Query("tenant_id"))
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"points":     points,
		"face_value": services.CalculatePointsFaceValue(points, cfg),
		"discounts":  services.GetAvailableDiscounts(points, cfg),
	})
}

// ValidateRedemption is the advisory pre-check clients call before
// showing a confirmation screen. The authoritative check happens again
// inside RedeemPoints.
func (h *RedemptionHandler) ValidateRedemption(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	var req struct {
		Points int64 `json:"points" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ledger.ValidatePointTransaction(customerID, req.Points)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate redemption"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// RedeemPoints converts a requested discount to points and spends them.
// The deduction is serialized per customer, so concurrent requests cannot
// jointly overdraw the balance.
func (h *RedemptionHandler) RedeemPoints(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	var req struct {
		TenantID       uuid.UUID       `json:"tenant_id" binding:"required"`
		DiscountAmount decimal.Decimal `json:"discount_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := h.configs.ResolveConfig(req.TenantID.String())
	points := services.CalculatePointsForDiscount(req.DiscountAmount, cfg)
	if points <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount amount must be positive"})
		return
	}

	tx, result, err := h.ledger.RedeemPoints(c.Request.Context(), customerID, req.TenantID, points, req.DiscountAmount)
	if errors.Is(err, services.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem points"})
		return
	}
	if !result.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":    false,
			"error":      result.Error,
			"validation": result,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"data":       tx,
		"validation": result,
	})
}
