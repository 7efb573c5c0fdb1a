package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectkingz/LocalPerks-WEB-sub000/database"
	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
	"github.com/projectkingz/LocalPerks-WEB-sub000/services"
)

type CustomerHandler struct {
	ledger *services.LedgerService
}

func NewCustomerHandler(ledger *services.LedgerService) *CustomerHandler {
	return &CustomerHandler{ledger: ledger}
}

// CreateCustomer enrolls a loyalty member under a tenant.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req struct {
		TenantID uuid.UUID `json:"tenant_id" binding:"required"`
		FullName string    `json:"full_name" binding:"required"`
		Email    string    `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		TenantID: req.TenantID,
		FullName: req.FullName,
		Email:    req.Email,
	}
	err := database.Database.QueryRow(`
		INSERT INTO customers (tenant_id, full_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, points, created_at, updated_at
	`, customer.TenantID, customer.FullName, customer.Email).Scan(
		&customer.ID, &customer.Points, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    customer,
	})
}

// GetCustomerPoints returns the ledger-derived balance. Dashboards must
// call this rather than reading the cached points column.
func (h *CustomerHandler) GetCustomerPoints(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"points":  points,
	})
}

// GetCustomerPointsBreakdown is a diagnostic view comparing the cached
// counter against the ledger.
func (h *CustomerHandler) GetCustomerPointsBreakdown(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	breakdown, err := h.ledger.GetCustomerPointsBreakdown(customerID)
	if errors.Is(err, services.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load points breakdown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    breakdown,
	})
}
