package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectkingz/LocalPerks-WEB-sub000/database"
	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
	"github.com/projectkingz/LocalPerks-WEB-sub000/services"
)

type TenantHandler struct {
	configs *services.ConfigService
}

func NewTenantHandler(configs *services.ConfigService) *TenantHandler {
	return &TenantHandler{configs: configs}
}

// CreateTenant enrolls a partner business.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant := models.Tenant{Name: req.Name}
	err := database.Database.QueryRow(`
		INSERT INTO tenants (name) VALUES ($1)
		RETURNING id, status, created_at, updated_at
	`, tenant.Name).Scan(&tenant.ID, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    tenant,
	})
}

// GetTenantPointsConfig returns the tenant's resolved configuration, i.e.
// stored overrides merged over the platform default.
func (h *TenantHandler) GetTenantPointsConfig(c *gin.Context) {
	tenantID := c.Param("id")
	if _, err := uuid.Parse(tenantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.configs.ResolveConfig(tenantID),
	})
}

// UpdateTenantPointsConfig stores a tenant's config overrides. The body is
// decoded strictly: unknown fields are rejected rather than silently
// shadowing defaults.
func (h *TenantHandler) UpdateTenantPointsConfig(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant id"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	var stored models.StoredPointsConfig
	if err := decoder.Decode(&stored); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid points config: " + err.Error()})
		return
	}
	if stored.RoundingRule != nil {
		switch *stored.RoundingRule {
		case models.RoundPenny, models.RoundFivePence, models.RoundTenPence, models.RoundPound:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rounding rule"})
			return
		}
	}

	result, err := database.Database.Exec(`
		UPDATE tenants SET points_config = $1, updated_at = now() WHERE id = $2
	`, string(body), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update points config"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.configs.ResolveConfig(tenantID.String()),
	})
}

// GetTenant returns a single tenant row.
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant id"})
		return
	}

	var tenant models.Tenant
	err = database.Database.QueryRow(`
		SELECT id, name, status, points_config, created_at, updated_at
		FROM tenants WHERE id = $1
	`, tenantID).Scan(&tenant.ID, &tenant.Name, &tenant.Status, &tenant.PointsConfig, &tenant.CreatedAt, &tenant.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tenant,
	})
}
