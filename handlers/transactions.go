package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/database"
	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
	"github.com/projectkingz/LocalPerks-WEB-sub000/services"
)

type TransactionHandler struct {
	engine  *services.PointsEngine
	ledger  *services.LedgerService
	configs *services.ConfigService
}

func NewTransactionHandler(engine *services.PointsEngine, ledger *services.LedgerService, configs *services.ConfigService) *TransactionHandler {
	return &TransactionHandler{engine: engine, ledger: ledger, configs: configs}
}

// CreateTransaction records a purchase from a receipt scan or manual
// entry. The point award is computed here; the row starts PENDING and
// affects no balance until an admin approves it.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req struct {
		CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
		TenantID   uuid.UUID       `json:"tenant_id" binding:"required"`
		Amount     decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	points := h.engine.CalculatePointsForTransaction(req.Amount, req.TenantID.String())

	tx := models.Transaction{
		CustomerID: req.CustomerID,
		TenantID:   req.TenantID,
		Amount:     req.Amount,
		Points:     points,
		Type:       models.TransactionEarned,
		Status:     models.StatusPending,
	}
	err := database.Database.QueryRow(`
		INSERT INTO transactions (customer_id, tenant_id, amount, points, type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, tx.CustomerID, tx.TenantID, tx.Amount, tx.Points, tx.Type, tx.Status).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	cfg := h.configs.ResolveConfig(req.TenantID.String())
	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"data":            tx,
		"platform_charge": services.CalculatePlatformCharge(req.Amount, cfg),
	})
}

// PreviewPoints returns the full calculation breakdown without persisting
// anything, for receipt-scan UIs. Optional date query (YYYY-MM-DD)
// defaults to today.
func (h *TransactionHandler) PreviewPoints(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
	}

	breakdown := h.engine.Preview(amount, c.Query("tenant_id"), date)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    breakdown,
	})
}

// ListCustomerTransactions returns a customer's ledger, newest first.
func (h *TransactionHandler) ListCustomerTransactions(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	rows, err := database.Database.Query(`
		SELECT id, customer_id, tenant_id, amount, points, type, status, created_at
		FROM transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.TenantID, &tx.Amount, &tx.Points, &tx.Type, &tx.Status, &tx.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan transaction"})
			return
		}
		transactions = append(transactions, tx)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transactions,
	})
}

// ApproveTransaction moves a PENDING row to APPROVED, at which point it
// enters the balance fold. The advisory counter is refreshed afterwards.
func (h *TransactionHandler) ApproveTransaction(c *gin.Context) {
	h.setStatus(c, models.StatusPending, models.StatusApproved, true)
}

// RejectTransaction moves a PENDING row to REJECTED. Rejected rows never
// enter the fold, so no counter refresh is needed.
func (h *TransactionHandler) RejectTransaction(c *gin.Context) {
	h.setStatus(c, models.StatusPending, models.StatusRejected, false)
}

// VoidTransaction moves an APPROVED row to VOID. The row is never
// mutated beyond its status; the fold semantics of VOID handle the rest.
func (h *TransactionHandler) VoidTransaction(c *gin.Context) {
	h.setStatus(c, models.StatusApproved, models.StatusVoid, true)
}

func (h *TransactionHandler) setStatus(c *gin.Context, from, to models.TransactionStatus, refresh bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	var customerID uuid.UUID
	err = database.Database.QueryRow(`
		UPDATE transactions SET status = $1 WHERE id = $2 AND status = $3
		RETURNING customer_id
	`, to, id, from).Scan(&customerID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction not found or not " + string(from)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	response := gin.H{"success": true, "status": to}
	if refresh {
		if balance, err := h.ledger.RefreshStoredPoints(customerID); err == nil {
			response["points"] = balance
		}
	}
	c.JSON(http.StatusOK, response)
}
