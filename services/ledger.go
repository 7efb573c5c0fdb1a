package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/database"
	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

var ErrCustomerNotFound = errors.New("customer not found")

// LedgerService derives customer balances from the immutable transaction
// ledger. The customers.points column is advisory; every balance this
// service hands out is a fresh fold over the ledger.
type LedgerService struct {
	db  *database.DB
	log zerolog.Logger
}

func NewLedgerService(db *database.DB, log zerolog.Logger) *LedgerService {
	return &LedgerService{db: db, log: log}
}

// rawLedgerSum folds the signed points of ledger entries that have taken
// effect. VOID rows contribute their points regardless of type; APPROVED
// EARNED and SPENT rows contribute their signed points; everything else
// (PENDING, REJECTED, approved REFUND markers) contributes nothing.
func rawLedgerSum(transactions []models.Transaction) int64 {
	var sum int64
	for _, tx := range transactions {
		switch {
		case tx.Status == models.StatusVoid:
			sum += tx.Points
		case tx.Status == models.StatusApproved && tx.Type == models.TransactionEarned:
			sum += tx.Points
		case tx.Status == models.StatusApproved && tx.Type == models.TransactionSpent:
			sum += tx.Points
		}
	}
	return sum
}

// SumLedger folds a transaction history into a balance, clamped at zero.
// A raw negative sum means bad data or a historical race, never a debt the
// customer owes.
func SumLedger(transactions []models.Transaction) int64 {
	if sum := rawLedgerSum(transactions); sum > 0 {
		return sum
	}
	return 0
}

type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func loadLedger(q querier, customerID uuid.UUID) ([]models.Transaction, error) {
	rows, err := q.Query(`
		SELECT id, customer_id, tenant_id, amount, points, type, status, created_at
		FROM transactions
		WHERE customer_id = $1 AND status IN ('APPROVED', 'VOID')
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.TenantID, &tx.Amount, &tx.Points, &tx.Type, &tx.Status, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// CalculateCustomerPoints returns the customer's authoritative balance.
func (s *LedgerService) CalculateCustomerPoints(customerID uuid.UUID) (int64, error) {
	transactions, err := loadLedger(s.db, customerID)
	if err != nil {
		return 0, err
	}
	return SumLedger(transactions), nil
}

// PointsBalanceBreakdown compares the cached counter on the customer row
// against the ledger-derived balance. ActualPoints is ground truth;
// StoredPoints exists only so dashboards can show drift.
type PointsBalanceBreakdown struct {
	StoredPoints     int64 `json:"storedPoints"`
	CalculatedPoints int64 `json:"calculatedPoints"`
	ActualPoints     int64 `json:"actualPoints"`
}

func (s *LedgerService) GetCustomerPointsBreakdown(customerID uuid.UUID) (PointsBalanceBreakdown, error) {
	var stored int64
	err := s.db.QueryRow(`SELECT points FROM customers WHERE id = $1`, customerID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return PointsBalanceBreakdown{}, ErrCustomerNotFound
	}
	if err != nil {
		return PointsBalanceBreakdown{}, fmt.Errorf("failed to load customer: %w", err)
	}

	transactions, err := loadLedger(s.db, customerID)
	if err != nil {
		return PointsBalanceBreakdown{}, err
	}

	raw := rawLedgerSum(transactions)
	breakdown := PointsBalanceBreakdown{
		StoredPoints:     stored,
		CalculatedPoints: raw,
		ActualPoints:     SumLedger(transactions),
	}
	if stored != breakdown.ActualPoints {
		s.log.Warn().
			Str("customer_id", customerID.String()).
			Int64("stored", stored).
			Int64("actual", breakdown.ActualPoints).
			Msg("cached points counter has drifted from ledger")
	}
	return breakdown, nil
}

// ValidationResult reports whether a proposed deduction would overdraw
// the balance. It is advisory: the write path must re-check under a lock
// (RedeemPoints does) before persisting a SPENT row.
type ValidationResult struct {
	IsValid                 bool   `json:"isValid"`
	CurrentBalance          int64  `json:"currentBalance"`
	BalanceAfterTransaction int64  `json:"balanceAfterTransaction"`
	Error                   string `json:"error,omitempty"`
}

func validateDeduction(balance, pointsToDeduct int64) ValidationResult {
	result := ValidationResult{
		CurrentBalance:          balance,
		BalanceAfterTransaction: balance - pointsToDeduct,
	}
	switch {
	case pointsToDeduct <= 0:
		result.Error = "points to deduct must be positive"
	case result.BalanceAfterTransaction < 0:
		result.Error = fmt.Sprintf("insufficient points: balance %d, requested %d", balance, pointsToDeduct)
	default:
		result.IsValid = true
	}
	return result
}

// ValidatePointTransaction recomputes the balance and checks the proposed
// deduction against it.
func (s *LedgerService) ValidatePointTransaction(customerID uuid.UUID, pointsToDeduct int64) (ValidationResult, error) {
	balance, err := s.CalculateCustomerPoints(customerID)
	if err != nil {
		return ValidationResult{}, err
	}
	return validateDeduction(balance, pointsToDeduct), nil
}

// RedeemPoints atomically validates and appends a SPENT transaction. The
// customer row is locked for the duration, so two concurrent redemptions
// serialize and the second sees the first's deduction; a joint overdraw
// cannot happen. An insufficient balance is reported in the
// ValidationResult, not as an error.
func (s *LedgerService) RedeemPoints(ctx context.Context, customerID, tenantID uuid.UUID, points int64, amount decimal.Decimal) (*models.Transaction, ValidationResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to begin redemption: %w", err)
	}
	defer tx.Rollback()

	var stored int64
	err = tx.QueryRow(`SELECT points FROM customers WHERE id = $1 FOR UPDATE`, customerID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ValidationResult{}, ErrCustomerNotFound
	}
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to lock customer: %w", err)
	}

	transactions, err := loadLedger(tx, customerID)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	balance := SumLedger(transactions)

	result := validateDeduction(balance, points)
	if !result.IsValid {
		s.log.Info().
			Str("customer_id", customerID.String()).
			Int64("requested", points).
			Int64("balance", balance).
			Msg("redemption rejected")
		return nil, result, nil
	}

	spent := models.Transaction{
		CustomerID: customerID,
		TenantID:   tenantID,
		Amount:     amount,
		Points:     -points,
		Type:       models.TransactionSpent,
		Status:     models.StatusApproved,
	}
	err = tx.QueryRow(`
		INSERT INTO transactions (customer_id, tenant_id, amount, points, type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, spent.CustomerID, spent.TenantID, spent.Amount, spent.Points, spent.Type, spent.Status).Scan(&spent.ID, &spent.CreatedAt)
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to record redemption: %w", err)
	}

	// Refresh the advisory counter while the row is still locked.
	if _, err := tx.Exec(`UPDATE customers SET points = $1, updated_at = now() WHERE id = $2`,
		result.BalanceAfterTransaction, customerID); err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to update cached points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to commit redemption: %w", err)
	}
	return &spent, result, nil
}

// RefreshStoredPoints recomputes the ledger balance and writes it to the
// advisory customers.points column. Called after status changes that
// affect the fold.
func (s *LedgerService) RefreshStoredPoints(customerID uuid.UUID) (int64, error) {
	balance, err := s.CalculateCustomerPoints(customerID)
	if err != nil {
		return 0, err
	}
	if _, err := s.db.Exec(`UPDATE customers SET points = $1, updated_at = now() WHERE id = $2`, balance, customerID); err != nil {
		return 0, fmt.Errorf("failed to refresh cached points: %w", err)
	}
	return balance, nil
}
