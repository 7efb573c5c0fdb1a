package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionEarned TransactionType = "EARNED"
	TransactionSpent  TransactionType = "SPENT"
	TransactionRefund TransactionType = "REFUND"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusRejected TransactionStatus = "REJECTED"
	StatusVoid     TransactionStatus = "VOID"
)

// Transaction is one entry in the append-only points ledger. Points is
// signed: positive for EARNED, negative for SPENT. Rows are never updated
// beyond their status; corrections arrive as new compensating rows.
type Transaction struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	CustomerID uuid.UUID         `json:"customer_id" db:"customer_id"`
	TenantID   uuid.UUID         `json:"tenant_id" db:"tenant_id"`
	Amount     decimal.Decimal   `json:"amount" db:"amount"`
	Points     int64             `json:"points" db:"points"`
	Type       TransactionType   `json:"type" db:"type"`
	Status     TransactionStatus `json:"status" db:"status"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (Transaction) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		customer_id UUID REFERENCES customers(id) ON DELETE CASCADE,
		tenant_id UUID REFERENCES tenants(id) ON DELETE CASCADE,
		amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		points BIGINT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('EARNED', 'SPENT', 'REFUND')),
		status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED', 'VOID')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id, status);`
}
