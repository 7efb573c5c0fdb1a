package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a loyalty member. Points is a denormalized counter refreshed
// after ledger writes; the authoritative balance is always derived from the
// transactions table (see services.LedgerService).
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Points    int64     `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

func (Customer) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tenant_id UUID REFERENCES tenants(id) ON DELETE CASCADE,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		points BIGINT DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_customers_tenant_id ON customers(tenant_id);
	CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email);
	`
}
