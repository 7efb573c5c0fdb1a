package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Status       string    `json:"status" db:"status"`
	PointsConfig *string   `json:"points_config,omitempty" db:"points_config"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (Tenant) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		status TEXT DEFAULT 'active' CHECK (status IN ('active', 'suspended')),
		points_config JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
