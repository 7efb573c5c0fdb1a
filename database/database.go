package database

import (
	"database/sql"
	"fmt"

	"github.com/projectkingz/LocalPerks-WEB-sub000/models"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

var Database *DB

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	Database = &DB{db}
	return Database, nil
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables() error {
	// Enable pgcrypto extension
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`); err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	// Define the order of table creation (respecting foreign key dependencies)
	tables := []interface {
		TableName() string
		CreateTableSQL() string
	}{
		models.Tenant{},
		models.Customer{},
		models.Transaction{},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.CreateTableSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.TableName(), err)
		}
	}

	return nil
}
