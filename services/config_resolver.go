package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projectkingz/LocalPerks-WEB-sub000/database"
	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

// ConfigService resolves the points configuration for a tenant. Resolution
// never fails: any lookup or parse problem degrades to the platform
// default so a misconfigured tenant keeps earning points at the standard
// rates.
type ConfigService struct {
	db  *database.DB
	log zerolog.Logger
}

func NewConfigService(db *database.DB, log zerolog.Logger) *ConfigService {
	return &ConfigService{db: db, log: log}
}

// ResolveConfig returns the tenant's stored overrides merged over the
// default config, or the default unchanged when the tenant is unknown,
// has no stored config, or the stored JSON does not parse.
func (s *ConfigService) ResolveConfig(tenantID string) models.TenantPointsConfig {
	def := models.DefaultPointsConfig()
	if s == nil || s.db == nil {
		return def
	}

	id, err := uuid.Parse(tenantID)
	if err != nil {
		return def
	}

	var raw sql.NullString
	err = s.db.QueryRow(`SELECT points_config FROM tenants WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("points config lookup failed, using default")
		}
		return def
	}
	if !raw.Valid || raw.String == "" {
		return def
	}

	var stored models.StoredPointsConfig
	if err := json.Unmarshal([]byte(raw.String), &stored); err != nil {
		s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("malformed points config, using default")
		return def
	}

	return models.MergePointsConfig(def, stored)
}
