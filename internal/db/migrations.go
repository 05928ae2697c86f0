package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_type') THEN
			CREATE TYPE contract_type AS ENUM ('ANNUAL', 'ONE_OFF');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('ACTIVE', 'SUSPENDED', 'TERMINATED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'intervention_type') THEN
			CREATE TYPE intervention_type AS ENUM ('OPERATION', 'CONTROL');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'intervention_status') THEN
			CREATE TYPE intervention_status AS ENUM ('TO_SCHEDULE', 'SCHEDULED', 'COMPLETED', 'POSTPONED', 'CANCELLED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'frequency') THEN
			CREATE TYPE frequency AS ENUM ('WEEKLY', 'MONTHLY', 'QUARTERLY', 'SEMIANNUAL', 'ANNUAL', 'CUSTOM');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS sites (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		type contract_type NOT NULL,
		status contract_status NOT NULL DEFAULT 'ACTIVE',
		start_date DATE NOT NULL,
		end_date DATE,
		operation_frequency frequency,
		operation_frequency_days INT,
		first_operation_date DATE,
		control_frequency frequency,
		control_frequency_days INT,
		first_control_date DATE,
		operation_count INT NOT NULL DEFAULT 0,
		auto_continue BOOLEAN NOT NULL DEFAULT FALSE,
		prestation VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contract_sites (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		site_id UUID NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		prestations TEXT NOT NULL DEFAULT '',
		operation_frequency frequency,
		operation_frequency_days INT,
		first_operation_date DATE,
		control_frequency frequency,
		control_frequency_days INT,
		first_control_date DATE,
		operation_count INT NOT NULL DEFAULT 0,
		control_visit_count INT NOT NULL DEFAULT 0,
		UNIQUE (contract_id, site_id)
	);`,
	`CREATE TABLE IF NOT EXISTS interventions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		contract_id UUID REFERENCES contracts(id) ON DELETE CASCADE,
		site_id UUID REFERENCES sites(id),
		type intervention_type NOT NULL,
		status intervention_status NOT NULL DEFAULT 'TO_SCHEDULE',
		planned_date DATE NOT NULL,
		planned_time VARCHAR(5),
		duration_min INT NOT NULL DEFAULT 60,
		completed_date DATE,
		prestation VARCHAR(255) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_contract_id ON interventions (contract_id) WHERE contract_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_planned_date_status ON interventions (planned_date, status);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_client_id ON interventions (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		actor_id UUID NOT NULL,
		action VARCHAR(64) NOT NULL,
		entity_type VARCHAR(64) NOT NULL,
		entity_id UUID NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
