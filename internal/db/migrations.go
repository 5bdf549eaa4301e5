package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('AVAILABLE', 'ASSIGNED', 'BLOCKED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'assignment_status') THEN
			CREATE TYPE assignment_status AS ENUM ('ACTIVE', 'COMPLETED', 'CANCELLED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'block_status') THEN
			CREATE TYPE block_status AS ENUM ('ACTIVE', 'COMPLETED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'owner_type') THEN
			CREATE TYPE owner_type AS ENUM ('VEHICLE', 'DRIVER');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plate_number VARCHAR(32) NOT NULL UNIQUE,
		model VARCHAR(128) NOT NULL,
		year INTEGER NOT NULL,
		odometer_km INTEGER NOT NULL DEFAULT 0,
		status vehicle_status NOT NULL DEFAULT 'AVAILABLE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		full_name VARCHAR(256) NOT NULL,
		phone VARCHAR(32),
		email VARCHAR(256),
		license_number VARCHAR(64) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		reason TEXT,
		status assignment_status NOT NULL DEFAULT 'ACTIVE',
		cancel_reason TEXT,
		created_by VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_assignments_window CHECK (end_time > start_time)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_vehicle_id ON assignments (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_driver_id ON assignments (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_status ON assignments (status);`,
	`CREATE TABLE IF NOT EXISTS vehicle_blocks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		reason TEXT NOT NULL,
		status block_status NOT NULL DEFAULT 'ACTIVE',
		created_by VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_vehicle_blocks_window CHECK (end_time > start_time)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_blocks_vehicle_id ON vehicle_blocks (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_blocks_status ON vehicle_blocks (status);`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		owner_type owner_type NOT NULL,
		owner_id UUID NOT NULL,
		type VARCHAR(64) NOT NULL,
		issue_date TIMESTAMPTZ NOT NULL,
		expiry_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_documents_dates CHECK (expiry_date > issue_date)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (owner_type, owner_id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_expiry_date ON documents (expiry_date);`,
	`CREATE TABLE IF NOT EXISTS service_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		last_service_km INTEGER NOT NULL,
		current_km INTEGER NOT NULL,
		next_service_km INTEGER NOT NULL,
		service_date TIMESTAMPTZ NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_service_records_km CHECK (current_km >= last_service_km AND next_service_km > last_service_km)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_records_vehicle_id ON service_records (vehicle_id);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_assignments_updated_at') THEN
			CREATE TRIGGER trg_assignments_updated_at
				BEFORE UPDATE ON assignments
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicle_blocks_updated_at') THEN
			CREATE TRIGGER trg_vehicle_blocks_updated_at
				BEFORE UPDATE ON vehicle_blocks
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
