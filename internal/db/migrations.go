package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations applies the embedded schema statements in order.
// Statements are idempotent so startup can run them unconditionally.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("running database migrations")

	migrations := []string{
		createExtensions,
		createUsersTable,
		createBeachesTable,
		createZonesTable,
		createSunbedsTable,
		createBeachAdminsTable,
		createBookingsTable,
		createBookingSunbedsTable,
		createFinanceRecordsTable,
		createPayoutsTable,
		createAlertsTable,
		createIntegrationsTable,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}

const createExtensions = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    name VARCHAR(255) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'admin',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login_at TIMESTAMPTZ,

    CHECK (role IN ('admin', 'super_admin'))
);`

const createBeachesTable = `
CREATE TABLE IF NOT EXISTS beaches (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(255) NOT NULL,
    location VARCHAR(255) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    price_per_day NUMERIC(10,2) NOT NULL DEFAULT 0,
    amenities TEXT[] NOT NULL DEFAULT '{}',
    images TEXT[] NOT NULL DEFAULT '{}',
    total_capacity INTEGER NOT NULL DEFAULT 0,
    current_bookings INTEGER NOT NULL DEFAULT 0,
    occupancy_rate INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (status IN ('active', 'inactive', 'maintenance')),
    CHECK (occupancy_rate BETWEEN 0 AND 100)
);`

const createZonesTable = `
CREATE TABLE IF NOT EXISTS zones (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    beach_id UUID NOT NULL REFERENCES beaches(id),
    name VARCHAR(255) NOT NULL,
    rows INTEGER NOT NULL DEFAULT 0,
    cols INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (rows >= 0),
    CHECK (cols >= 0)
);
CREATE INDEX IF NOT EXISTS zones_beach_id_idx ON zones (beach_id);`

const createSunbedsTable = `
CREATE TABLE IF NOT EXISTS sunbeds (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    zone_id UUID NOT NULL REFERENCES zones(id),
    code VARCHAR(32) NOT NULL,
    row_number INTEGER NOT NULL,
    col_number INTEGER NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'available',
    price_modifier NUMERIC(10,2) NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE (zone_id, code),
    CHECK (status IN ('available', 'reserved', 'unavailable', 'selected'))
);
CREATE INDEX IF NOT EXISTS sunbeds_zone_id_idx ON sunbeds (zone_id);`

const createBeachAdminsTable = `
CREATE TABLE IF NOT EXISTS beach_admins (
    beach_id UUID NOT NULL REFERENCES beaches(id),
    user_id UUID NOT NULL REFERENCES users(id),
    assigned_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    PRIMARY KEY (beach_id, user_id),
    UNIQUE (user_id)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    beach_id UUID NOT NULL REFERENCES beaches(id),
    zone_id UUID REFERENCES zones(id),
    customer_name VARCHAR(255) NOT NULL,
    customer_email VARCHAR(255) NOT NULL,
    check_in_date DATE NOT NULL,
    check_out_date DATE NOT NULL,
    total_price NUMERIC(10,2) NOT NULL DEFAULT 0,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
    CHECK (payment_status IN ('pending', 'paid', 'refunded'))
);
CREATE INDEX IF NOT EXISTS bookings_beach_id_idx ON bookings (beach_id);
CREATE INDEX IF NOT EXISTS bookings_check_in_date_idx ON bookings (check_in_date);`

const createBookingSunbedsTable = `
CREATE TABLE IF NOT EXISTS booking_sunbeds (
    booking_id UUID NOT NULL REFERENCES bookings(id),
    sunbed_id UUID NOT NULL REFERENCES sunbeds(id),
    reserved_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    PRIMARY KEY (booking_id, sunbed_id)
);`

const createFinanceRecordsTable = `
CREATE TABLE IF NOT EXISTS finance_records (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    type VARCHAR(20) NOT NULL,
    amount NUMERIC(12,2) NOT NULL,
    description TEXT NOT NULL,
    booking_id UUID REFERENCES bookings(id),
    beach_id UUID REFERENCES beaches(id),
    record_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (type IN ('rental_income', 'service_fee', 'expense'))
);
CREATE INDEX IF NOT EXISTS finance_records_beach_id_idx ON finance_records (beach_id);
CREATE INDEX IF NOT EXISTS finance_records_record_date_idx ON finance_records (record_date);`

const createPayoutsTable = `
CREATE TABLE IF NOT EXISTS payouts (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    beach_id UUID NOT NULL REFERENCES beaches(id),
    amount NUMERIC(12,2) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    requested_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    processed_date TIMESTAMPTZ,
    processed_by UUID REFERENCES users(id),
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (status IN ('pending', 'approved', 'rejected', 'completed'))
);`

const createAlertsTable = `
CREATE TABLE IF NOT EXISTS alerts (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    type VARCHAR(20) NOT NULL,
    message TEXT NOT NULL,
    beach_id UUID REFERENCES beaches(id),
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (type IN ('info', 'warning', 'success', 'error'))
);`

const createIntegrationsTable = `
CREATE TABLE IF NOT EXISTS integrations (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(255) NOT NULL,
    type VARCHAR(50) NOT NULL,
    provider VARCHAR(255),
    api_key VARCHAR(512) NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT FALSE,
    settings JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
