package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS condominiums (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			address TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS fractions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			condominium_id UUID NOT NULL REFERENCES condominiums(id),
			label VARCHAR(50) NOT NULL,
			owner_name VARCHAR(255) NOT NULL,
			permillage BIGINT NOT NULL CHECK (permillage > 0),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (condominium_id, label)
		)`,

		`CREATE TABLE IF NOT EXISTS bank_accounts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			condominium_id UUID NOT NULL REFERENCES condominiums(id),
			name VARCHAR(255) NOT NULL,
			initial_balance NUMERIC(14,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS financial_transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			condominium_id UUID NOT NULL REFERENCES condominiums(id),
			bank_account_id UUID NOT NULL REFERENCES bank_accounts(id),
			type VARCHAR(20) NOT NULL CHECK (type IN ('income', 'expense')),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			transaction_date DATE NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			reference VARCHAR(255),
			fraction_id UUID REFERENCES fractions(id),
			income_entry_type VARCHAR(30),
			related_type VARCHAR(30),
			related_id UUID,
			transfer_to_account_id UUID REFERENCES bank_accounts(id),
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_financial_transactions_account_date
			ON financial_transactions (bank_account_id, transaction_date, created_at, id)`,
		`CREATE INDEX IF NOT EXISTS idx_financial_transactions_related
			ON financial_transactions (related_type, related_id)`,

		`CREATE TABLE IF NOT EXISTS fraction_accounts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fraction_id UUID NOT NULL REFERENCES fractions(id),
			condominium_id UUID NOT NULL REFERENCES condominiums(id),
			balance NUMERIC(14,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (fraction_id, condominium_id)
		)`,

		`CREATE TABLE IF NOT EXISTS fraction_account_movements (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fraction_account_id UUID NOT NULL REFERENCES fraction_accounts(id),
			amount NUMERIC(14,2) NOT NULL,
			source_type VARCHAR(30) NOT NULL,
			financial_transaction_id UUID REFERENCES financial_transactions(id),
			description TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			condominium_id UUID NOT NULL REFERENCES condominiums(id),
			fraction_id UUID NOT NULL REFERENCES fractions(id),
			period_type VARCHAR(10) NOT NULL CHECK (period_type IN ('monthly', 'yearly')),
			period_year INT NOT NULL,
			period_month INT CHECK (period_month BETWEEN 1 AND 12),
			fee_type VARCHAR(10) NOT NULL DEFAULT 'ordinary' CHECK (fee_type IN ('ordinary', 'extra')),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			base_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			due_date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid')),
			is_historical BOOLEAN NOT NULL DEFAULT false,
			reference VARCHAR(255),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_fraction_due
			ON fees (fraction_id, due_date, created_at, id)`,

		`CREATE TABLE IF NOT EXISTS fee_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fee_id UUID NOT NULL REFERENCES fees(id),
			financial_transaction_id UUID REFERENCES financial_transactions(id),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			payment_method VARCHAR(30) NOT NULL,
			payment_date DATE NOT NULL,
			reference VARCHAR(255),
			notes TEXT,
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_fee ON fee_payments (fee_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
