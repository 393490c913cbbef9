// Package postgres provides the SQL-backed BIC directory for deployments
// where the bank directory is maintained outside the process.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schwifty/internal/bic"
	"schwifty/pkg/domain"
	"schwifty/pkg/platform/sentinel"
)

// Store implements bic.Directory over a bank_directory table.
type Store struct {
	db *sql.DB
}

// New creates a postgres-backed directory.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema is the table this store reads from. Applied by EnsureSchema; kept
// here rather than a migrations directory because it is a single table.
const Schema = `
CREATE TABLE IF NOT EXISTS bank_directory (
	country_code CHAR(2)      NOT NULL,
	bank_code    VARCHAR(30)  NOT NULL,
	bic          VARCHAR(11)  NOT NULL,
	PRIMARY KEY (country_code, bank_code)
)`

// EnsureSchema creates the bank_directory table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure bank_directory schema: %w", err)
	}
	return nil
}

// Put registers or replaces an association.
func (s *Store) Put(ctx context.Context, countryCode domain.CountryCode, bankCode string, value bic.BIC) error {
	query := `
		INSERT INTO bank_directory (country_code, bank_code, bic)
		VALUES ($1, $2, $3)
		ON CONFLICT (country_code, bank_code) DO UPDATE SET bic = EXCLUDED.bic
	`
	if _, err := s.db.ExecContext(ctx, query, countryCode.String(), bankCode, value.String()); err != nil {
		return fmt.Errorf("upsert bank_directory entry: %w", err)
	}
	return nil
}

// LookupByBankCode implements bic.Directory.
func (s *Store) LookupByBankCode(ctx context.Context, countryCode domain.CountryCode, bankCode string) (bic.BIC, error) {
	query := `SELECT bic FROM bank_directory WHERE country_code = $1 AND bank_code = $2`

	var raw string
	err := s.db.QueryRowContext(ctx, query, countryCode.String(), bankCode).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return bic.BIC{}, fmt.Errorf("bic for %s/%s: %w", countryCode, bankCode, sentinel.ErrNotFound)
	}
	if err != nil {
		return bic.BIC{}, fmt.Errorf("query bank_directory: %w", err)
	}

	b, err := bic.Parse(raw)
	if err != nil {
		// A row we cannot parse means the directory data is corrupt, not that
		// the association is missing.
		return bic.BIC{}, fmt.Errorf("bank_directory row for %s/%s: %w", countryCode, bankCode, err)
	}
	return b, nil
}
