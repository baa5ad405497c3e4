// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threetier/catalogapi/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// The API never owns the schema; tests create the tables it reads.
const (
	dropCatalogSQL = `
		DROP TABLE IF EXISTS products;
		DROP TABLE IF EXISTS users;
	`
	createCatalogSQL = `
		CREATE TABLE users (
			id         SERIAL PRIMARY KEY,
			name       VARCHAR(100) NOT NULL,
			email      VARCHAR(100) UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE products (
			id          SERIAL PRIMARY KEY,
			name        VARCHAR(200) NOT NULL,
			price       NUMERIC(10,2) NOT NULL,
			description TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
)

// ResetCatalogSchema drops and recreates the users and products tables.
func ResetCatalogSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, dropCatalogSQL); err != nil {
		return fmt.Errorf("drop catalog tables: %w", err)
	}
	if _, err := pool.Exec(ctx, createCatalogSQL); err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}
	return nil
}

// DropTable removes a table so tests can exercise query failures.
func DropTable(ctx context.Context, pool *pgxpool.Pool, table string) error {
	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{table}.Sanitize()); err != nil {
		return fmt.Errorf("drop table %s: %w", table, err)
	}
	return nil
}

// SeedUsers inserts users with explicit ids.
func SeedUsers(ctx context.Context, pool *pgxpool.Pool, users ...model.User) error {
	for _, u := range users {
		if _, err := pool.Exec(ctx,
			"INSERT INTO users (id, name, email) VALUES ($1, $2, $3)",
			u.ID, u.Name, u.Email,
		); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}
	return nil
}

// SeedProducts inserts products with explicit ids.
func SeedProducts(ctx context.Context, pool *pgxpool.Pool, products ...model.Product) error {
	for _, p := range products {
		if _, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price) VALUES ($1, $2, $3)",
			p.ID, p.Name, p.Price,
		); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	return nil
}
