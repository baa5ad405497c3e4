// Package repository provides database access layer.
package repository

import (
	"context"
	"time"
)

// Repository runs the fixed catalog queries against connections handed out
// by a Provider. It holds no per-request state and is safe for concurrent use.
type Repository struct {
	provider     Provider
	queryTimeout time.Duration
}

// New creates a new Repository. A zero queryTimeout leaves the request
// context as the only bound on each operation.
func New(provider Provider, queryTimeout time.Duration) *Repository {
	return &Repository{
		provider:     provider,
		queryTimeout: queryTimeout,
	}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.provider.Ping(ctx)
}

// Close releases provider resources.
func (r *Repository) Close() {
	r.provider.Close()
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// listAll acquires a connection, runs query, scans every row with scan and
// releases the connection on every exit path. The result is either the full
// set of rows, in the order the store returned them, or an error.
func listAll[T any](ctx context.Context, r *Repository, query string, scan func(Rows, *T) error) ([]T, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	conn, err := r.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		// A failed close cannot invalidate rows that were already fetched.
		_ = r.provider.Release(context.WithoutCancel(ctx), conn)
	}()

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, classifyQueryError(query, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := scan(rows, &rec); err != nil {
			return nil, classifyQueryError(query, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyQueryError(query, err)
	}

	return records, nil
}
