package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds reported in logs and metrics.
const (
	KindConnection = "connection"
	KindQuery      = "query"
)

// ConnectionError reports that the store could not be reached, rejected the
// credentials, or dropped the connection before a query completed.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError reports a failing statement or row fetch on a live connection.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return "query failed: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Kind returns KindConnection or KindQuery for errors produced by this
// package, and "" for anything else.
func Kind(err error) string {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return KindConnection
	}
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return KindQuery
	}
	return ""
}

// classifyQueryError wraps an error raised after the connection was acquired.
// Transport failures mean the connection was lost mid-query.
func classifyQueryError(query string, err error) error {
	if isConnectionLost(err) {
		return &ConnectionError{Op: "connection lost", Err: err}
	}
	return &QueryError{Query: query, Err: err}
}

func isConnectionLost(err error) bool {
	// Server-side errors arrive on a healthy connection.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
