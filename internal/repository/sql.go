package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// sqlProvider uses lib/pq through database/sql. Idle connections are not
// retained, so closing a *sql.Conn closes the physical connection.
type sqlProvider struct {
	db *sql.DB
}

func newSQLProvider(opts Options) (*sqlProvider, error) {
	connector, err := pq.NewConnector(opts.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxIdleConns(0)

	return &sqlProvider{db: db}, nil
}

func (p *sqlProvider) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, &ConnectionError{Op: "failed to connect to database", Err: err}
	}
	return &sqlConn{conn: conn}, nil
}

func (p *sqlProvider) Release(_ context.Context, c Conn) error {
	sc, ok := c.(*sqlConn)
	if !ok {
		return fmt.Errorf("release: unexpected connection type %T", c)
	}
	return sc.conn.Close()
}

func (p *sqlProvider) Ping(ctx context.Context) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(ctx, c)

	return c.(*sqlConn).conn.PingContext(ctx)
}

func (p *sqlProvider) Close() {
	_ = p.db.Close()
}

type sqlConn struct {
	conn *sql.Conn
}

func (c *sqlConn) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &sqlRows{rows: rows}, nil
}

// sqlRows adapts *sql.Rows to Rows.
type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Err() error             { return r.rows.Err() }
func (r *sqlRows) Close()                 { _ = r.rows.Close() }
