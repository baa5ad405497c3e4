package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// poolProvider serves connections from a pgx pool. Release returns the
// connection to the pool instead of closing it.
type poolProvider struct {
	pool *pgxpool.Pool
}

func newPoolProvider(ctx context.Context, opts Options) (*poolProvider, error) {
	config, err := pgxpool.ParseConfig(opts.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 0
	if opts.ConnectTimeout > 0 {
		config.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &poolProvider{pool: pool}, nil
}

func (p *poolProvider) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, &ConnectionError{Op: "failed to acquire connection", Err: err}
	}
	return &poolConn{conn: conn}, nil
}

func (p *poolProvider) Release(_ context.Context, c Conn) error {
	pc, ok := c.(*poolConn)
	if !ok {
		return fmt.Errorf("release: unexpected connection type %T", c)
	}
	pc.conn.Release()
	return nil
}

func (p *poolProvider) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return &ConnectionError{Op: "failed to ping database", Err: err}
	}
	return nil
}

func (p *poolProvider) Close() {
	p.pool.Close()
}

type poolConn struct {
	conn *pgxpool.Conn
}

func (c *poolConn) Query(ctx context.Context, sql string) (Rows, error) {
	return c.conn.Query(ctx, sql)
}
