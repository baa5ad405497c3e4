package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// pgxProvider opens a dedicated pgx connection per Acquire.
type pgxProvider struct {
	config *pgx.ConnConfig
}

func newPgxProvider(opts Options) (*pgxProvider, error) {
	config, err := pgx.ParseConfig(opts.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if opts.ConnectTimeout > 0 {
		config.ConnectTimeout = opts.ConnectTimeout
	}

	return &pgxProvider{config: config}, nil
}

func (p *pgxProvider) Acquire(ctx context.Context) (Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, p.config)
	if err != nil {
		return nil, &ConnectionError{Op: "failed to connect to database", Err: err}
	}
	return &pgxConn{conn: conn}, nil
}

func (p *pgxProvider) Release(ctx context.Context, c Conn) error {
	pc, ok := c.(*pgxConn)
	if !ok {
		return fmt.Errorf("release: unexpected connection type %T", c)
	}
	return pc.conn.Close(ctx)
}

// Ping opens and closes a throwaway connection.
func (p *pgxProvider) Ping(ctx context.Context) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(context.WithoutCancel(ctx), c)

	return c.(*pgxConn).conn.Ping(ctx)
}

// Close is a no-op; no connection outlives its request.
func (p *pgxProvider) Close() {}

type pgxConn struct {
	conn *pgx.Conn
}

func (c *pgxConn) Query(ctx context.Context, sql string) (Rows, error) {
	return c.conn.Query(ctx, sql)
}
