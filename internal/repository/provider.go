package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Supported values for the driver setting.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

// Options is the static configuration a Provider connects with.
// Host, Port, Name and User are required; there are no defaults.
type Options struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string

	SSLMode        string
	ConnectTimeout time.Duration
}

// Validate reports missing connection settings.
func (o Options) Validate() error {
	var errs []error
	if o.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if o.Port <= 0 {
		errs = append(errs, errors.New("port is required"))
	}
	if o.Name == "" {
		errs = append(errs, errors.New("database name is required"))
	}
	if o.User == "" {
		errs = append(errs, errors.New("user is required"))
	}
	return errors.Join(errs...)
}

// DSN renders the options as a postgres:// URL understood by pgx and lib/pq.
func (o Options) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(o.User, o.Password),
		Host:   net.JoinHostPort(o.Host, strconv.Itoa(o.Port)),
		Path:   "/" + o.Name,
	}

	q := url.Values{}
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q.Set("sslmode", sslMode)
	if o.ConnectTimeout > 0 {
		secs := int(o.ConnectTimeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Redacted renders the DSN with the password masked, for logging.
func (o Options) Redacted() string {
	masked := o
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return masked.DSN()
}

// Rows iterates a result set. It is satisfied by pgx.Rows directly.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Conn is a live connection able to run a fixed, non-parameterized query.
type Conn interface {
	Query(ctx context.Context, sql string) (Rows, error)
}

// Provider hands out connections to the store.
// Every successful Acquire must be paired with a Release.
type Provider interface {
	Acquire(ctx context.Context) (Conn, error)
	Release(ctx context.Context, conn Conn) error
	Ping(ctx context.Context) error
	Close()
}

// NewProvider builds the provider for the given driver. With pooled set the
// pgx pool is used regardless of driver; otherwise every Acquire opens a
// fresh connection and Release closes it.
func NewProvider(ctx context.Context, driver string, pooled bool, opts Options) (Provider, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database options: %w", err)
	}

	var (
		p   Provider
		err error
	)
	switch {
	case pooled:
		p, err = newPoolProvider(ctx, opts)
	case driver == DriverPgx || driver == "":
		p, err = newPgxProvider(opts)
	case driver == DriverPostgres:
		p, err = newSQLProvider(opts)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
