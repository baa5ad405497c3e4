//go:build integration

package repository

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threetier/catalogapi/internal/model"
	"github.com/threetier/catalogapi/internal/testutil"
)

// ============================================================================
// Catalog Repository Integration Tests
// ============================================================================

func TestIntegrationCatalog_ListAcrossProviders(t *testing.T) {
	ctx, pool, opts := newCatalogTestEnv(t)

	if err := testutil.SeedUsers(ctx, pool,
		model.NewUser(1, "Ann", "ann@x.com"),
		model.NewUser(2, "Bob", "bob@x.com"),
	); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	if err := testutil.SeedProducts(ctx, pool,
		model.NewProduct(2, "Widget", 9.99),
	); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	providers := []struct {
		name   string
		driver string
		pooled bool
	}{
		{"pgx", DriverPgx, false},
		{"lib/pq", DriverPostgres, false},
		{"pgxpool", DriverPgx, true},
	}

	for _, p := range providers {
		t.Run(p.name, func(t *testing.T) {
			provider, err := NewProvider(ctx, p.driver, p.pooled, opts)
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			repo := New(provider, 5*time.Second)
			t.Cleanup(repo.Close)

			users, err := repo.ListUsers(ctx)
			if err != nil {
				t.Fatalf("ListUsers: %v", err)
			}
			if len(users) != 2 || !reflect.DeepEqual(users[0], model.NewUser(1, "Ann", "ann@x.com")) {
				t.Errorf("unexpected users: %+v", users)
			}

			products, err := repo.ListProducts(ctx)
			if err != nil {
				t.Fatalf("ListProducts: %v", err)
			}
			if len(products) != 1 || !reflect.DeepEqual(products[0], model.NewProduct(2, "Widget", 9.99)) {
				t.Errorf("unexpected products: %+v", products)
			}

			counts, err := repo.Counts(ctx)
			if err != nil {
				t.Fatalf("Counts: %v", err)
			}
			if counts != (model.TableCounts{Users: 2, Products: 1}) {
				t.Errorf("unexpected counts: %+v", counts)
			}

			if err := repo.Ping(ctx); err != nil {
				t.Errorf("Ping: %v", err)
			}
		})
	}
}

func TestIntegrationCatalog_NullColumns(t *testing.T) {
	ctx, pool, opts := newCatalogTestEnv(t)

	if _, err := pool.Exec(ctx, `
		ALTER TABLE users ALTER COLUMN email DROP NOT NULL;
		ALTER TABLE products ALTER COLUMN price DROP NOT NULL;
		INSERT INTO users (id, name, email) VALUES (1, 'Ann', NULL);
		INSERT INTO products (id, name, price) VALUES (3, 'Gadget', NULL);
	`); err != nil {
		t.Fatalf("prepare nullable rows: %v", err)
	}

	for _, driver := range []string{DriverPgx, DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			provider, err := NewProvider(ctx, driver, false, opts)
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			repo := New(provider, 5*time.Second)
			t.Cleanup(repo.Close)

			users, err := repo.ListUsers(ctx)
			if err != nil {
				t.Fatalf("ListUsers: %v", err)
			}
			if len(users) != 1 || users[0].Email != nil || users[0].Name == nil || *users[0].Name != "Ann" {
				t.Errorf("unexpected users: %+v", users)
			}

			products, err := repo.ListProducts(ctx)
			if err != nil {
				t.Fatalf("ListProducts: %v", err)
			}
			if len(products) != 1 || products[0].Price != nil {
				t.Errorf("unexpected products: %+v", products)
			}
		})
	}
}

func TestIntegrationCatalog_MissingTable(t *testing.T) {
	ctx, pool, opts := newCatalogTestEnv(t)

	if err := testutil.DropTable(ctx, pool, "products"); err != nil {
		t.Fatalf("drop products: %v", err)
	}

	for _, driver := range []string{DriverPgx, DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			provider, err := NewProvider(ctx, driver, false, opts)
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			repo := New(provider, 5*time.Second)
			t.Cleanup(repo.Close)

			products, err := repo.ListProducts(ctx)
			if Kind(err) != KindQuery {
				t.Fatalf("expected query error, got %v", err)
			}
			if products != nil {
				t.Errorf("expected no rows, got %v", products)
			}
		})
	}
}

func TestIntegrationCatalog_BadCredentials(t *testing.T) {
	ctx, _, opts := newCatalogTestEnv(t)
	opts.Password = opts.Password + "-wrong"
	opts.User = opts.User + "_nobody"

	provider, err := NewProvider(ctx, DriverPgx, false, opts)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	repo := New(provider, 5*time.Second)

	if _, err := repo.ListUsers(ctx); Kind(err) != KindConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestIntegrationCatalog_ConcurrentReads(t *testing.T) {
	ctx, pool, opts := newCatalogTestEnv(t)

	if err := testutil.SeedUsers(ctx, pool, model.NewUser(1, "Ann", "ann@x.com")); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	provider, err := NewProvider(ctx, DriverPgx, false, opts)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	repo := New(provider, 5*time.Second)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			users, err := repo.ListUsers(ctx)
			if err == nil && (len(users) != 1 || users[0].Name == nil || *users[0].Name != "Ann") {
				t.Errorf("unexpected users: %+v", users)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent ListUsers: %v", err)
		}
	}
}

func newCatalogTestEnv(t *testing.T) (context.Context, *pgxpool.Pool, Options) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetCatalogSchema(ctx, pool); err != nil {
		t.Fatalf("reset catalog schema: %v", err)
	}

	cc := pool.Config().ConnConfig
	opts := Options{
		Host:           cc.Host,
		Port:           int(cc.Port),
		Name:           cc.Database,
		User:           cc.User,
		Password:       cc.Password,
		ConnectTimeout: 5 * time.Second,
	}

	return ctx, pool, opts
}
