package repository

import (
	"context"
	"fmt"

	"github.com/threetier/catalogapi/internal/model"
)

const countTablesQuery = `SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM products)`

// Counts returns the number of rows in each catalog table, read on a single
// connection in one statement.
func (r *Repository) Counts(ctx context.Context) (model.TableCounts, error) {
	rows, err := listAll(ctx, r, countTablesQuery, func(rows Rows, c *model.TableCounts) error {
		return rows.Scan(&c.Users, &c.Products)
	})
	if err != nil {
		return model.TableCounts{}, err
	}
	if len(rows) != 1 {
		return model.TableCounts{}, &QueryError{
			Query: countTablesQuery,
			Err:   fmt.Errorf("expected 1 row, got %d", len(rows)),
		}
	}
	return rows[0], nil
}
