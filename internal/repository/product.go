package repository

import (
	"context"

	"github.com/threetier/catalogapi/internal/model"
)

const listProductsQuery = `SELECT id, name, price FROM products`

// ListProducts returns every row of the products table.
func (r *Repository) ListProducts(ctx context.Context) ([]model.Product, error) {
	return listAll(ctx, r, listProductsQuery, func(rows Rows, p *model.Product) error {
		return rows.Scan(&p.ID, &p.Name, &p.Price)
	})
}
