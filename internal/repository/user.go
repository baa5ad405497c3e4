package repository

import (
	"context"

	"github.com/threetier/catalogapi/internal/model"
)

const listUsersQuery = `SELECT id, name, email FROM users`

// ListUsers returns every row of the users table.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	return listAll(ctx, r, listUsersQuery, func(rows Rows, u *model.User) error {
		return rows.Scan(&u.ID, &u.Name, &u.Email)
	})
}
