// Package model defines the row projections served by the API.
package model

// User is a row of the users table.
// Field order fixes the JSON key order: id, name, email.
// Nullable columns are pointers so a NULL is served as JSON null.
type User struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// NewUser builds a User with every column set.
func NewUser(id int64, name, email string) User {
	return User{ID: id, Name: &name, Email: &email}
}
