package services

import (
	"context"

	"food-delivery/db"
	"food-delivery/models"
)

// RegisterUser inserts the user on first contact. Duplicate registration is
// a silent no-op: the fields from the first registration win.
func RegisterUser(ctx context.Context, u models.User) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`,
		u.ID, u.Username, u.FirstName, u.LastName,
	)
	return err
}
