// Package repository is the data access layer.
//
// Each entity has an interface file and a SQL implementation. Services only
// see the interfaces. Implementations take a database.TxQuerier, so the same
// code runs on the pool or inside a transaction, and write "?" placeholders
// that the querier rebinds for the active dialect.
package repository

import (
	"context"

	"github.com/akinalp/filmorate/models"
)

// UserRepository persists users.
type UserRepository interface {
	// Create inserts the user and sets its generated ID.
	Create(ctx context.Context, user *models.User) error
	// Update overwrites every mutable field. Missing ID yields pkg.ErrNotFound.
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// DeleteAll wipes the table. Test support only.
	DeleteAll(ctx context.Context) error
}
