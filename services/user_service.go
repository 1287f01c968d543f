// Package services holds the business logic. Handlers depend on the
// service interfaces; services depend on repository.Store and run every
// mutating operation inside one transaction.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/repository"
)

// UserService manages user accounts.
type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// UserExists backs the WebSocket handler's user check.
	UserExists(ctx context.Context, id int64) (bool, error)
}

type userService struct {
	store repository.Store
}

// NewUserService creates the user service.
func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

func (s *userService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if user.ID != 0 {
		return nil, fmt.Errorf("%w: user id must be empty on create", pkg.ErrConflictingID)
	}
	user.ApplyDefaults()

	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := ensureEmailFree(ctx, r.Users, user.Email, 0); err != nil {
			return err
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.ApplyDefaults()

	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := requireUsers(ctx, r.Users, user.ID); err != nil {
			return err
		}
		if err := ensureEmailFree(ctx, r.Users, user.Email, user.ID); err != nil {
			return err
		}
		return r.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.Repos().Users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.store.Repos().Users.List(ctx)
}

func (s *userService) UserExists(ctx context.Context, id int64) (bool, error) {
	return s.store.Repos().Users.Exists(ctx, id)
}

// ensureEmailFree fails when email belongs to a user other than ownerID.
func ensureEmailFree(ctx context.Context, users repository.UserRepository, email string, ownerID int64) error {
	existing, err := users.GetByEmail(ctx, email)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != ownerID {
		return fmt.Errorf("%w: %s", pkg.ErrDuplicateEmail, email)
	}
	return nil
}

// requireUsers returns pkg.ErrNotFound naming the first missing ID.
func requireUsers(ctx context.Context, users repository.UserRepository, ids ...int64) error {
	for _, id := range ids {
		ok, err := users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: user %d", pkg.ErrNotFound, id)
		}
	}
	return nil
}
