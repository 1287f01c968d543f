package repository

import (
	"context"

	"github.com/akinalp/filmorate/database"
)

// Repositories groups every repository bound to one querier.
type Repositories struct {
	Users       UserRepository
	Friendships FriendshipRepository
	Films       FilmRepository
	Likes       LikeRepository
	Genres      GenreRepository
	Mpa         MpaRepository
}

// NewRepositories binds all repositories to q, which may be the pool or a transaction.
func NewRepositories(q database.TxQuerier) *Repositories {
	return &Repositories{
		Users:       NewSQLUserRepo(q),
		Friendships: NewSQLFriendshipRepo(q),
		Films:       NewSQLFilmRepo(q),
		Likes:       NewSQLLikeRepo(q),
		Genres:      NewSQLGenreRepo(q),
		Mpa:         NewSQLMpaRepo(q),
	}
}

// Store hands out repositories, either on the pool or inside a transaction.
type Store interface {
	// Repos returns repositories running outside any transaction.
	Repos() *Repositories
	// WithinTx runs fn with repositories bound to one transaction.
	// fn returning an error rolls everything back.
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
	// Reset deletes all users, films and their relations. Test support only.
	Reset(ctx context.Context) error
}

type sqlStore struct {
	db    *database.DB
	repos *Repositories
}

// NewSQLStore returns a Store over db.
func NewSQLStore(db *database.DB) Store {
	return &sqlStore{db: db, repos: NewRepositories(db.Querier())}
}

func (s *sqlStore) Repos() *Repositories {
	return s.repos
}

func (s *sqlStore) WithinTx(ctx context.Context, fn func(r *Repositories) error) error {
	return database.WithTx(ctx, s.db, func(q database.TxQuerier) error {
		return fn(NewRepositories(q))
	})
}

func (s *sqlStore) Reset(ctx context.Context) error {
	return s.WithinTx(ctx, func(r *Repositories) error {
		if err := r.Likes.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Friendships.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Films.DeleteAll(ctx); err != nil {
			return err
		}
		return r.Users.DeleteAll(ctx)
	})
}
