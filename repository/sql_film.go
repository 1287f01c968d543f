package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
)

const filmSelect = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
	FROM films f
	LEFT JOIN content_rating m ON m.id = f.mpa_id`

type sqlFilmRepo struct {
	db database.TxQuerier
}

// NewSQLFilmRepo returns the SQL implementation of FilmRepository.
func NewSQLFilmRepo(db database.TxQuerier) FilmRepository {
	return &sqlFilmRepo{db: db}
}

func (r *sqlFilmRepo) Create(ctx context.Context, film *models.Film) error {
	query := `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		film.Name, film.Description, nullableDate(film.ReleaseDate), film.Duration, nullableID(film.MpaID()),
	).Scan(&film.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: mpa %d", pkg.ErrNotFound, film.MpaID())
		}
		return fmt.Errorf("failed to create film: %w", err)
	}

	return r.replaceGenres(ctx, film.ID, film.GenreIDs())
}

func (r *sqlFilmRepo) Update(ctx context.Context, film *models.Film) error {
	query := `
		UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, mpa_id = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		film.Name, film.Description, nullableDate(film.ReleaseDate), film.Duration, nullableID(film.MpaID()), film.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: mpa %d", pkg.ErrNotFound, film.MpaID())
		}
		return fmt.Errorf("failed to update film: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: film %d", pkg.ErrNotFound, film.ID)
	}

	return r.replaceGenres(ctx, film.ID, film.GenreIDs())
}

func (r *sqlFilmRepo) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	film, err := scanFilm(r.db.QueryRowContext(ctx, filmSelect+` WHERE f.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: film %d", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get film by id: %w", err)
	}

	films := []models.Film{*film}
	if err := r.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (r *sqlFilmRepo) List(ctx context.Context) ([]models.Film, error) {
	return r.queryFilms(ctx, filmSelect+` ORDER BY f.id`)
}

func (r *sqlFilmRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, `SELECT 1 FROM films WHERE id = ?`, id)
}

func (r *sqlFilmRepo) MostLiked(ctx context.Context, limit int) ([]models.Film, error) {
	query := filmSelect + `
		LEFT JOIN likes l ON l.film_id = f.id
		GROUP BY f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
		ORDER BY COUNT(l.user_id) DESC, f.id ASC
		LIMIT ?`

	return r.queryFilms(ctx, query, limit)
}

func (r *sqlFilmRepo) DeleteAll(ctx context.Context) error {
	for _, query := range []string{`DELETE FROM film_genres`, `DELETE FROM films`} {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to delete films: %w", err)
		}
	}
	return nil
}

func (r *sqlFilmRepo) queryFilms(ctx context.Context, query string, args ...any) ([]models.Film, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	defer rows.Close()

	films := []models.Film{}
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		films = append(films, *film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate films: %w", err)
	}

	if err := r.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// replaceGenres swaps the film's genre links for ids.
func (r *sqlFilmRepo) replaceGenres(ctx context.Context, filmID int64, ids []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = ?`, filmID); err != nil {
		return fmt.Errorf("failed to clear film genres: %w", err)
	}

	for _, genreID := range ids {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?)`, filmID, genreID)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: genre %d", pkg.ErrNotFound, genreID)
			}
			return fmt.Errorf("failed to link film genre: %w", err)
		}
	}

	return nil
}

// attachGenres loads genres for every film in one query.
func (r *sqlFilmRepo) attachGenres(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	index := make(map[int64]int, len(films))
	ids := make([]int64, len(films))
	for i := range films {
		films[i].Genres = []models.Genre{}
		index[films[i].ID] = i
		ids[i] = films[i].ID
	}

	query := `
		SELECT fg.film_id, g.id, g.name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id IN (` + database.Placeholders(len(ids)) + `)
		ORDER BY fg.film_id, g.id`

	rows, err := r.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return fmt.Errorf("failed to query film genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var genre models.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return fmt.Errorf("failed to scan film genre: %w", err)
		}
		i := index[filmID]
		films[i].Genres = append(films[i].Genres, genre)
	}

	return rows.Err()
}

func scanFilm(row rowScanner) (*models.Film, error) {
	film := &models.Film{}
	var mpaID sql.NullInt64
	var mpaName sql.NullString

	if err := row.Scan(
		&film.ID, &film.Name, &film.Description, &film.ReleaseDate, &film.Duration, &mpaID, &mpaName,
	); err != nil {
		return nil, err
	}

	if mpaID.Valid {
		film.Mpa = &models.Mpa{ID: mpaID.Int64, Name: mpaName.String}
	}
	return film, nil
}
