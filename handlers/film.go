package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/services"
)

// FilmHandler serves /films.
type FilmHandler struct {
	filmService services.FilmService
}

// NewFilmHandler creates the film endpoints.
func NewFilmHandler(filmService services.FilmService) *FilmHandler {
	return &FilmHandler{filmService: filmService}
}

// Create handles POST /films.
func (h *FilmHandler) Create(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := decodeJSON(w, r, &film); err != nil {
		pkg.Error(w, err)
		return
	}

	created, err := h.filmService.Create(r.Context(), &film)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, created)
}

// Update handles PUT /films.
func (h *FilmHandler) Update(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := decodeJSON(w, r, &film); err != nil {
		pkg.Error(w, err)
		return
	}

	updated, err := h.filmService.Update(r.Context(), &film)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}

// GetByID handles GET /films/{id}.
func (h *FilmHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	film, err := h.filmService.GetByID(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, film)
}

// List handles GET /films.
func (h *FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	films, err := h.filmService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, films)
}

// Popular handles GET /films/popular?count=N.
func (h *FilmHandler) Popular(w http.ResponseWriter, r *http.Request) {
	count := services.DefaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			pkg.Error(w, fmt.Errorf("%w: count must be an integer, got %q", pkg.ErrInvalidArgument, raw))
			return
		}
		count = n
	}

	films, err := h.filmService.MostLiked(r.Context(), count)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, films)
}

// AddLike handles PUT /films/{id}/like/{userId}.
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.filmService.AddLike)
}

// RemoveLike handles DELETE /films/{id}/like/{userId}.
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.filmService.RemoveLike)
}

func (h *FilmHandler) likeAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, filmID, userID int64) error) {
	filmID, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := fn(r.Context(), filmID, userID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
