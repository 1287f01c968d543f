package handlers

import (
	"net/http"

	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/services"
)

// ReferenceHandler serves the read-only /genres and /mpa endpoints.
type ReferenceHandler struct {
	refService services.ReferenceService
}

func NewReferenceHandler(refService services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refService: refService}
}

func (h *ReferenceHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.refService.ListGenres(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, genres)
}

func (h *ReferenceHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	genre, err := h.refService.GetGenre(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, genre)
}

func (h *ReferenceHandler) ListMpa(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.refService.ListMpa(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, ratings)
}

func (h *ReferenceHandler) GetMpa(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	rating, err := h.refService.GetMpa(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, rating)
}
