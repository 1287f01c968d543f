package handlers

import (
	"net/http"

	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/services"
)

// UserHandler serves /users.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates the user endpoints.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		pkg.Error(w, err)
		return
	}

	created, err := h.userService.Create(r.Context(), &user)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, created)
}

// Update handles PUT /users. The ID comes from the body.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		pkg.Error(w, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), &user)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, users)
}
