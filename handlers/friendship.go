package handlers

import (
	"net/http"

	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/services"
)

// FriendshipHandler serves /users/{id}/friends.
//
//	PUT    /users/{id}/friends/{friendId}          request (or accept a reciprocal request)
//	PUT    /users/{id}/friends/{friendId}/confirm  accept friendId's pending request
//	DELETE /users/{id}/friends/{friendId}          remove in both directions
//	GET    /users/{id}/friends                     friend list
//	GET    /users/{id}/friends/requests            pending incoming requests
//	GET    /users/{id}/friends/common/{otherId}    common friends
type FriendshipHandler struct {
	friendService services.FriendshipService
}

// NewFriendshipHandler creates the friendship endpoints.
func NewFriendshipHandler(friendService services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendService: friendService}
}

func (h *FriendshipHandler) Request(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, func(id, friendID int64) error {
		_, err := h.friendService.Request(r.Context(), id, friendID)
		return err
	})
}

func (h *FriendshipHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, func(id, friendID int64) error {
		return h.friendService.Confirm(r.Context(), id, friendID)
	})
}

func (h *FriendshipHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, func(id, friendID int64) error {
		return h.friendService.Remove(r.Context(), id, friendID)
	})
}

func (h *FriendshipHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, friends)
}

func (h *FriendshipHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	requests, err := h.friendService.ListIncomingRequests(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, requests)
}

func (h *FriendshipHandler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	common, err := h.friendService.CommonFriends(r.Context(), id, otherID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, common)
}

// pairAction parses {id} and {friendId}, runs fn and answers 204.
func (h *FriendshipHandler) pairAction(w http.ResponseWriter, r *http.Request, fn func(id, friendID int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := fn(id, friendID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
