package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/repository"
	"github.com/akinalp/filmorate/ws"

	log "github.com/sirupsen/logrus"
)

// FriendshipService drives the friend request state machine:
//
//	none --request--> pending --confirm / reciprocal request--> confirmed
//	pending, confirmed --remove--> none
//
// A pair of users never has more than one row. Events go out only after
// the transaction commits.
type FriendshipService interface {
	Request(ctx context.Context, requesterID, targetID int64) (*models.FriendshipResult, error)
	Confirm(ctx context.Context, confirmingUserID, requesterID int64) error
	Remove(ctx context.Context, userID, otherID int64) error
	ListFriends(ctx context.Context, userID int64) ([]models.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error)
	ListIncomingRequests(ctx context.Context, userID int64) ([]models.User, error)
}

type friendshipService struct {
	store  repository.Store
	events ws.EventPublisher
}

// NewFriendshipService creates the friendship service.
func NewFriendshipService(store repository.Store, events ws.EventPublisher) FriendshipService {
	return &friendshipService{store: store, events: events}
}

// notification is an event waiting for its transaction to commit.
type notification struct {
	to    int64
	event ws.Event
}

func friendEvent(op string, to, from int64) notification {
	return notification{
		to:    to,
		event: ws.Event{Op: op, Data: ws.FriendEventData{UserID: from, FriendID: to}},
	}
}

func (s *friendshipService) Request(ctx context.Context, requesterID, targetID int64) (*models.FriendshipResult, error) {
	if err := checkPair(requesterID, targetID); err != nil {
		return nil, err
	}

	var (
		result  *models.FriendshipResult
		pending notification
	)
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := requireUsers(ctx, r.Users, requesterID, targetID); err != nil {
			return err
		}

		existing, err := r.Friendships.GetByPair(ctx, requesterID, targetID)
		if err != nil && !errors.Is(err, pkg.ErrNotFound) {
			return err
		}

		switch {
		case existing == nil:
			f := &models.Friendship{UserID: requesterID, FriendID: targetID}
			if err := r.Friendships.Create(ctx, f); err != nil {
				return err
			}
			result = &models.FriendshipResult{UserID: requesterID, FriendID: targetID, Status: models.FriendshipStatusPending}
			pending = friendEvent(ws.OpFriendRequestCreate, targetID, requesterID)
			return nil

		case existing.Confirmed:
			return fmt.Errorf("%w: users %d and %d are already friends", pkg.ErrNotAllowed, requesterID, targetID)

		case existing.UserID == requesterID:
			return fmt.Errorf("%w: friend request from %d to %d already sent", pkg.ErrNotAllowed, requesterID, targetID)

		default:
			// The target already asked; accepting it beats storing a second row.
			if err := r.Friendships.Confirm(ctx, targetID, requesterID); err != nil {
				return err
			}
			result = &models.FriendshipResult{UserID: requesterID, FriendID: targetID, Status: models.FriendshipStatusConfirmed}
			pending = friendEvent(ws.OpFriendRequestAccept, targetID, requesterID)
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	s.publish(pending)
	return result, nil
}

func (s *friendshipService) Confirm(ctx context.Context, confirmingUserID, requesterID int64) error {
	if err := checkPair(confirmingUserID, requesterID); err != nil {
		return err
	}

	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := requireUsers(ctx, r.Users, confirmingUserID, requesterID); err != nil {
			return err
		}
		return r.Friendships.Confirm(ctx, requesterID, confirmingUserID)
	})
	if err != nil {
		return err
	}

	s.publish(friendEvent(ws.OpFriendRequestAccept, requesterID, confirmingUserID))
	return nil
}

func (s *friendshipService) Remove(ctx context.Context, userID, otherID int64) error {
	if err := checkPair(userID, otherID); err != nil {
		return err
	}

	removed := false
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := requireUsers(ctx, r.Users, userID, otherID); err != nil {
			return err
		}

		_, err := r.Friendships.GetByPair(ctx, userID, otherID)
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		removed = true
		return r.Friendships.DeleteByPair(ctx, userID, otherID)
	})
	if err != nil {
		return err
	}

	if removed {
		s.publish(friendEvent(ws.OpFriendRemove, otherID, userID))
	}
	return nil
}

func (s *friendshipService) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	if err := requireUsers(ctx, repos.Users, userID); err != nil {
		return nil, err
	}
	return repos.Friendships.ListFriends(ctx, userID)
}

func (s *friendshipService) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	if err := checkID(otherID); err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	if err := requireUsers(ctx, repos.Users, userID, otherID); err != nil {
		return nil, err
	}

	mine, err := repos.Friendships.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := repos.Friendships.ListFriends(ctx, otherID)
	if err != nil {
		return nil, err
	}

	shared := make(map[int64]bool, len(theirs))
	for _, u := range theirs {
		shared[u.ID] = true
	}

	common := make([]models.User, 0)
	for _, u := range mine {
		if shared[u.ID] {
			common = append(common, u)
		}
	}
	return common, nil
}

func (s *friendshipService) ListIncomingRequests(ctx context.Context, userID int64) ([]models.User, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	if err := requireUsers(ctx, repos.Users, userID); err != nil {
		return nil, err
	}
	return repos.Friendships.ListIncoming(ctx, userID)
}

func (s *friendshipService) publish(n notification) {
	if n.event.Op == "" {
		return
	}
	s.events.BroadcastToUser(n.to, n.event)
	log.WithFields(log.Fields{
		"component": "friendship",
		"op":        n.event.Op,
		"user_id":   n.to,
	}).Debug("event published")
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", pkg.ErrInvalidArgument, id)
	}
	return nil
}

// checkPair validates both IDs and rejects a user acting on themselves.
func checkPair(a, b int64) error {
	if err := checkID(a); err != nil {
		return err
	}
	if err := checkID(b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: user %d cannot befriend themselves", pkg.ErrNotAllowed, a)
	}
	return nil
}
