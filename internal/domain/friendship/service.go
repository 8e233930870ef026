package friendship

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ExistenceChecker confirms entities owned by collaborator services.
// Implementations are fail-closed: an entity whose existence cannot be
// confirmed is reported as missing, never as an error.
type ExistenceChecker interface {
	UserExists(ctx context.Context, userID int64) bool
	ChatExists(ctx context.Context, chatID int64) bool
}

// Service handles friendship business logic
type Service struct {
	repo    Repository
	checker ExistenceChecker
}

// NewService creates friendship service
func NewService(repo Repository, checker ExistenceChecker) *Service {
	return &Service{repo: repo, checker: checker}
}

// Get returns the friendship between two users, nil when there is none.
func (s *Service) Get(ctx context.Context, userID1, userID2 int64) (*Friendship, error) {
	key, err := NewPairKey(userID1, userID2)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, key)
}

// Exists reports whether a friendship between the two users exists.
func (s *Service) Exists(ctx context.Context, userID1, userID2 int64) (bool, error) {
	key, err := NewPairKey(userID1, userID2)
	if err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, key)
}

// Create establishes a friendship over an already existing chat. Both users
// and the chat must be confirmed by their owning services first.
func (s *Service) Create(ctx context.Context, userID1, userID2, chatID int64) (*Friendship, error) {
	f, err := New(userID1, userID2, chatID)
	if err != nil {
		return nil, err
	}

	if !s.checker.UserExists(ctx, f.UserIDLow) {
		return nil, fmt.Errorf("%w: %d", ErrUserMissing, f.UserIDLow)
	}
	if !s.checker.UserExists(ctx, f.UserIDHigh) {
		return nil, fmt.Errorf("%w: %d", ErrUserMissing, f.UserIDHigh)
	}
	if !s.checker.ChatExists(ctx, chatID) {
		return nil, fmt.Errorf("%w: %d", ErrChatMissing, chatID)
	}

	return s.repo.Save(ctx, f)
}

// ListViews returns the user's friendships projected from their point of view.
func (s *Service) ListViews(ctx context.Context, userID int64) ([]*RelationshipView, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	friendships, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewViewList(friendships, userID), nil
}

// MutualFriendsCount counts users that are friends with both userID1 and userID2.
func (s *Service) MutualFriendsCount(ctx context.Context, userID1, userID2 int64) (int, error) {
	if userID1 <= 0 || userID2 <= 0 {
		return 0, ErrInvalidUserID
	}

	first, err := s.repo.ListForUser(ctx, userID1)
	if err != nil {
		return 0, err
	}
	second, err := s.repo.ListForUser(ctx, userID2)
	if err != nil {
		return 0, err
	}

	friendsOfFirst := make(map[int64]struct{}, len(first))
	for _, f := range first {
		if friendID, ok := f.Other(userID1); ok {
			friendsOfFirst[friendID] = struct{}{}
		}
	}

	count := 0
	for _, f := range second {
		friendID, ok := f.Other(userID2)
		if !ok {
			continue
		}
		if _, mutual := friendsOfFirst[friendID]; mutual {
			count++
		}
	}
	return count, nil
}

// ToggleBlock flips blockerID's block flag on the friendship between
// blockerID and otherID and returns the updated view from the blocker's side.
// The pair key is built from both ids, so a blocker who is not a party to any
// friendship with otherID resolves to a pair with no record and gets
// ErrNotFound: "not a party" and "no friendship between these two" collapse
// into the same answer here.
func (s *Service) ToggleBlock(ctx context.Context, otherID, blockerID int64) (*RelationshipView, error) {
	key, err := NewPairKey(otherID, blockerID)
	if err != nil {
		return nil, err
	}

	f, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}

	if blockerID == f.UserIDLow {
		f.BlockedByLow = !f.BlockedByLow
	} else {
		f.BlockedByHigh = !f.BlockedByHigh
	}

	if err := s.repo.UpdateBlockFlags(ctx, f); err != nil {
		return nil, err
	}

	log.Info().
		Int64("blocker_id", blockerID).
		Int64("other_id", otherID).
		Msg("Friendship block flag toggled")

	return NewView(f, blockerID)
}

// Unfriend removes the friendship between two users. ErrNotFound when there
// was none.
func (s *Service) Unfriend(ctx context.Context, userID1, userID2 int64) error {
	key, err := NewPairKey(userID1, userID2)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
