package status

import (
	"context"

	"github.com/friendcircle/friendship-api/internal/domain/friendrequest"
	"github.com/friendcircle/friendship-api/internal/domain/friendship"
)

// Status is the relationship between two users as seen from the first one.
type Status string

const (
	// Pending: the first user sent a request the second has not answered.
	Pending Status = "PENDING"
	// Received: the first user has an unanswered request from the second.
	Received Status = "RECEIVED"
	// Friends: an established friendship exists between the pair.
	Friends Status = "FRIENDS"
	// NotFriends: no request in either direction and no friendship.
	NotFriends Status = "NOT_FRIENDS"
)

// RequestStore is the slice of the friend request repository the resolver reads.
type RequestStore interface {
	Exists(ctx context.Context, key friendrequest.RequestKey) (bool, error)
}

// FriendshipStore is the slice of the friendship repository the resolver reads.
type FriendshipStore interface {
	Exists(ctx context.Context, key friendship.PairKey) (bool, error)
}

// Resolver derives the relationship status for a pair of users by querying
// both stores. Read-only.
type Resolver struct {
	requests    RequestStore
	friendships FriendshipStore
}

// NewResolver creates status resolver
func NewResolver(requests RequestStore, friendships FriendshipStore) *Resolver {
	return &Resolver{requests: requests, friendships: friendships}
}

// Between resolves the status of userA towards userB. The precedence is
// fixed — outgoing request, incoming request, friendship, nothing — so the
// answer stays deterministic even when stores hold rows that should not
// coexist (a stale request next to a friendship mid-acceptance).
func (r *Resolver) Between(ctx context.Context, userA, userB int64) (Status, error) {
	outgoing, err := friendrequest.NewRequestKey(userA, userB)
	if err != nil {
		return "", err
	}

	if exists, err := r.requests.Exists(ctx, outgoing); err != nil {
		return "", err
	} else if exists {
		return Pending, nil
	}

	if exists, err := r.requests.Exists(ctx, outgoing.Reversed()); err != nil {
		return "", err
	} else if exists {
		return Received, nil
	}

	pair, err := friendship.NewPairKey(userA, userB)
	if err != nil {
		return "", err
	}
	if exists, err := r.friendships.Exists(ctx, pair); err != nil {
		return "", err
	} else if exists {
		return Friends, nil
	}

	return NotFriends, nil
}
