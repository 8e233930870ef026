package friendship

import (
	"time"

	"github.com/rs/zerolog/log"
)

// RelationshipView is a friendship projected from one participant's point of
// view: the friend is always "the other side", and the block flags are read
// off whichever end of the pair the viewer occupies. Storage order never
// leaks out to clients.
type RelationshipView struct {
	FriendID        int64     `json:"friend_id"`
	BlockedByViewer bool      `json:"blocked_by_viewer"`
	BlockedByFriend bool      `json:"blocked_by_friend"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewView projects f for viewerID. ErrNotAParty when the viewer is neither
// side of the pair.
func NewView(f *Friendship, viewerID int64) (*RelationshipView, error) {
	friendID, ok := f.Other(viewerID)
	if !ok {
		return nil, ErrNotAParty
	}

	view := &RelationshipView{
		FriendID:  friendID,
		CreatedAt: f.CreatedAt,
	}
	if viewerID == f.UserIDLow {
		view.BlockedByViewer = f.BlockedByLow
		view.BlockedByFriend = f.BlockedByHigh
	} else {
		view.BlockedByViewer = f.BlockedByHigh
		view.BlockedByFriend = f.BlockedByLow
	}
	return view, nil
}

// NewViewList projects each friendship for viewerID, skipping records the
// viewer is not a party to instead of failing the whole batch.
func NewViewList(friendships []*Friendship, viewerID int64) []*RelationshipView {
	views := make([]*RelationshipView, 0, len(friendships))
	for _, f := range friendships {
		view, err := NewView(f, viewerID)
		if err != nil {
			log.Warn().
				Int64("viewer_id", viewerID).
				Int64("user_id_low", f.UserIDLow).
				Int64("user_id_high", f.UserIDHigh).
				Msg("Skipping friendship the viewer is not a party to")
			continue
		}
		views = append(views, view)
	}
	return views
}

// CreateFriendshipRequest for POST /friendships
type CreateFriendshipRequest struct {
	UserID1 int64 `json:"user_id1" validate:"required,id"`
	UserID2 int64 `json:"user_id2" validate:"required,id,nefield=UserID1"`
	ChatID  int64 `json:"chat_id" validate:"required,id"`
}
