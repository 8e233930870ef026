package friendship

import "context"

// Repository defines friendship data access interface
type Repository interface {
	Get(ctx context.Context, key PairKey) (*Friendship, error)
	Exists(ctx context.Context, key PairKey) (bool, error)
	// Save inserts a new friendship. ErrAlreadyExists when the pair already
	// has one, ErrChatInUse when the chat id is bound to another friendship.
	Save(ctx context.Context, f *Friendship) (*Friendship, error)
	// Delete removes the friendship and reports whether a row was removed.
	Delete(ctx context.Context, key PairKey) (bool, error)
	// ListForUser returns friendships where userID is on either side of the key.
	ListForUser(ctx context.Context, userID int64) ([]*Friendship, error)
	// UpdateBlockFlags persists the two block flags of an existing friendship.
	UpdateBlockFlags(ctx context.Context, f *Friendship) error
}
