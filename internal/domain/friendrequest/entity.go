package friendrequest

import "time"

// RequestKey identifies a friend request by its ordered (sender, receiver)
// pair. Direction is meaningful and is never normalized: the key built from
// (a, b) is distinct from the key built from (b, a). Reordering here would
// silently invert who requested whom.
type RequestKey struct {
	SenderID   int64 `db:"sender_id" json:"sender_id"`
	ReceiverID int64 `db:"receiver_id" json:"receiver_id"`
}

// NewRequestKey builds a directed key from two distinct positive user ids.
func NewRequestKey(senderID, receiverID int64) (RequestKey, error) {
	if senderID <= 0 || receiverID <= 0 {
		return RequestKey{}, ErrInvalidUserID
	}
	if senderID == receiverID {
		return RequestKey{}, ErrSelfRequest
	}
	return RequestKey{SenderID: senderID, ReceiverID: receiverID}, nil
}

// Reversed returns the key for the opposite direction.
func (k RequestKey) Reversed() RequestKey {
	return RequestKey{SenderID: k.ReceiverID, ReceiverID: k.SenderID}
}

// FriendRequest represents a pending friend request. It is immutable once
// created; accept and reject both consume it.
type FriendRequest struct {
	RequestKey
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// New creates a friend request from sender to receiver. CreatedAt is
// assigned by the store on save.
func New(senderID, receiverID int64) (*FriendRequest, error) {
	key, err := NewRequestKey(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	return &FriendRequest{RequestKey: key}, nil
}

// Key returns the directed key identifying this request.
func (r *FriendRequest) Key() RequestKey {
	return r.RequestKey
}
