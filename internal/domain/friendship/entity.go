package friendship

import "time"

// PairKey identifies a friendship by its two participants. The constructor
// normalizes order so that NewPairKey(a, b) equals NewPairKey(b, a): the
// smaller id always lands in UserIDLow. A friendship key is symmetric;
// directional identities live in the friendrequest package and are never
// reordered.
type PairKey struct {
	UserIDLow  int64 `db:"user_id_low" json:"user_id_low"`
	UserIDHigh int64 `db:"user_id_high" json:"user_id_high"`
}

// NewPairKey builds a normalized key from two distinct positive user ids.
func NewPairKey(a, b int64) (PairKey, error) {
	if a <= 0 || b <= 0 {
		return PairKey{}, ErrInvalidUserID
	}
	if a == b {
		return PairKey{}, ErrSelfRelation
	}
	if a < b {
		return PairKey{UserIDLow: a, UserIDHigh: b}, nil
	}
	return PairKey{UserIDLow: b, UserIDHigh: a}, nil
}

// Contains reports whether userID is one of the two participants.
func (k PairKey) Contains(userID int64) bool {
	return userID == k.UserIDLow || userID == k.UserIDHigh
}

// Other returns the participant that is not userID. ok is false when userID
// is not a party to the key.
func (k PairKey) Other(userID int64) (friendID int64, ok bool) {
	switch userID {
	case k.UserIDLow:
		return k.UserIDHigh, true
	case k.UserIDHigh:
		return k.UserIDLow, true
	}
	return 0, false
}

// Friendship represents an established relationship between two users.
// ChatID is set once at creation and unique across all friendships. The
// block flags belong to the low/high side of the key, not to whoever sent
// the original request — that information does not survive acceptance.
type Friendship struct {
	PairKey
	ChatID        int64     `db:"chat_id" json:"chat_id"`
	BlockedByLow  bool      `db:"blocked_by_low" json:"blocked_by_low"`
	BlockedByHigh bool      `db:"blocked_by_high" json:"blocked_by_high"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// New creates a friendship between two users bound to chatID. CreatedAt is
// assigned by the store on save.
func New(userA, userB, chatID int64) (*Friendship, error) {
	key, err := NewPairKey(userA, userB)
	if err != nil {
		return nil, err
	}
	if chatID <= 0 {
		return nil, ErrInvalidChatID
	}
	return &Friendship{PairKey: key, ChatID: chatID}, nil
}

// Key returns the pair key identifying this friendship.
func (f *Friendship) Key() PairKey {
	return f.PairKey
}
