package friendrequest

import "context"

// Repository defines friend request data access interface
type Repository interface {
	Get(ctx context.Context, key RequestKey) (*FriendRequest, error)
	Exists(ctx context.Context, key RequestKey) (bool, error)
	// Save inserts a new request. ErrAlreadyExists when the ordered pair
	// already has one.
	Save(ctx context.Context, req *FriendRequest) (*FriendRequest, error)
	// Delete removes the request and reports whether a row was removed. Under
	// concurrent accept/reject only one caller observes true.
	Delete(ctx context.Context, key RequestKey) (bool, error)
	ListBySender(ctx context.Context, senderID int64) ([]*FriendRequest, error)
	ListByReceiver(ctx context.Context, receiverID int64) ([]*FriendRequest, error)
}
