package friendrequest

import "errors"

var (
	ErrInvalidUserID = errors.New("user id must be a positive number")
	ErrSelfRequest   = errors.New("a user cannot send a friend request to themselves")
	ErrNotFound      = errors.New("friend request not found")
	ErrAlreadyExists = errors.New("friend request already exists")
	ErrUserMissing   = errors.New("user does not exist")

	// Saga step failures surfaced by Accept
	ErrChatCreation = errors.New("chat creation failed")
	ErrSaveFailed   = errors.New("friendship could not be saved")
)
