package friendship

import "errors"

var (
	ErrInvalidUserID = errors.New("user id must be a positive number")
	ErrSelfRelation  = errors.New("a user cannot be in a friendship with themselves")
	ErrInvalidChatID = errors.New("chat id must be a positive number")
	ErrNotFound      = errors.New("friendship not found")
	ErrAlreadyExists = errors.New("friendship already exists")
	ErrChatInUse     = errors.New("chat is already bound to another friendship")
	ErrNotAParty     = errors.New("user is not a party to this friendship")
	ErrUserMissing   = errors.New("user does not exist")
	ErrChatMissing   = errors.New("chat does not exist")
)
