package friendrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/friendcircle/friendship-api/internal/domain/friendship"
)

// FriendshipStore is the slice of the friendship repository the acceptance
// saga writes through.
type FriendshipStore interface {
	Save(ctx context.Context, f *friendship.Friendship) (*friendship.Friendship, error)
}

// UserChecker confirms users with the user service. Fail-closed: an
// unconfirmable user is reported as missing.
type UserChecker interface {
	UserExists(ctx context.Context, userID int64) bool
}

// ChatCreator creates chats in the chat service and tears one down when the
// saga has to compensate.
type ChatCreator interface {
	CreateChat(ctx context.Context, idempotencyKey string) (int64, error)
	DeleteChat(ctx context.Context, chatID int64) error
}

// Service handles friend request business logic, including the acceptance
// saga that spans the remote chat service and both local stores.
type Service struct {
	repo        Repository
	friendships FriendshipStore
	users       UserChecker
	chats       ChatCreator
}

// NewService creates friend request service
func NewService(repo Repository, friendships FriendshipStore, users UserChecker, chats ChatCreator) *Service {
	return &Service{
		repo:        repo,
		friendships: friendships,
		users:       users,
		chats:       chats,
	}
}

// Get returns the request from sender to receiver, nil when there is none.
func (s *Service) Get(ctx context.Context, senderID, receiverID int64) (*FriendRequest, error) {
	key, err := NewRequestKey(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, key)
}

// Exists reports whether a request from sender to receiver exists.
func (s *Service) Exists(ctx context.Context, senderID, receiverID int64) (bool, error) {
	key, err := NewRequestKey(senderID, receiverID)
	if err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, key)
}

// ListBySender returns all requests the user has sent.
func (s *Service) ListBySender(ctx context.Context, senderID int64) ([]*FriendRequest, error) {
	if senderID <= 0 {
		return nil, ErrInvalidUserID
	}
	if !s.users.UserExists(ctx, senderID) {
		return nil, fmt.Errorf("%w: %d", ErrUserMissing, senderID)
	}
	return s.repo.ListBySender(ctx, senderID)
}

// ListByReceiver returns all requests awaiting the user's answer.
func (s *Service) ListByReceiver(ctx context.Context, receiverID int64) ([]*FriendRequest, error) {
	if receiverID <= 0 {
		return nil, ErrInvalidUserID
	}
	if !s.users.UserExists(ctx, receiverID) {
		return nil, fmt.Errorf("%w: %d", ErrUserMissing, receiverID)
	}
	return s.repo.ListByReceiver(ctx, receiverID)
}

// Send creates a friend request after confirming both users with the user
// service.
func (s *Service) Send(ctx context.Context, senderID, receiverID int64) (*FriendRequest, error) {
	req, err := New(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	if !s.users.UserExists(ctx, senderID) {
		return nil, fmt.Errorf("%w: %d", ErrUserMissing, senderID)
	}
	if !s.users.UserExists(ctx, receiverID) {
		return nil, fmt.Errorf("%w: %d", ErrUserMissing, receiverID)
	}

	saved, err := s.repo.Save(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("sender_id", senderID).
		Int64("receiver_id", receiverID).
		Msg("Friend request created")
	return saved, nil
}

// Accept turns a pending request into a friendship. The steps run in a fixed
// order: load the request, create the chat remotely, save the friendship,
// delete the request. The remote side effect comes before any local write so
// a friendship never references a chat that was not created. The saga never
// retries its own steps; a failed step surfaces to the caller, and replaying
// Accept is safe because a consumed request answers ErrNotFound.
func (s *Service) Accept(ctx context.Context, senderID, receiverID int64) (*friendship.Friendship, error) {
	key, err := NewRequestKey(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	req, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	chatID, err := s.chats.CreateChat(ctx, acceptIdempotencyKey(key))
	if err != nil {
		log.Error().Err(err).
			Int64("sender_id", senderID).
			Int64("receiver_id", receiverID).
			Msg("Chat creation failed, friend request left in place")
		return nil, ErrChatCreation
	}

	f, err := friendship.New(senderID, receiverID, chatID)
	if err != nil {
		return nil, err
	}

	saved, err := s.friendships.Save(ctx, f)
	if err != nil {
		// The request stays so the whole accept can be retried. Compensate the
		// remote step best-effort; if the delete fails too, the idempotency key
		// keeps a retry from minting a second orphan.
		//
		// A duplicate-pair or chat-in-use failure means a friendship already
		// references this chat: a concurrent accept won the race and, via the
		// shared idempotency key, bound the very same chat id. The chat is
		// live, so it must not be deleted.
		log.Error().Err(err).
			Int64("sender_id", senderID).
			Int64("receiver_id", receiverID).
			Int64("chat_id", chatID).
			Msg("Friendship save failed after chat creation, friend request left in place")
		if !errors.Is(err, friendship.ErrAlreadyExists) && !errors.Is(err, friendship.ErrChatInUse) {
			if delErr := s.chats.DeleteChat(ctx, chatID); delErr != nil {
				log.Warn().Err(delErr).
					Int64("chat_id", chatID).
					Msg("Orphaned chat could not be deleted")
			}
		}
		return nil, ErrSaveFailed
	}

	if deleted, err := s.repo.Delete(ctx, key); err != nil || !deleted {
		// Status derivation checks requests before friendships, but the pair
		// is already friends, so the stale row is benign until cleaned up.
		log.Warn().Err(err).
			Int64("sender_id", senderID).
			Int64("receiver_id", receiverID).
			Msg("Stale friend request left behind after acceptance")
	}

	log.Info().
		Int64("sender_id", senderID).
		Int64("receiver_id", receiverID).
		Int64("chat_id", chatID).
		Msg("Friend request accepted")
	return saved, nil
}

// Reject consumes a pending request without creating anything. ErrNotFound
// when there is no request from sender to receiver, including replays after
// a successful accept or reject.
func (s *Service) Reject(ctx context.Context, senderID, receiverID int64) error {
	key, err := NewRequestKey(senderID, receiverID)
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

	log.Info().
		Int64("sender_id", senderID).
		Int64("receiver_id", receiverID).
		Msg("Friend request rejected")
	return nil
}

// chatCreationNamespace scopes idempotency keys for accept-driven chat
// creation.
var chatCreationNamespace = uuid.MustParse("7a7b62ea-3f79-4b17-9a3e-6cf1d8a40a11")

// acceptIdempotencyKey derives a stable key from the request identity so a
// retried accept presents the same key to the chat service.
func acceptIdempotencyKey(key RequestKey) string {
	return uuid.NewSHA1(chatCreationNamespace, fmt.Appendf(nil, "%d:%d", key.SenderID, key.ReceiverID)).String()
}
