package friendrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new friend request repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, key RequestKey) (*FriendRequest, error) {
	query := `
		SELECT sender_id, receiver_id, created_at
		FROM friend_requests
		WHERE sender_id = $1 AND receiver_id = $2
	`
	var req FriendRequest
	err := r.db.GetContext(ctx, &req, query, key.SenderID, key.ReceiverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("friend request repository get: %w", err)
	}
	return &req, nil
}

func (r *repository) Exists(ctx context.Context, key RequestKey) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, key.SenderID, key.ReceiverID)
	if err != nil {
		return false, fmt.Errorf("friend request repository exists: %w", err)
	}
	return exists, nil
}

func (r *repository) Save(ctx context.Context, req *FriendRequest) (*FriendRequest, error) {
	query := `
		INSERT INTO friend_requests (sender_id, receiver_id)
		VALUES ($1, $2)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, req.SenderID, req.ReceiverID).Scan(&req.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateUniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("friend request repository save: %w", err)
	}
	return req, nil
}

func (r *repository) Delete(ctx context.Context, key RequestKey) (bool, error) {
	query := `DELETE FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2`
	res, err := r.db.ExecContext(ctx, query, key.SenderID, key.ReceiverID)
	if err != nil {
		return false, fmt.Errorf("friend request repository delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("friend request repository delete: %w", err)
	}
	return rows > 0, nil
}

func (r *repository) ListBySender(ctx context.Context, senderID int64) ([]*FriendRequest, error) {
	query := `
		SELECT sender_id, receiver_id, created_at
		FROM friend_requests
		WHERE sender_id = $1
		ORDER BY created_at DESC
	`
	var requests []*FriendRequest
	err := r.db.SelectContext(ctx, &requests, query, senderID)
	if err != nil {
		return nil, fmt.Errorf("friend request repository list by sender: %w", err)
	}
	return requests, nil
}

func (r *repository) ListByReceiver(ctx context.Context, receiverID int64) ([]*FriendRequest, error) {
	query := `
		SELECT sender_id, receiver_id, created_at
		FROM friend_requests
		WHERE receiver_id = $1
		ORDER BY created_at DESC
	`
	var requests []*FriendRequest
	err := r.db.SelectContext(ctx, &requests, query, receiverID)
	if err != nil {
		return nil, fmt.Errorf("friend request repository list by receiver: %w", err)
	}
	return requests, nil
}
