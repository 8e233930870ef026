package friendship

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

// NewRepository creates new friendship repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, key PairKey) (*Friendship, error) {
	query := `
		SELECT user_id_low, user_id_high, chat_id, blocked_by_low, blocked_by_high, created_at
		FROM friendships
		WHERE user_id_low = $1 AND user_id_high = $2
	`
	var f Friendship
	err := r.db.GetContext(ctx, &f, query, key.UserIDLow, key.UserIDHigh)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("friendship repository get: %w", err)
	}
	return &f, nil
}

func (r *repository) Exists(ctx context.Context, key PairKey) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id_low = $1 AND user_id_high = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, key.UserIDLow, key.UserIDHigh)
	if err != nil {
		return false, fmt.Errorf("friendship repository exists: %w", err)
	}
	return exists, nil
}

func (r *repository) Save(ctx context.Context, f *Friendship) (*Friendship, error) {
	query := `
		INSERT INTO friendships (user_id_low, user_id_high, chat_id, blocked_by_low, blocked_by_high)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		f.UserIDLow,
		f.UserIDHigh,
		f.ChatID,
		f.BlockedByLow,
		f.BlockedByHigh,
	).Scan(&f.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateUniqueViolation {
			// Two constraints can fire: the pair primary key and the chat
			// uniqueness. Tell them apart so the saga can report correctly.
			if pqErr.Constraint == "friendships_chat_id_key" {
				return nil, ErrChatInUse
			}
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("friendship repository save: %w", err)
	}
	return f, nil
}

func (r *repository) Delete(ctx context.Context, key PairKey) (bool, error) {
	query := `DELETE FROM friendships WHERE user_id_low = $1 AND user_id_high = $2`
	res, err := r.db.ExecContext(ctx, query, key.UserIDLow, key.UserIDHigh)
	if err != nil {
		return false, fmt.Errorf("friendship repository delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("friendship repository delete: %w", err)
	}
	return rows > 0, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int64) ([]*Friendship, error) {
	query := `
		SELECT user_id_low, user_id_high, chat_id, blocked_by_low, blocked_by_high, created_at
		FROM friendships
		WHERE user_id_low = $1 OR user_id_high = $1
		ORDER BY created_at DESC
	`
	var friendships []*Friendship
	err := r.db.SelectContext(ctx, &friendships, query, userID)
	if err != nil {
		return nil, fmt.Errorf("friendship repository list: %w", err)
	}
	return friendships, nil
}

func (r *repository) UpdateBlockFlags(ctx context.Context, f *Friendship) error {
	query := `
		UPDATE friendships
		SET blocked_by_low = $3, blocked_by_high = $4
		WHERE user_id_low = $1 AND user_id_high = $2
	`
	res, err := r.db.ExecContext(ctx, query, f.UserIDLow, f.UserIDHigh, f.BlockedByLow, f.BlockedByHigh)
	if err != nil {
		return fmt.Errorf("friendship repository update block flags: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("friendship repository update block flags: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
