package db

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/model"
)

// ErrTokenConsumed is returned by RotateRefreshToken when the row to
// consume is already gone, which happens when two rotations race on the
// same token. The loser must not mint a new pair.
var ErrTokenConsumed = errors.New("refresh token already consumed")

func (db *Postgres) InsertRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := db.Pool.Exec(ctx, query, userID, token, expiresAt)
	return err
}

func (db *Postgres) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`
	var record model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, token).Scan(
		&record.ID,
		&record.UserID,
		&record.Token,
		&record.ExpiresAt,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ReplaceUserRefreshTokens drops every ledger row for the user and inserts a
// fresh one in a single transaction. Login uses this to force a single
// active session lineage.
func (db *Postgres) ReplaceUserRefreshTokens(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`, userID, token, expiresAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RotateRefreshToken consumes the old ledger row and inserts its
// replacement atomically, so a consumed token can never be replayed.
func (db *Postgres) RotateRefreshToken(ctx context.Context, oldToken string, userID int64, newToken string, expiresAt time.Time) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, oldToken)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTokenConsumed
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`, userID, newToken, expiresAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
