package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fintrack/backend/internal/model"
)

func (db *Postgres) CreateUser(ctx context.Context, email, passwordHash, name string) (*model.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, email, password_hash, name, created_at
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, email, passwordHash, name).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, name, created_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, name, created_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func IsNoRows(err error) bool {
	return err == pgx.ErrNoRows
}
