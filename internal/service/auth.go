package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fintrack/backend/internal/db"
	"github.com/fintrack/backend/internal/model"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRefreshInvalid     = errors.New("refresh token invalid or expired")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepo interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

type RefreshTokenRepo interface {
	InsertRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	ReplaceUserRefreshTokens(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	RotateRefreshToken(ctx context.Context, oldToken string, userID int64, newToken string, expiresAt time.Time) error
}

// AuthService orchestrates signup, login, and refresh against the user
// store and the refresh-token ledger.
type AuthService struct {
	users     UserRepo
	ledger    RefreshTokenRepo
	tokens    *TokenService
	ledgerTTL time.Duration
}

// AuthResult bundles a freshly issued token pair with the sanitized user.
type AuthResult struct {
	Tokens model.AuthTokens
	User   model.UserPayload
}

func NewAuthService(users UserRepo, ledger RefreshTokenRepo, tokens *TokenService, ledgerTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		ledger:    ledger,
		tokens:    tokens,
		ledgerTTL: ledgerTTL,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, hash, displayName)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(payloadFor(user))
	if err != nil {
		return nil, err
	}
	if err := s.ledger.InsertRefreshToken(ctx, user.ID, tokens.RefreshToken, time.Now().Add(s.ledgerTTL)); err != nil {
		return nil, err
	}

	return &AuthResult{Tokens: tokens, User: sanitize(user)}, nil
}

// Login authenticates the credentials and invalidates every prior session:
// all existing ledger rows for the user are replaced by the new one.
// Unknown email and wrong password return the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.tokens.IssuePair(payloadFor(user))
	if err != nil {
		return nil, err
	}
	if err := s.ledger.ReplaceUserRefreshTokens(ctx, user.ID, tokens.RefreshToken, time.Now().Add(s.ledgerTTL)); err != nil {
		return nil, err
	}

	return &AuthResult{Tokens: tokens, User: sanitize(user)}, nil
}

// Refresh rotates a refresh token: the presented token must carry a valid
// refresh signature AND be present and unexpired in the ledger. The
// consumed row is deleted and replaced in one transaction, so replaying the
// same token fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if _, err := s.tokens.Verify(RefreshToken, refreshToken); err != nil {
		return nil, ErrRefreshInvalid
	}

	record, err := s.ledger.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrRefreshInvalid
	}

	user, err := s.users.GetUserByID(ctx, record.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(payloadFor(user))
	if err != nil {
		return nil, err
	}
	if err := s.ledger.RotateRefreshToken(ctx, refreshToken, user.ID, tokens.RefreshToken, time.Now().Add(s.ledgerTTL)); err != nil {
		// A concurrent refresh consumed the row between lookup and
		// rotation; the loser gets the same answer as any replay.
		if errors.Is(err, db.ErrTokenConsumed) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	return &AuthResult{Tokens: tokens, User: sanitize(user)}, nil
}

// VerifyAccess validates an access token and returns the identity the
// middleware attaches to the request.
func (s *AuthService) VerifyAccess(tokenStr string) (*model.AuthUser, error) {
	payload, err := s.tokens.Verify(AccessToken, tokenStr)
	if err != nil {
		return nil, err
	}
	return &model.AuthUser{ID: payload.ID, Email: payload.Email}, nil
}

func payloadFor(user *model.User) model.TokenPayload {
	return model.TokenPayload{ID: user.ID, Email: user.Email, Name: user.Name}
}

func sanitize(user *model.User) model.UserPayload {
	return model.UserPayload{ID: user.ID, Email: user.Email, Name: user.Name}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
