package model

import "time"

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserPayload `json:"user"`
}

// UserPayload is the sanitized user shape returned to clients. The password
// hash never leaves the service layer.
type UserPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenPayload holds the claims embedded in every signed token. Derived per
// issuance, never persisted.
type TokenPayload struct {
	ID    int64
	Email string
	Name  string
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

// AuthUser is what the auth middleware attaches to the request context.
// Name is deliberately blank: it is not trusted from token claims.
type AuthUser struct {
	ID    int64
	Email string
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
