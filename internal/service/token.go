package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/model"
)

type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

var (
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
	ErrMisconfigured = errors.New("auth config invalid")
)

// TokenService issues and verifies the two token kinds. Each kind is signed
// with its own secret, so an access token can never pass refresh
// verification and vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type tokenClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("%w: JWT_ACCESS_SECRET is required", ErrMisconfigured)
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%w: JWT_REFRESH_SECRET is required", ErrMisconfigured)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("%w: token TTLs must be positive", ErrMisconfigured)
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}, nil
}

// Issue signs a token of the given kind carrying the payload claims.
func (s *TokenService) Issue(kind TokenKind, payload model.TokenPayload) (string, error) {
	secret, ttl := s.kindParams(kind)
	now := time.Now()
	claims := tokenClaims{
		UserID: payload.ID,
		Email:  payload.Email,
		Name:   payload.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(payload.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// IssuePair mints an access/refresh pair for the payload.
func (s *TokenService) IssuePair(payload model.TokenPayload) (model.AuthTokens, error) {
	accessToken, err := s.Issue(AccessToken, payload)
	if err != nil {
		return model.AuthTokens{}, err
	}
	refreshToken, err := s.Issue(RefreshToken, payload)
	if err != nil {
		return model.AuthTokens{}, err
	}
	return model.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Verify validates signature and expiry for the given kind and returns the
// embedded payload. Expiry and every other failure are distinct errors so
// the boundary can tell them apart.
func (s *TokenService) Verify(kind TokenKind, tokenStr string) (model.TokenPayload, error) {
	secret, _ := s.kindParams(kind)
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenPayload{}, ErrTokenExpired
		}
		return model.TokenPayload{}, ErrTokenInvalid
	}
	if !token.Valid {
		return model.TokenPayload{}, ErrTokenInvalid
	}

	return model.TokenPayload{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

func (s *TokenService) kindParams(kind TokenKind) ([]byte, time.Duration) {
	if kind == RefreshToken {
		return s.refreshSecret, s.refreshTTL
	}
	return s.accessSecret, s.accessTTL
}
