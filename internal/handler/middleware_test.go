package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

func newTestAuth(t *testing.T) (*service.AuthService, *service.TokenService) {
	t.Helper()
	tokens, err := service.NewTokenService(config.AuthConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)
	return service.NewAuthService(nil, nil, tokens, time.Hour), tokens
}

func protectedRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authService, tokens := newTestAuth(t)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(authService), func(c *gin.Context) {
		user := GetAuthUser(c)
		require.NotNil(t, user)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
	})
	return router, tokens
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "no token provided")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	router, tokens := protectedRouter(t)

	refreshToken, err := tokens.Issue(service.RefreshToken, model.TokenPayload{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, tokens := protectedRouter(t)

	accessToken, err := tokens.Issue(service.AccessToken, model.TokenPayload{ID: 7, Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ann@example.com")
}

func TestCORSMiddlewareAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware("http://localhost:5173"))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(w, req)

	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	router.ServeHTTP(w, req)

	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware("http://localhost:5173"))
	// Only GET is registered, so a preflight that falls through the
	// middleware would end up as a 404.
	router.GET("/api/transactions", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/transactions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
