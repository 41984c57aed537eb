package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Postgres PostgresConfig
	Auth     AuthConfig
	AI       AIConfig
	CORS     CORSConfig
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	LedgerTTL     time.Duration
}

type AIConfig struct {
	APIKey string
	Model  string
}

type CORSConfig struct {
	AllowedOrigin string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	return Config{
		Port: getenv("PORT", "3000"),
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
			RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			AccessTTL:     getenvDuration("JWT_ACCESS_TTL", 24*time.Hour),
			RefreshTTL:    getenvDuration("JWT_REFRESH_TTL", 30*24*time.Hour),
			LedgerTTL:     getenvDuration("REFRESH_LEDGER_TTL", 7*24*time.Hour),
		},
		AI: AIConfig{
			APIKey: os.Getenv("AI_API_KEY"),
			Model:  getenv("AI_MODEL", "gemini-2.0-flash"),
		},
		CORS: CORSConfig{
			AllowedOrigin: os.Getenv("CORS_ORIGIN"),
		},
	}
}

// Validate reports every missing required variable at once so a bad deploy
// fails with a single actionable message.
func (c Config) Validate() error {
	var missing []string

	if c.Postgres.DatabaseURL == "" && (c.Postgres.User == "" || c.Postgres.Database == "") {
		missing = append(missing, "DATABASE_URL (or PGUSER/PGDATABASE)")
	}
	if c.Auth.AccessSecret == "" {
		missing = append(missing, "JWT_ACCESS_SECRET")
	}
	if c.Auth.RefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if c.AI.APIKey == "" {
		missing = append(missing, "AI_API_KEY")
	}
	if c.CORS.AllowedOrigin == "" {
		missing = append(missing, "CORS_ORIGIN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %s", key, val, fallback)
		return fallback
	}
	return d
}
