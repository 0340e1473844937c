package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	JWTSecret []byte
	TokenTTL  time.Duration

	BcryptCost int

	ResetTokenTTL  time.Duration
	VerifyTokenTTL time.Duration

	GoogleClientID string

	ResendAPIKey string
	MailFrom     string

	// BaseURL is the externally reachable origin used to build links in
	// verification and reset emails.
	BaseURL string
}

// Load reads configuration from the environment (a .env file is honored if
// present). It fails fast on missing secrets: the process must not start
// with an absent signing secret or database URL.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		TokenTTL:       24 * time.Hour,
		BcryptCost:     10,
		ResetTokenTTL:  time.Hour,
		VerifyTokenTTL: 24 * time.Hour,
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		MailFrom:       getEnv("MAIL_FROM", "ProjectHub <onboarding@resend.dev>"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("BCRYPT_COST must be an integer")
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
