package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	LogLevel  string
	HTTPAddr  string
	DBType    string
	DBDSN     string
	DataDir   string
	AuthType  string
	AuthToken string
	AuthUser  string
	AuthURL   string
	JWTSecret string
	// RecommendationBatch caps how many templates one request-new call assigns.
	RecommendationBatch int
}

// Load applies dotenv files (".env" when none are given) and then reads
// the environment. Missing files are ignored; variables already set in the
// process win over file values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment.
func FromEnv() (*Config, error) {
	batch, err := strconv.Atoi(getEnv("RECOMMENDATION_BATCH", "5"))
	if err != nil {
		return nil, fmt.Errorf("RECOMMENDATION_BATCH must be an integer: %w", err)
	}
	c := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8088"),
		DBType:              getEnv("STORAGE_BACKEND", "file"),
		DBDSN:               getEnv("POSTGRES_DSN", ""),
		DataDir:             getEnv("DATA_DIR", "data"),
		AuthType:            getEnv("AUTH_PROVIDER", "local"),
		AuthToken:           getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
		AuthUser:            getEnv("AUTH_USER_ID", "u1"),
		AuthURL:             getEnv("AUTH_SERVICE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		RecommendationBatch: batch,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "file":
		if c.DataDir == "" {
			return errors.New("File storage requires DATA_DIR to be set")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	switch c.AuthType {
	case "local":
		if c.AuthToken == "" {
			return errors.New("AUTH_TOKEN is required when AUTH_PROVIDER=local")
		}
		if c.Env == "production" {
			return errors.New("AUTH_PROVIDER=local is not allowed in production")
		}
	case "remote":
		if c.AuthURL == "" {
			return errors.New("AUTH_SERVICE_URL is required when AUTH_PROVIDER=remote")
		}
	case "jwt":
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters when AUTH_PROVIDER=jwt")
		}
	default:
		return errors.New("AUTH_PROVIDER must be one of: local, remote, jwt")
	}
	if c.RecommendationBatch < 1 {
		return errors.New("RECOMMENDATION_BATCH must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
