package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/questrade-go/questrade-api/auth"
	"github.com/sirupsen/logrus"
)

// Config holds everything a run needs. It is built once and passed explicitly.
type Config struct {
	Token    auth.Token
	Proxy    string
	Timeout  time.Duration
	LogLevel logrus.Level
	Symbol   string
	SymbolID int64
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		logrus.WithError(err).Warn("Error loading .env file, relying on environment variables")
	}

	cfg := Config{
		Token: auth.Token{
			AccessToken:  os.Getenv("QUESTRADE_ACCESS_TOKEN"),
			APIServer:    os.Getenv("QUESTRADE_API_SERVER"),
			RefreshToken: os.Getenv("QUESTRADE_REFRESH_TOKEN"),
			TokenType:    getEnv("QUESTRADE_TOKEN_TYPE", "Bearer"),
		},
		Proxy:    os.Getenv("QUESTRADE_PROXY"),
		LogLevel: logrus.InfoLevel,
	}
	if cfg.Token.AccessToken == "" {
		return cfg, errors.New("QUESTRADE_ACCESS_TOKEN is missing")
	}
	if cfg.Token.APIServer == "" {
		return cfg, errors.New("QUESTRADE_API_SERVER is missing")
	}

	expiresIn, err := strconv.ParseInt(getEnv("QUESTRADE_EXPIRES_IN", "1800"), 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("QUESTRADE_EXPIRES_IN: %w", err)
	}
	cfg.Token.ExpiresIn = expiresIn

	if v := os.Getenv("QUESTRADE_TIMEOUT"); v != "" {
		if cfg.Timeout, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("QUESTRADE_TIMEOUT: %w", err)
		}
	}
	if v := os.Getenv("QUESTRADE_LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = logrus.ParseLevel(v); err != nil {
			return cfg, fmt.Errorf("QUESTRADE_LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
