package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string `env:"DATABASE_URL,required,notEmpty"`
	ServerPort     int    `env:"PORT" envDefault:"5000"`
	RabbitURL      string `env:"RABBITMQ_URL"`
	SessionSecret  string `env:"SESSION_SECRET"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
}

// Load reads an optional .env file and then the process environment.
// A missing DATABASE_URL is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DatabaseURL) == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// SessionKey returns the configured cookie signing key, or a fresh random
// key when none is set.
func (c *Config) SessionKey() ([]byte, error) {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	return key, nil
}
