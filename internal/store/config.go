package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const keyAuthToken = "auth_token"

// Config is a small key/value table. It also backs the durable auth token.
type Config struct {
	db *sql.DB
}

func NewConfig(db *sql.DB) *Config {
	return &Config{db: db}
}

func (c *Config) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := c.db.ExecContext(ctx, `
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func (c *Config) Get(ctx context.Context, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func (c *Config) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if _, err := c.db.ExecContext(ctx, `DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete config %q: %w", key, err)
	}
	return nil
}

func (c *Config) LoadToken(ctx context.Context) (string, error) {
	token, _, err := c.Get(ctx, keyAuthToken)
	return token, err
}

func (c *Config) SaveToken(ctx context.Context, token string) error {
	return c.Set(ctx, keyAuthToken, token)
}

func (c *Config) ClearToken(ctx context.Context) error {
	return c.Delete(ctx, keyAuthToken)
}
