package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/JoshuaKitai/Fitnessify/internal/app"
)

const (
	DefaultAPIURL  = "http://localhost:5000"
	DefaultTimeout = 12 * time.Second
)

// Config is the effective client configuration. Precedence, lowest first:
// built-in defaults, the YAML file, the environment (including .env).
type Config struct {
	APIURL     string        `yaml:"api_url"`
	Env        string        `yaml:"env"`
	LogLevel   string        `yaml:"log_level"`
	Timeout    time.Duration `yaml:"timeout"`
	DBPath     string        `yaml:"db_path"`
	ConfigPath string        `yaml:"-"`
}

func Defaults() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Env:      "development",
		LogLevel: "warn",
		Timeout:  DefaultTimeout,
	}
}

// Load reads .env from the working directory when present, then the YAML
// file at path (or FITNESSIFY_CONFIG, or the default location), then the
// environment. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	path = firstNonEmpty(path, os.Getenv("FITNESSIFY_CONFIG"))
	if path == "" {
		if p, err := app.DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigPath = path
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.APIURL = firstNonEmpty(file.APIURL, c.APIURL)
	c.Env = firstNonEmpty(file.Env, c.Env)
	c.LogLevel = firstNonEmpty(file.LogLevel, c.LogLevel)
	c.DBPath = firstNonEmpty(file.DBPath, c.DBPath)
	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.APIURL = firstNonEmpty(os.Getenv("FITNESSIFY_API_URL"), c.APIURL)
	c.Env = firstNonEmpty(os.Getenv("FITNESSIFY_ENV"), c.Env)
	c.LogLevel = firstNonEmpty(os.Getenv("FITNESSIFY_LOG_LEVEL"), c.LogLevel)
	c.DBPath = firstNonEmpty(os.Getenv("FITNESSIFY_DB"), c.DBPath)
	if raw := strings.TrimSpace(os.Getenv("FITNESSIFY_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid FITNESSIFY_TIMEOUT %q: %w", raw, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	switch c.Env {
	case "development", "production":
	default:
		return errors.New("env must be one of: development, production")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log_level must be one of: debug, info, warn, error")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
