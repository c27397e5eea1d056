package fitnessify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JoshuaKitai/Fitnessify/internal/api"
	"github.com/JoshuaKitai/Fitnessify/internal/app"
	"github.com/JoshuaKitai/Fitnessify/internal/config"
	"github.com/JoshuaKitai/Fitnessify/internal/db"
	"github.com/JoshuaKitai/Fitnessify/internal/logger"
	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
	"github.com/JoshuaKitai/Fitnessify/internal/session"
	"github.com/JoshuaKitai/Fitnessify/internal/store"
)

var errNotLoggedIn = errors.New("not logged in")

// appContext is everything a command needs for one invocation.
type appContext struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *api.Client
	session *session.Store
	tracker *service.Tracker
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --api-url: %w", err)
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func resolveDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func withDB(cfg *config.Config, run func(*sql.DB) error) error {
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// withApp wires config, logging, storage, the backend client and the
// session for one command. When requireAuth is set the command only runs
// with a verified token.
func withApp(cmd *cobra.Command, requireAuth bool, run func(context.Context, *appContext) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	return withDB(cfg, func(sqldb *sql.DB) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		tokens := store.NewConfig(sqldb)
		cache := store.NewLookupCache(sqldb, store.DefaultLookupTTL)
		client := &api.Client{
			BaseURL:    cfg.APIURL,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
			Logger:     log,
		}
		sess := session.New(client, tokens, log)
		client.Credentials = sess
		sess.OnLogout(func() {
			log.Info("session cleared after 401")
		})

		if err := sess.Init(ctx); err != nil {
			return err
		}
		if requireAuth && !sess.Authenticated() {
			return errNotLoggedIn
		}
		return run(ctx, &appContext{
			cfg:     cfg,
			log:     log,
			client:  client,
			session: sess,
			tracker: service.NewTracker(client, cache, log),
		})
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseDayArg(name, value string) (time.Time, error) {
	d, err := model.ParseDay(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", name, value)
	}
	return d, nil
}

func formatOptional(v *float64, unit string) string {
	if v == nil {
		return "not set"
	}
	return fmt.Sprintf("%.1f %s", *v, unit)
}
