package fitnessify

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoshuaKitai/Fitnessify/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect fitnessify configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		source := cfg.ConfigPath
		if source == "" {
			source = "(none)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "api_url\t%s\n", cfg.APIURL)
		fmt.Fprintf(out, "env\t%s\n", cfg.Env)
		fmt.Fprintf(out, "log_level\t%s\n", cfg.LogLevel)
		fmt.Fprintf(out, "timeout\t%s\n", cfg.Timeout)
		fmt.Fprintf(out, "db_path\t%s\n", path)
		fmt.Fprintf(out, "config_file\t%s\n", source)
		return nil
	},
}

var configClearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop cached nutrition lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return withDB(cfg, func(sqldb *sql.DB) error {
			n, err := store.NewLookupCache(sqldb, 0).Purge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached lookup(s)\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configClearCacheCmd)
}
