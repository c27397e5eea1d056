package fitnessify

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoshuaKitai/Fitnessify/internal/api"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

var (
	dbPath     string
	apiURL     string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "fitnessify",
	Short:         "fitnessify tracks nutrition and strength progress from your terminal",
	Long:          "fitnessify is a terminal client for the Fitnessify backend: log food and lifts, manage macro goals, and review week-by-week history.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

// userMessage maps the error kinds to what the user sees. An expired
// session gets a pointer to login instead of the raw error.
func userMessage(err error) string {
	var ve *service.ValidationError
	switch {
	case api.IsAuthExpired(err):
		return "Session expired. Run `fitnessify auth login` to sign in again."
	case errors.Is(err, errNotLoggedIn):
		return "Not logged in. Run `fitnessify auth login` first."
	case errors.As(err, &ve):
		return "Invalid input: " + ve.Error()
	case api.IsTransient(err) && api.StatusOf(err) == 0:
		return "Backend unreachable, check --api-url or FITNESSIFY_API_URL: " + err.Error()
	case api.IsTransient(err):
		return fmt.Sprintf("Backend answered %d: %s", api.StatusOf(err), err.Error())
	default:
		return "Error: " + err.Error()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local SQLite database")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides FITNESSIFY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")
}
