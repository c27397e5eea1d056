package fitnessify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, register, and inspect the current session",
}

var (
	authEmail    string
	authPassword string
	authUsername string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, false, func(ctx context.Context, a *appContext) error {
			user, err := a.session.Login(ctx, authEmail, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Username, user.Email)
			return nil
		})
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, false, func(ctx context.Context, a *appContext) error {
			user, err := a.session.Register(ctx, authUsername, authEmail, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s <%s>\n", user.Username, user.Email)
			return nil
		})
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *appContext) error {
			if err := a.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is logged in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *appContext) error {
			out := cmd.OutOrStdout()
			user := a.session.User()
			if user == nil {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			fmt.Fprintf(out, "Logged in as %s <%s> (id %d)\n", user.Username, user.Email, user.ID)
			if exp, ok := a.session.TokenExpiry(); ok {
				fmt.Fprintf(out, "Token expires %s (%s)\n", exp.Local().Format(time.RFC1123), humanizeUntil(time.Until(exp)))
			}
			return nil
		})
	},
}

// readPassword takes --password, or the first line of stdin when the flag
// is absent so passwords stay out of shell history.
func readPassword(cmd *cobra.Command) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func humanizeUntil(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	if d < time.Hour {
		return fmt.Sprintf("in %d min", int(d.Minutes()))
	}
	if d < 48*time.Hour {
		return fmt.Sprintf("in %d h", int(d.Hours()))
	}
	return fmt.Sprintf("in %d days", int(d.Hours()/24))
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authRegisterCmd, authLogoutCmd, authStatusCmd)

	for _, c := range []*cobra.Command{authLoginCmd, authRegisterCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password (read from stdin when omitted)")
		_ = c.MarkFlagRequired("email")
	}
	authRegisterCmd.Flags().StringVar(&authUsername, "username", "", "Display name (2-50 characters)")
	_ = authRegisterCmd.MarkFlagRequired("username")
}
