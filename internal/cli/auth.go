package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the login session",
}

var (
	loginClientID    string
	loginRedirectURI string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in via the browser authorization flow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := loginClientID
		if clientID == "" {
			clientID = appCtx.Config.ClientID
		}
		redirect := loginRedirectURI
		if redirect == "" {
			redirect = appCtx.Config.RedirectURI
		}
		status, err := appCtx.Auth.Login(cmd.Context(), auth.LoginOptions{
			ClientID:    clientID,
			RedirectURI: redirect,
		})
		if err != nil {
			return err
		}
		return emit(status, func() string {
			return onStyle.Render("logged in") + dimStyle.Render(" as client "+status.ClientID)
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := appCtx.Auth.Status()
		if err != nil {
			return err
		}
		return emit(status, func() string {
			line := status.State.String()
			if status.UserName != "" {
				line += dimStyle.Render(" as " + status.UserName)
			}
			return line
		})
	},
}

var authScopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "Reconcile required scopes against what the token carries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := appCtx.Auth.Scopes()
		if err != nil {
			return err
		}
		return emit(report, func() string {
			var b strings.Builder
			b.WriteString(headStyle.Render("required") + "\n")
			for _, s := range report.Required {
				b.WriteString("  " + s + "\n")
			}
			if !report.GrantedKnown {
				b.WriteString(dimStyle.Render("granted scopes unknown, log in again to record them"))
				return b.String()
			}
			if len(report.Missing) == 0 {
				b.WriteString(onStyle.Render("all required scopes granted"))
				return b.String()
			}
			b.WriteString(offStyle.Render("missing") + "\n")
			for _, s := range report.Missing {
				b.WriteString("  " + s + "\n")
			}
			return b.String()
		})
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token, keeping client identity and settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCtx.Auth.Logout(); err != nil {
			return err
		}
		return emit(map[string]string{"state": "logged out"}, func() string {
			return "logged out"
		})
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&loginClientID, "client-id", "", "OAuth client id (falls back to config, env, then the last used id)")
	authLoginCmd.Flags().StringVar(&loginRedirectURI, "redirect-uri", "", "loopback redirect URI registered with the client")
	authCmd.AddCommand(authLoginCmd, authStatusCmd, authScopesCmd, authLogoutCmd)
}
