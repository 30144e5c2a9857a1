package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/internal/session"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log a user in",
		Long: `Log a user in with email and password.

The API token authorizes the login call. The access token returned by the CRM
is stored in the session database and used by user-scoped commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return constants.ErrEmailRequired
			}

			if password == "" {
				_, _ = fmt.Fprint(os.Stderr, "Password: ")

				passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				_, _ = fmt.Fprintln(os.Stderr)
				password = string(passwordBytes)
			}

			server, err := serverKey()
			if err != nil {
				return err
			}

			client, release, err := newAPIClient()
			if err != nil {
				return err
			}
			defer release()

			env, err := client.Users().Login(cmd.Context(), map[string]string{
				"email":    email,
				"password": password,
			})
			if err != nil {
				return err
			}

			if env == nil {
				if payload := client.LastError(); payload != nil {
					return fmt.Errorf("%w: %v", constants.ErrLoginFailed, payload)
				}

				return constants.ErrLoginFailed
			}

			if !client.HasNewToken() {
				return constants.ErrLoginNoToken
			}

			store, err := openSessionStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			err = store.Save(&session.Session{
				Server: server,
				Email:  email,
				Token:  client.UserToken(),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", server, email)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "user email")
	cmd.Flags().StringVar(&password, "password", "", "user password (prompted when omitted)")

	return cmd
}
