package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log the user out",
		Long:  "Invalidate the stored user token on the CRM and remove the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := newSessionClient()
			if err != nil {
				return err
			}
			defer release()

			ok, err := client.Users().Logout(cmd.Context())
			if err != nil {
				return err
			}

			// The local session is useless once the CRM refuses the token.
			err = forgetSession()
			if err != nil {
				return err
			}

			if !ok {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "The CRM did not confirm the logout; local session removed")
			}

			return outputOutcome(cmd, "logout", ok)
		},
	}
}

func forgetSession() error {
	server, err := serverKey()
	if err != nil {
		return err
	}

	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.Delete(server)
}
