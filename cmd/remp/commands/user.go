package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// NewUserCommand creates the user command group for the logged in user.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect the logged in user",
		Long:  "Show or delete the account of the user logged in with 'remp login'",
	}

	cmd.AddCommand(newUserInfoCommand())
	cmd.AddCommand(newUserDeleteCommand())

	return cmd
}

func newUserInfoCommand() *cobra.Command {
	return createEnvelopeCommand(EndpointConfig{
		Use:       "info",
		Short:     "Show user details",
		Long:      "Display the profile of the logged in user",
		UserToken: true,
		NoParams:  true,
	}, func(ctx context.Context, client remp.Client, _ interface{}) (remp.Envelope, error) {
		return client.User().Info(ctx)
	})
}

func newUserDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the user account",
		Long:  "Delete the account of the logged in user and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Really delete the user account? (y/N): ")

				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))

				if answer != "y" && answer != "yes" {
					return constants.ErrAborted
				}
			}

			client, release, err := newSessionClient()
			if err != nil {
				return err
			}
			defer release()

			deleted, err := client.User().Delete(cmd.Context())
			if err != nil {
				return err
			}

			if !deleted {
				return refused(client)
			}

			err = forgetSession()
			if err != nil {
				return err
			}

			return outputOutcome(cmd, "delete", true)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}
