package commands_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/cmd/remp/commands"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func TestCommandGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		group       *cobra.Command
		use         string
		subcommands []string
	}{
		{commands.NewConfigCommand(), "config", []string{"show", "set", "unset"}},
		{commands.NewUserCommand(), "user", []string{"info", "delete"}},
		{
			commands.NewUsersCommand(), "users",
			[]string{"create", "update", "addresses", "address", "email", "add-to-group", "remove-from-group"},
		},
		{commands.NewSubscriptionsCommand(), "subscriptions", []string{"create"}},
		{commands.NewRecurrentPaymentsCommand(), "recurrent-payments", []string{"reactivate", "stop"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.use, tt.group.Use)
			assert.NotEmpty(t, tt.group.Short)
			assert.Len(t, tt.group.Commands(), len(tt.subcommands))

			for _, name := range tt.subcommands {
				sub := findSubcommand(tt.group, name)
				require.NotNil(t, sub, "subcommand %s should exist", name)
				assert.NotNil(t, sub.RunE)
			}
		})
	}
}

func TestEndpointCommandFlags(t *testing.T) {
	t.Parallel()

	create := findSubcommand(commands.NewUsersCommand(), "create")
	require.NotNil(t, create)

	param := create.Flags().Lookup("param")
	require.NotNil(t, param)
	assert.Equal(t, "p", param.Shorthand)
	assert.NotNil(t, create.Flags().Lookup("data"))

	info := findSubcommand(commands.NewUserCommand(), "info")
	require.NotNil(t, info)
	assert.Nil(t, info.Flags().Lookup("param"))

	deleteCmd := findSubcommand(commands.NewUserCommand(), "delete")
	require.NotNil(t, deleteCmd)

	force := deleteCmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "f", force.Shorthand)
	assert.Equal(t, "false", force.DefValue)
}

func TestLoginCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)

	email := cmd.Flags().Lookup("email")
	require.NotNil(t, email)
	assert.Equal(t, "e", email.Shorthand)
	assert.NotNil(t, cmd.Flags().Lookup("password"))
}
