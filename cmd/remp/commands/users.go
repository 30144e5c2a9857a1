package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage CRM users",
		Long:  "Create and update users, manage their addresses and groups using the API token",
	}

	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())
	cmd.AddCommand(newUsersAddressesCommand())
	cmd.AddCommand(newUsersAddressCommand())
	cmd.AddCommand(newUsersEmailCommand())
	cmd.AddCommand(newUsersAddToGroupCommand())
	cmd.AddCommand(newUsersRemoveFromGroupCommand())

	return cmd
}

func newUsersCreateCommand() *cobra.Command {
	return createEnvelopeCommand(EndpointConfig{
		Use:   "create",
		Short: "Create a user",
		Long:  "Register a new user, e.g. --param email=reader@example.com",
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.Users().Create(ctx, params)
	})
}

func newUsersUpdateCommand() *cobra.Command {
	return createEnvelopeCommand(EndpointConfig{
		Use:   "update",
		Short: "Update a user",
		Long:  "Update user attributes, e.g. --param user_id=42 --param email=new@example.com",
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.Users().Update(ctx, params)
	})
}

func newUsersAddressesCommand() *cobra.Command {
	return createEnvelopeCommand(EndpointConfig{
		Use:   "addresses",
		Short: "List user addresses",
		Long:  "List the addresses of a user, e.g. --param email=reader@example.com --param type=print",
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.Users().Addresses(ctx, params)
	})
}

func newUsersAddressCommand() *cobra.Command {
	return createEnvelopeCommand(EndpointConfig{
		Use:   "address",
		Short: "Create or update a user address",
		Long:  "Store an address for a user, e.g. --param email=reader@example.com --param type=print",
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.Users().Address(ctx, params)
	})
}

func newUsersEmailCommand() *cobra.Command {
	return createEnvelopeCommand(EndpointConfig{
		Use:   "email",
		Short: "Check an email address",
		Long:  "Check whether an email address belongs to a user, e.g. --param email=reader@example.com",
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.Users().Email(ctx, params)
	})
}

func newUsersAddToGroupCommand() *cobra.Command {
	return createBooleanCommand(EndpointConfig{
		Use:   "add-to-group",
		Short: "Add a user to a group",
		Long:  "Add a user to a group, e.g. --param email=reader@example.com --param group_id=3",
	}, func(ctx context.Context, client remp.Client, params interface{}) (bool, error) {
		return client.Users().AddToGroup(ctx, params)
	})
}

func newUsersRemoveFromGroupCommand() *cobra.Command {
	return createBooleanCommand(EndpointConfig{
		Use:   "remove-from-group",
		Short: "Remove a user from a group",
		Long:  "Remove a user from a group, e.g. --param email=reader@example.com --param group_id=3",
	}, func(ctx context.Context, client remp.Client, params interface{}) (bool, error) {
		return client.Users().RemoveFromGroup(ctx, params)
	})
}
