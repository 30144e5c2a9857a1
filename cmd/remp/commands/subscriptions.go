package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "subs"},
		Short:   "Manage subscriptions",
		Long:    "Create subscriptions using the API token",
	}

	cmd.AddCommand(createEnvelopeCommand(EndpointConfig{
		Use:   "create",
		Short: "Create a subscription",
		Long: `Create a subscription for a user, e.g.
  --param email=reader@example.com --param subscription_type_code=web_month`,
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.Subscriptions().Create(ctx, params)
	}))

	return cmd
}
