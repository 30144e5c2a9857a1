package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// NewRecurrentPaymentsCommand creates the recurrent-payments command group.
func NewRecurrentPaymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recurrent-payments",
		Aliases: []string{"recurrent-payment", "rp"},
		Short:   "Manage recurrent payments",
		Long:    "Stop and reactivate recurrent payments of the logged in user",
	}

	cmd.AddCommand(createEnvelopeCommand(EndpointConfig{
		Use:       "reactivate",
		Short:     "Reactivate a recurrent payment",
		Long:      "Reactivate a stopped recurrent payment, e.g. --param id=1234",
		UserToken: true,
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.RecurrentPayments().Reactivate(ctx, params)
	}))

	cmd.AddCommand(createEnvelopeCommand(EndpointConfig{
		Use:       "stop",
		Short:     "Stop a recurrent payment",
		Long:      "Stop charging a recurrent payment, e.g. --param id=1234",
		UserToken: true,
	}, func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error) {
		return client.RecurrentPayments().Stop(ctx, params)
	}))

	return cmd
}
