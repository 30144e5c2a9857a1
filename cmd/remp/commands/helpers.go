package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// EnvelopeCall performs an endpoint operation that returns an envelope.
type EnvelopeCall func(ctx context.Context, client remp.Client, params interface{}) (remp.Envelope, error)

// BooleanCall performs an endpoint operation that only reports success.
type BooleanCall func(ctx context.Context, client remp.Client, params interface{}) (bool, error)

// EndpointConfig describes a command bound to one endpoint operation.
type EndpointConfig struct {
	Use   string
	Short string
	Long  string
	// UserToken selects the stored session token instead of the API token.
	UserToken bool
	// NoParams hides --param and --data for operations without a body.
	NoParams bool
}

func newEndpointClient(config EndpointConfig) (remp.Client, closer, error) {
	if config.UserToken {
		return newSessionClient()
	}

	return newAPIClient()
}

// createEnvelopeCommand builds a command that prints the returned envelope.
func createEnvelopeCommand(config EndpointConfig, call EnvelopeCall) *cobra.Command {
	var flags paramFlags

	cmd := &cobra.Command{
		Use:   config.Use,
		Short: config.Short,
		Long:  config.Long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.build()
			if err != nil {
				return err
			}

			client, release, err := newEndpointClient(config)
			if err != nil {
				return err
			}
			defer release()

			env, err := call(cmd.Context(), client, params)
			if err != nil {
				return err
			}

			if config.UserToken {
				err = rememberRotatedToken(client)
				if err != nil {
					return err
				}
			}

			if env == nil {
				return refused(client)
			}

			return outputEnvelope(cmd, env)
		},
	}

	if !config.NoParams {
		addParamFlags(cmd, &flags)
	}

	return cmd
}

// createBooleanCommand builds a command that prints whether the call succeeded.
func createBooleanCommand(config EndpointConfig, call BooleanCall) *cobra.Command {
	var flags paramFlags

	cmd := &cobra.Command{
		Use:   config.Use,
		Short: config.Short,
		Long:  config.Long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.build()
			if err != nil {
				return err
			}

			client, release, err := newEndpointClient(config)
			if err != nil {
				return err
			}
			defer release()

			ok, err := call(cmd.Context(), client, params)
			if err != nil {
				return err
			}

			if config.UserToken {
				err = rememberRotatedToken(client)
				if err != nil {
					return err
				}
			}

			if !ok {
				return refused(client)
			}

			return outputOutcome(cmd, cmd.Name(), true)
		},
	}

	if !config.NoParams {
		addParamFlags(cmd, &flags)
	}

	return cmd
}
