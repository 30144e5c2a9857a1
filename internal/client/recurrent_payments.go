package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// RecurrentPaymentsClient implements remp.RecurrentPaymentsClient. Both
// operations act on the payments of the user owning the token.
type RecurrentPaymentsClient struct {
	requester remp.Requester
}

// NewRecurrentPaymentsClient creates a new recurrent payments client.
func NewRecurrentPaymentsClient(requester remp.Requester) *RecurrentPaymentsClient {
	return &RecurrentPaymentsClient{
		requester: requester,
	}
}

// Reactivate implements remp.RecurrentPaymentsClient.Reactivate.
func (c *RecurrentPaymentsClient) Reactivate(ctx context.Context, params interface{}) (remp.Envelope, error) {
	env, err := remp.ResultOrNull(c.requester.Post(ctx, constants.RecurrentPaymentPath+"reactivate", params, nil))
	if err != nil {
		return nil, fmt.Errorf("reactivating recurrent payment: %w", err)
	}

	return env, nil
}

// Stop implements remp.RecurrentPaymentsClient.Stop.
func (c *RecurrentPaymentsClient) Stop(ctx context.Context, params interface{}) (remp.Envelope, error) {
	env, err := remp.ResultOrNull(c.requester.Post(ctx, constants.RecurrentPaymentPath+"stop", params, nil))
	if err != nil {
		return nil, fmt.Errorf("stopping recurrent payment: %w", err)
	}

	return env, nil
}
