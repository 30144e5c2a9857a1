package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// SubscriptionsClient implements remp.SubscriptionsClient.
type SubscriptionsClient struct {
	requester remp.Requester
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(requester remp.Requester) *SubscriptionsClient {
	return &SubscriptionsClient{
		requester: requester,
	}
}

// Create implements remp.SubscriptionsClient.Create.
func (c *SubscriptionsClient) Create(ctx context.Context, params interface{}) (remp.Envelope, error) {
	env, err := remp.ResultOrNull(c.requester.Post(ctx, constants.SubscriptionsPath+"create", params, nil))
	if err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	return env, nil
}
