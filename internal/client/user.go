package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// UserClient implements remp.UserClient. It must be built on a client
// authenticated with a user token.
type UserClient struct {
	requester remp.Requester
}

// NewUserClient creates a new user client.
func NewUserClient(requester remp.Requester) *UserClient {
	return &UserClient{
		requester: requester,
	}
}

// Info implements remp.UserClient.Info.
func (c *UserClient) Info(ctx context.Context) (remp.Envelope, error) {
	env, err := remp.ResultOrNull(c.requester.Get(ctx, constants.UserPath+"info", nil, nil))
	if err != nil {
		return nil, fmt.Errorf("getting user info: %w", err)
	}

	return env, nil
}

// Delete implements remp.UserClient.Delete. The CRM answers a completed
// deletion with 203, which is accepted as success alongside an ok envelope.
func (c *UserClient) Delete(ctx context.Context) (bool, error) {
	result, err := c.requester.Get(ctx, constants.UserPath+"delete", nil, nil,
		remp.WithAcceptedStatus(constants.HTTPStatusUserDeleted))
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}

	if result.StatusCode == constants.HTTPStatusUserDeleted {
		return true, nil
	}

	return result.IsSuccess(), nil
}
