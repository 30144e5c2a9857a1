package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// UsersClient implements remp.UsersClient. Apart from Logout every
// operation requires a client authenticated with the API token.
type UsersClient struct {
	requester remp.Requester
}

// NewUsersClient creates a new users client.
func NewUsersClient(requester remp.Requester) *UsersClient {
	return &UsersClient{
		requester: requester,
	}
}

// Login implements remp.UsersClient.Login. A successful envelope carries the
// user token under access.token.
func (c *UsersClient) Login(ctx context.Context, params interface{}) (remp.Envelope, error) {
	return c.postNull(ctx, "login", params)
}

// Create implements remp.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, params interface{}) (remp.Envelope, error) {
	return c.postNull(ctx, "create", params)
}

// Update implements remp.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, params interface{}) (remp.Envelope, error) {
	return c.postNull(ctx, "update", params)
}

// Addresses implements remp.UsersClient.Addresses.
func (c *UsersClient) Addresses(ctx context.Context, params interface{}) (remp.Envelope, error) {
	env, err := remp.ResultOrNull(c.requester.Get(ctx, constants.UsersPath+"addresses", params, nil))
	if err != nil {
		return nil, fmt.Errorf("users addresses: %w", err)
	}

	return env, nil
}

// Address implements remp.UsersClient.Address.
func (c *UsersClient) Address(ctx context.Context, params interface{}) (remp.Envelope, error) {
	return c.postNull(ctx, "address", params)
}

// Email implements remp.UsersClient.Email.
func (c *UsersClient) Email(ctx context.Context, params interface{}) (remp.Envelope, error) {
	return c.postNull(ctx, "email", params)
}

// Logout implements remp.UsersClient.Logout.
func (c *UsersClient) Logout(ctx context.Context) (bool, error) {
	return c.postBoolean(ctx, "logout", nil)
}

// AddToGroup implements remp.UsersClient.AddToGroup.
func (c *UsersClient) AddToGroup(ctx context.Context, params interface{}) (bool, error) {
	return c.postBoolean(ctx, "add-to-group", params)
}

// RemoveFromGroup implements remp.UsersClient.RemoveFromGroup.
func (c *UsersClient) RemoveFromGroup(ctx context.Context, params interface{}) (bool, error) {
	return c.postBoolean(ctx, "remove-from-group", params)
}

func (c *UsersClient) postNull(ctx context.Context, operation string, params interface{}) (remp.Envelope, error) {
	env, err := remp.ResultOrNull(c.requester.Post(ctx, constants.UsersPath+operation, params, nil))
	if err != nil {
		return nil, fmt.Errorf("users %s: %w", operation, err)
	}

	return env, nil
}

func (c *UsersClient) postBoolean(ctx context.Context, operation string, params interface{}) (bool, error) {
	ok, err := remp.ResultOrBoolean(c.requester.Post(ctx, constants.UsersPath+operation, params, nil))
	if err != nil {
		return false, fmt.Errorf("users %s: %w", operation, err)
	}

	return ok, nil
}
