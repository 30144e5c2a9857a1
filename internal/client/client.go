package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/fivetwenty-io/remp-client/internal/http"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// Client implements the remp.Client interface.
type Client struct {
	httpClient *http.Client
	config     remp.Config

	mu        sync.RWMutex
	userToken string
	lastError interface{}

	// Resource clients
	user              remp.UserClient
	users             remp.UsersClient
	subscriptions     remp.SubscriptionsClient
	recurrentPayments remp.RecurrentPaymentsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *remp.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Verbose {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Referer != "" {
		httpOpts = append(httpOpts, http.WithReferer(config.Referer))
	}

	if config.Encoding != "" {
		httpOpts = append(httpOpts, http.WithEncoding(config.Encoding))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a CRM API client. The server URL is used exactly as given.
func New(config *remp.Config) (*Client, error) {
	if config == nil {
		return nil, remp.ErrConfigRequired
	}

	if config.Server == "" {
		return nil, remp.ErrServerRequired
	}

	if config.Token == "" {
		return nil, remp.ErrTokenRequired
	}

	if config.Encoding != "" && !config.Encoding.Valid() {
		return nil, fmt.Errorf("%w: %q", remp.ErrUnsupportedEncoding, config.Encoding)
	}

	return newClient(*config, createHTTPClientOptions(config)...), nil
}

func newClient(config remp.Config, httpOpts ...http.Option) *Client {
	client := &Client{
		httpClient: http.NewClient(config.Server, config.Token, httpOpts...),
		config:     config,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.user = NewUserClient(c)
	c.users = NewUsersClient(c)
	c.subscriptions = NewSubscriptionsClient(c)
	c.recurrentPayments = NewRecurrentPaymentsClient(c)
}

// Send implements remp.Requester.Send.
//
// Every completed request resets the rotation state and then records the
// token or error payload of its own envelope. A typed failure leaves the
// state untouched.
func (c *Client) Send(ctx context.Context, method, path string, params interface{}, headers map[string]string, opts ...remp.CallOption) (*remp.Result, error) {
	options := remp.NewCallOptions(opts...)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:       method,
		Path:         path,
		Params:       params,
		Headers:      headers,
		AcceptStatus: options.AcceptedStatus,
	})
	if err != nil {
		return nil, err
	}

	rotation := remp.RotationFrom(resp.Envelope)

	c.mu.Lock()
	c.userToken = rotation.Token
	c.lastError = rotation.Error
	c.mu.Unlock()

	return &remp.Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Envelope:   resp.Envelope,
		Rotation:   rotation,
	}, nil
}

// Get implements remp.Requester.Get.
func (c *Client) Get(ctx context.Context, path string, params interface{}, headers map[string]string, opts ...remp.CallOption) (*remp.Result, error) {
	return c.Send(ctx, "GET", path, params, headers, opts...)
}

// Post implements remp.Requester.Post.
func (c *Client) Post(ctx context.Context, path string, params interface{}, headers map[string]string, opts ...remp.CallOption) (*remp.Result, error) {
	return c.Send(ctx, "POST", path, params, headers, opts...)
}

// IsSuccess implements remp.Client.IsSuccess.
func (c *Client) IsSuccess(env remp.Envelope) bool {
	return remp.IsSuccess(env)
}

// HasNewToken implements remp.RotationState.HasNewToken.
func (c *Client) HasNewToken() bool {
	return c.UserToken() != ""
}

// UserToken implements remp.RotationState.UserToken.
func (c *Client) UserToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.userToken
}

// LastError implements remp.RotationState.LastError.
func (c *Client) LastError() interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastError
}

// DeriveWithRotatedToken implements remp.Client.DeriveWithRotatedToken.
func (c *Client) DeriveWithRotatedToken() (remp.Client, error) {
	token := c.UserToken()
	if token == "" {
		return nil, remp.ErrNoRotatedToken
	}

	return c.withToken(token), nil
}

// WithRotation implements remp.Client.WithRotation.
func (c *Client) WithRotation(rotation remp.Rotation) (remp.Client, error) {
	if !rotation.HasNewToken() {
		return nil, remp.ErrNoRotatedToken
	}

	return c.withToken(rotation.Token), nil
}

// withToken builds an independent client that shares everything but the
// credential, including the underlying transport.
func (c *Client) withToken(token string) *Client {
	config := c.config
	config.Token = token

	httpOpts := createHTTPClientOptions(&config)
	httpOpts = append(httpOpts, http.WithHTTPClient(c.httpClient.HTTPClient()))

	return newClient(config, httpOpts...)
}

// Config implements remp.Client.Config.
func (c *Client) Config() remp.Config {
	return c.config
}

// Resource client accessors

// User implements remp.Client.User.
func (c *Client) User() remp.UserClient {
	return c.user
}

// Users implements remp.Client.Users.
func (c *Client) Users() remp.UsersClient {
	return c.users
}

// Subscriptions implements remp.Client.Subscriptions.
func (c *Client) Subscriptions() remp.SubscriptionsClient {
	return c.subscriptions
}

// RecurrentPayments implements remp.Client.RecurrentPayments.
func (c *Client) RecurrentPayments() remp.RecurrentPaymentsClient {
	return c.recurrentPayments
}
