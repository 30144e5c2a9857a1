package remp

import (
	"context"
	"net/http"
	"time"
)

// Requester is the request engine surface shared by every endpoint client.
type Requester interface {
	Get(ctx context.Context, path string, params interface{}, headers map[string]string, opts ...CallOption) (*Result, error)
	Post(ctx context.Context, path string, params interface{}, headers map[string]string, opts ...CallOption) (*Result, error)
	Send(ctx context.Context, method, path string, params interface{}, headers map[string]string, opts ...CallOption) (*Result, error)
}

// RotationState exposes the outcome of the most recently completed call.
type RotationState interface {
	// HasNewToken reports whether the last completed call returned an access token.
	HasNewToken() bool
	// UserToken returns the access token of the last completed call.
	UserToken() string
	// LastError returns the error payload of the last unsuccessful envelope.
	LastError() interface{}
}

// UserClient covers /api/v1/user/ and requires a user token.
type UserClient interface {
	Info(ctx context.Context) (Envelope, error)
	Delete(ctx context.Context) (bool, error)
}

// UsersClient covers /api/v1/users/ and requires an API token, except for
// Logout which runs with the user token being invalidated.
type UsersClient interface {
	Login(ctx context.Context, params interface{}) (Envelope, error)
	Create(ctx context.Context, params interface{}) (Envelope, error)
	Update(ctx context.Context, params interface{}) (Envelope, error)
	Addresses(ctx context.Context, params interface{}) (Envelope, error)
	Address(ctx context.Context, params interface{}) (Envelope, error)
	Email(ctx context.Context, params interface{}) (Envelope, error)
	Logout(ctx context.Context) (bool, error)
	AddToGroup(ctx context.Context, params interface{}) (bool, error)
	RemoveFromGroup(ctx context.Context, params interface{}) (bool, error)
}

// SubscriptionsClient covers /api/v1/subscriptions/ and requires an API token.
type SubscriptionsClient interface {
	Create(ctx context.Context, params interface{}) (Envelope, error)
}

// RecurrentPaymentsClient covers /api/v1/recurrent-payment/ and requires a user token.
type RecurrentPaymentsClient interface {
	Reactivate(ctx context.Context, params interface{}) (Envelope, error)
	Stop(ctx context.Context, params interface{}) (Envelope, error)
}

// ResourceClients provides access to the endpoint clients.
type ResourceClients interface {
	User() UserClient
	Users() UsersClient
	Subscriptions() SubscriptionsClient
	RecurrentPayments() RecurrentPaymentsClient
}

// Client is a CRM API client bound to one server and one token.
//
// A Client is safe for concurrent use. The RotationState it exposes only
// describes the most recently completed call; callers issuing concurrent
// requests should read Result.Rotation instead.
type Client interface {
	Requester
	RotationState
	ResourceClients

	// IsSuccess classifies an envelope.
	IsSuccess(env Envelope) bool
	// DeriveWithRotatedToken returns a new client authenticated with UserToken().
	DeriveWithRotatedToken() (Client, error)
	// WithRotation returns a new client authenticated with rotation.Token.
	WithRotation(rotation Rotation) (Client, error)
	// Config returns a copy of the configuration the client was built with.
	Config() Config
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a remp.Client.
type Config struct {
	// Server is the base URL, e.g. "https://crm.press". Request paths are
	// appended to it verbatim.
	Server string
	// Token is sent as "Authorization: Bearer <token>" on every request. It
	// is either an API token or a user token obtained through login.
	Token string
	// Verbose echoes every request and response through Logger.
	Verbose bool
	// Referer is sent as the Referer header when set. The CRM uses it to
	// recognise server-to-server calls.
	Referer string
	// Encoding selects how structured params are serialized. Defaults to EncodingJSON.
	Encoding Encoding
	// Logger receives verbose output and transport diagnostics.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// HTTPTimeout bounds a whole request. Zero means no timeout; prefer
	// context deadlines.
	HTTPTimeout time.Duration
	// HTTPClient replaces the underlying *http.Client.
	HTTPClient *http.Client
	// Interceptors run around every request.
	Interceptors *InterceptorChain
}
