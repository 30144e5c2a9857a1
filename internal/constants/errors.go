package constants

import "errors"

// Configuration errors.
var (
	ErrNoServerConfigured = errors.New("no server configured, use 'remp config set server <url>' or --server")
	ErrNoTokenConfigured  = errors.New("no API token configured, use 'remp config set token <token>' or --token")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidOutput      = errors.New("invalid output format")
)

// Request errors.
var (
	ErrRequestRefused = errors.New("request refused by the CRM")
	ErrAborted        = errors.New("aborted")
)

// Session errors.
var (
	ErrNotLoggedIn       = errors.New("not logged in, use 'remp login' first")
	ErrLoginFailed       = errors.New("login failed")
	ErrLoginNoToken      = errors.New("login response did not contain an access token")
	ErrSessionBucketGone = errors.New("session bucket missing")
)

// Parameter errors.
var (
	ErrInvalidParam  = errors.New("invalid parameter, expected key=value")
	ErrEmailRequired = errors.New("email is required")
)

// Token errors.
var (
	ErrInvalidJWTFormat = errors.New("token is not a JWT")
)
