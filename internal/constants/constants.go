package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and session files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the timeout used by the CLI.
	DefaultHTTPTimeout = 30 * time.Second

	// SessionDBOpenTimeout bounds waiting for the session database lock.
	SessionDBOpenTimeout = time.Second
)

// HTTP status codes with special meaning for the CRM API.
const (
	// HTTPStatusOK is the canonical success status.
	HTTPStatusOK = 200

	// HTTPStatusUserDeleted is returned by /api/v1/user/delete on success.
	HTTPStatusUserDeleted = 203
)

// Endpoint path prefixes. Operation names are appended verbatim.
const (
	UserPath             = "/api/v1/user/"
	UsersPath            = "/api/v1/users/"
	SubscriptionsPath    = "/api/v1/subscriptions/"
	RecurrentPaymentPath = "/api/v1/recurrent-payment/"
)

// Request headers.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderReferer       = "Referer"
	HeaderUserAgent     = "User-Agent"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "remp-client-go"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Display helpers.
const (
	// Masked replaces secrets in logs and tables.
	Masked = "***"

	// TokenPreviewLength is the number of token characters shown before masking.
	TokenPreviewLength = 6

	// MinimumArgumentCount is the argument count of "config set KEY VALUE".
	MinimumArgumentCount = 2
)

// CLI configuration locations.
const (
	ConfigDirName   = ".remp"
	ConfigFileName  = "config"
	ConfigFileType  = "yml"
	SessionFileName = "session.db"
	EnvPrefix       = "REMP"
)
