// Package rempclient provides the main entry point for creating REMP CRM API clients
package rempclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/fivetwenty-io/remp-client/internal/client"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// EnvPrefix is the environment variable prefix read by NewFromEnv.
const EnvPrefix = "REMP"

// EnvConfig holds the configuration read from the environment.
// Variables are parsed from the REMP_ prefix, e.g. REMP_SERVER.
type EnvConfig struct {
	Server      string        `envconfig:"SERVER"       required:"true"`
	Token       string        `envconfig:"TOKEN"        required:"true"`
	Verbose     bool          `envconfig:"VERBOSE"      default:"false"`
	Referer     string        `envconfig:"REFERER"`
	Encoding    string        `envconfig:"ENCODING"     default:"json"`
	UserAgent   string        `envconfig:"USER_AGENT"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL"    default:"info"`
}

// New creates a new CRM API client.
//
// The server URL is normalized: a trailing slash is dropped and https:// is
// assumed when no scheme is given. When Verbose is set without a Logger, a
// debug console logger is installed. The caller's config is not modified.
func New(config *remp.Config) (remp.Client, error) {
	if config == nil {
		return nil, remp.ErrConfigRequired
	}

	normalized := *config
	normalized.Server = NormalizeServer(config.Server)

	if normalized.Verbose && normalized.Logger == nil {
		normalized.Logger = remp.NewDefaultLogger("debug")
	}

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client for server authenticated with token.
func NewWithToken(server, token string) (remp.Client, error) {
	return New(&remp.Config{
		Server: server,
		Token:  token,
	})
}

// LoadEnvConfig reads REMP_* environment variables into a remp.Config.
func LoadEnvConfig() (*remp.Config, error) {
	var env EnvConfig

	err := envconfig.Process(EnvPrefix, &env)
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	encoding, err := remp.ParseEncoding(env.Encoding)
	if err != nil {
		return nil, err
	}

	config := &remp.Config{
		Server:      env.Server,
		Token:       env.Token,
		Verbose:     env.Verbose,
		Referer:     env.Referer,
		Encoding:    encoding,
		UserAgent:   env.UserAgent,
		HTTPTimeout: env.HTTPTimeout,
	}

	if env.Verbose {
		config.Logger = remp.NewDefaultLogger("debug")
	} else {
		config.Logger = remp.NewDefaultLogger(env.LogLevel)
	}

	return config, nil
}

// NewFromEnv creates a client configured from REMP_* environment variables.
func NewFromEnv() (remp.Client, error) {
	config, err := LoadEnvConfig()
	if err != nil {
		return nil, err
	}

	return New(config)
}

// NormalizeServer trims a trailing slash and adds https:// when no scheme is given.
func NormalizeServer(server string) string {
	server = strings.TrimSuffix(strings.TrimSpace(server), "/")
	if server == "" {
		return ""
	}

	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	return server
}
