//go:build integration

package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
	"github.com/fivetwenty-io/remp-client/pkg/rempclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Server   string
	Token    string
	Referer  string
	Email    string
	Password string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Server:   os.Getenv("REMP_INTEGRATION_SERVER"),
		Token:    os.Getenv("REMP_INTEGRATION_TOKEN"),
		Referer:  os.Getenv("REMP_INTEGRATION_REFERER"),
		Email:    os.Getenv("REMP_INTEGRATION_EMAIL"),
		Password: os.Getenv("REMP_INTEGRATION_PASSWORD"),
		Verbose:  os.Getenv("REMP_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Server == "" || config.Token == "" {
		t.Skip("REMP_INTEGRATION_SERVER or REMP_INTEGRATION_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingCredentials skips test if no reader credentials are configured
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()

	config.SkipIfMissingConfig(t)

	if config.Email == "" || config.Password == "" {
		t.Skip("REMP_INTEGRATION_EMAIL or REMP_INTEGRATION_PASSWORD not set, skipping integration test")
	}
}

// NewAPIClient creates a client authenticated with the API token
func (config *TestConfig) NewAPIClient(t *testing.T) remp.Client {
	t.Helper()

	client, err := rempclient.New(&remp.Config{
		Server:      config.Server,
		Token:       config.Token,
		Referer:     config.Referer,
		Verbose:     config.Verbose,
		HTTPTimeout: 30 * time.Second,
	})
	require.NoError(t, err)

	return client
}

// GenerateTestEmail generates a unique address for test users
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@integration.example", prefix, time.Now().UnixNano())
}
