package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/internal/session"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
	"github.com/fivetwenty-io/remp-client/pkg/rempclient"
)

// closer releases resources held by a client built for one command.
type closer func()

// serverKey returns the normalized server URL used to key sessions.
func serverKey() (string, error) {
	server := rempclient.NormalizeServer(viper.GetString(KeyServer))
	if server == "" {
		return "", constants.ErrNoServerConfigured
	}

	return server, nil
}

// newAPIClient builds a client authenticated with the configured API token.
func newAPIClient() (remp.Client, closer, error) {
	token := viper.GetString(KeyToken)
	if token == "" {
		return nil, nil, constants.ErrNoTokenConfigured
	}

	return newClientWithToken(token)
}

// newSessionClient builds a client authenticated with the stored user token.
func newSessionClient() (remp.Client, closer, error) {
	server, err := serverKey()
	if err != nil {
		return nil, nil, err
	}

	store, err := openSessionStore()
	if err != nil {
		return nil, nil, err
	}

	defer func() { _ = store.Close() }()

	stored, err := store.Get(server)
	if err != nil {
		return nil, nil, err
	}

	return newClientWithToken(stored.Token)
}

// rememberRotatedToken stores the access token the CRM issued on the last
// call in place of the session token.
func rememberRotatedToken(client remp.Client) error {
	if !client.HasNewToken() {
		return nil
	}

	server, err := serverKey()
	if err != nil {
		return err
	}

	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stored, err := store.Get(server)
	if err != nil {
		return err
	}

	if stored.Token == client.UserToken() {
		return nil
	}

	stored.Token = client.UserToken()
	stored.CreatedAt = time.Time{}

	return store.Save(stored)
}

func newClientWithToken(token string) (remp.Client, closer, error) {
	server, err := serverKey()
	if err != nil {
		return nil, nil, err
	}

	encoding, err := remp.ParseEncoding(viper.GetString(KeyEncoding))
	if err != nil {
		return nil, nil, err
	}

	config := &remp.Config{
		Server:      server,
		Token:       token,
		Verbose:     viper.GetBool("verbose"),
		Referer:     viper.GetString(KeyReferer),
		Encoding:    encoding,
		UserAgent:   viper.GetString(KeyUserAgent),
		HTTPTimeout: constants.DefaultHTTPTimeout,
	}

	release := func() {}

	if natsURL := viper.GetString(KeyNATSURL); natsURL != "" {
		conn, err := remp.ConnectNATS(natsURL)
		if err != nil {
			return nil, nil, err
		}

		config.Interceptors = eventChain(conn)
		release = func() {
			_ = conn.Flush()
			conn.Close()
		}
	}

	client, err := rempclient.New(config)
	if err != nil {
		release()

		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, release, nil
}

func eventChain(conn *nats.Conn) *remp.InterceptorChain {
	chain := remp.NewInterceptorChain()
	chain.AddRequestInterceptor(remp.RequestIDInterceptor())
	chain.AddRequestInterceptor(remp.MetricsRequestInterceptor(remp.NewMetricsCollector()))
	chain.AddResponseInterceptor(remp.EventInterceptor(conn, ""))

	return chain
}

func sessionDBPath() (string, error) {
	path := viper.GetString(KeySessionDB)
	if path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.SessionFileName), nil
}

func openSessionStore() (*session.Store, error) {
	path, err := sessionDBPath()
	if err != nil {
		return nil, err
	}

	return session.Open(path)
}
