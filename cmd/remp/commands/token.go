package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/remp-client/internal/constants"
)

// TokenInfo describes the stored session of the configured server.
type TokenInfo struct {
	Server    string                 `json:"server"           yaml:"server"`
	Email     string                 `json:"email"            yaml:"email"`
	Token     string                 `json:"token"            yaml:"token"`
	CreatedAt time.Time              `json:"created_at"       yaml:"created_at"`
	Claims    map[string]interface{} `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Show the stored user token",
		Long: `Display the user token saved by 'remp login' for the configured server.

When the token is a JWT its claims are decoded without verifying the signature.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			info := TokenInfo{
				Server:    stored.Server,
				Email:     stored.Email,
				Token:     stored.Token,
				CreatedAt: stored.CreatedAt,
			}

			claims, err := decodeClaims(stored.Token)
			if err != nil && !errors.Is(err, constants.ErrInvalidJWTFormat) {
				return err
			}

			info.Claims = claims

			if !reveal {
				info.Token = maskToken(info.Token)
			}

			return outputTokenInfo(cmd, info)
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the full token")

	return cmd
}

// decodeClaims parses a JWT without verifying it. Opaque tokens yield
// ErrInvalidJWTFormat.
func decodeClaims(token string) (map[string]interface{}, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	return claims, nil
}

func outputTokenInfo(cmd *cobra.Command, info TokenInfo) error {
	switch viper.GetString(KeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(info)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())

		return encoder.Encode(info)
	default:
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Property", "Value")
		_ = table.Append("Server", info.Server)
		_ = table.Append("Email", info.Email)
		_ = table.Append("Token", info.Token)
		_ = table.Append("Logged In", info.CreatedAt.Format(time.RFC3339))

		if info.Claims == nil {
			_ = table.Append("Claims", "(not a JWT)")
		}

		keys := make([]string, 0, len(info.Claims))
		for key := range info.Claims {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_ = table.Append("claim:"+key, formatClaim(key, info.Claims[key]))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// formatClaim renders registered time claims as timestamps.
func formatClaim(key string, value interface{}) string {
	switch key {
	case "exp", "iat", "nbf":
		if seconds, ok := value.(float64); ok {
			return time.Unix(int64(seconds), 0).UTC().Format(time.RFC3339)
		}
	}

	return formatValue(value)
}
