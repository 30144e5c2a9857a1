package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// Configuration keys shared by flags, the config file and REMP_* variables.
const (
	KeyServer    = "server"
	KeyToken     = "token"
	KeyReferer   = "referer"
	KeyEncoding  = "encoding"
	KeyOutput    = "output"
	KeyUserAgent = "user_agent"
	KeyNATSURL   = "nats_url"
	KeySessionDB = "session_db"
)

// Config represents the persisted CLI configuration.
type Config struct {
	Server    string `json:"server,omitempty"     yaml:"server,omitempty"`
	Token     string `json:"token,omitempty"      yaml:"token,omitempty"`
	Referer   string `json:"referer,omitempty"    yaml:"referer,omitempty"`
	Encoding  string `json:"encoding,omitempty"   yaml:"encoding,omitempty"`
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	NATSURL   string `json:"nats_url,omitempty"   yaml:"nats_url,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the server, API token and defaults used by the REMP CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the API token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = maskToken(config.Token)

			switch viper.GetString(KeyOutput) {
			case constants.FormatJSON:
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(cmd.OutOrStdout())

				return encoder.Encode(config)
			default:
				return displayConfigTable(cmd, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Keys: server, token, referer, encoding, output, user_agent, nats_url`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			viper.Set(key, value)

			display := value
			if key == KeyToken {
				display = maskToken(value)
			}

			return outputConfigUpdateResult(cmd, "set", key, display)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			viper.Set(key, "")

			return outputConfigUpdateResult(cmd, "unset", key, "")
		},
	}
}

// loadConfig reads the effective configuration from viper, which already
// merges flags, REMP_* variables and the config file.
func loadConfig() *Config {
	return &Config{
		Server:    viper.GetString(KeyServer),
		Token:     viper.GetString(KeyToken),
		Referer:   viper.GetString(KeyReferer),
		Encoding:  viper.GetString(KeyEncoding),
		Output:    viper.GetString(KeyOutput),
		UserAgent: viper.GetString(KeyUserAgent),
		NATSURL:   viper.GetString(KeyNATSURL),
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case KeyServer:
		config.Server = value
	case KeyToken:
		config.Token = value
	case KeyReferer:
		config.Referer = value
	case KeyEncoding:
		_, err := remp.ParseEncoding(value)
		if err != nil {
			return err
		}

		config.Encoding = value
	case KeyOutput:
		if value != "" && value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
			return fmt.Errorf("%w: %s (use table, json or yaml)", constants.ErrInvalidOutput, value)
		}

		config.Output = value
	case KeyUserAgent:
		config.UserAgent = value
	case KeyNATSURL:
		config.NATSURL = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(cmd *cobra.Command, config *Config) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")

	_ = table.Append("Server", config.Server)
	_ = table.Append("Token", config.Token)
	_ = table.Append("Referer", config.Referer)
	_ = table.Append("Encoding", config.Encoding)
	_ = table.Append("Output", config.Output)
	_ = table.Append("User Agent", config.UserAgent)
	_ = table.Append("NATS URL", config.NATSURL)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func outputConfigUpdateResult(cmd *cobra.Command, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}
	if value != "" {
		result["value"] = value
	}

	switch viper.GetString(KeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(result)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())

		return encoder.Encode(result)
	default:
		if action == "unset" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

		return nil
	}
}

// maskToken keeps a short prefix of a secret for recognition.
func maskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) <= constants.TokenPreviewLength {
		return constants.Masked
	}

	return token[:constants.TokenPreviewLength] + constants.Masked
}
