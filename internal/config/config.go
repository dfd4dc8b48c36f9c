package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/samzong/quickcommit/internal/llm"
)

// Config holds user-tunable settings. The API key is deliberately absent:
// it lives only in the OS keyring.
type Config struct {
	Model   string `mapstructure:"model"`
	APIBase string `mapstructure:"api_base"`
	LogFile string `mapstructure:"log_file"`
}

const (
	DefaultConfigName = "config"
	DefaultConfigDir  = "quickcommit"
	EnvPrefix         = "QUICKCOMMIT"
)

var suggestedModels = []string{
	llm.DefaultModel,
	"gpt-4o-mini",
	"gpt-4.1",
	"gpt-4.1-mini",
}

// ConfigDir returns $XDG_CONFIG_HOME/quickcommit, falling back to ~/.config/quickcommit.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, DefaultConfigDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", DefaultConfigDir), nil
}

// InitConfig loads configuration from cfgFile, or from the default location
// when cfgFile is empty. A missing file is created with the defaults.
func InitConfig(cfgFile string) error {
	configPath := cfgFile
	if configPath == "" {
		dir, err := ConfigDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(dir, DefaultConfigName+".yaml")
	}
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("model", llm.DefaultModel)
	viper.SetDefault("api_base", "")
	viper.SetDefault("log_file", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		if err := createConfigFile(configPath); err != nil {
			return err
		}
	}
	return nil
}

func createConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to set configuration file permissions: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}
	return cfg, nil
}

func SetConfigValue(key string, value any) {
	viper.Set(key, value)
}

// SaveConfig writes the current configuration back to its file.
func SaveConfig() error {
	return viper.WriteConfig()
}

// IsValidModel accepts any non-empty model name.
func IsValidModel(model string) bool {
	return strings.TrimSpace(model) != ""
}

func GetSuggestedModels() []string {
	return suggestedModels
}
