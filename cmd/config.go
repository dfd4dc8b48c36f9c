package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samzong/quickcommit/internal/config"
	"github.com/samzong/quickcommit/internal/credential"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage quickcommit configuration",
		Long:  `Manage quickcommit configuration, including the LLM model and API base URL.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set configuration item",
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model [Model Name]",
		Short: "Set the LLM model",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			model := args[0]
			if !config.IsValidModel(model) {
				return fmt.Errorf("invalid model: %q", model)
			}
			if err := saveConfigValue("model", model); err != nil {
				return err
			}

			fmt.Fprintf(outWriter(), "Model set to: %s\n", model)
			fmt.Fprintln(outWriter(), "Hint: any model name is accepted, suggested models are:")
			for _, m := range config.GetSuggestedModels() {
				fmt.Fprintf(outWriter(), "- %s\n", m)
			}
			return nil
		},
	}

	configSetAPIBaseCmd = &cobra.Command{
		Use:   "apibase [URL]",
		Short: "Set the OpenAI-compatible API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := saveConfigValue("api_base", args[0]); err != nil {
				return err
			}
			fmt.Fprintln(outWriter(), "API base URL set to:", args[0])
			return nil
		},
	}

	configSetLogFileCmd = &cobra.Command{
		Use:   "logfile [Path]",
		Short: "Set a file that also receives log output (empty string disables it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := saveConfigValue("log_file", args[0]); err != nil {
				return err
			}
			fmt.Fprintln(outWriter(), "Log file set to:", displayOrUnset(args[0]))
			return nil
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}

			fmt.Fprintln(outWriter(), "Current configuration:")
			fmt.Fprintf(outWriter(), "Config file: %s\n", displayOrUnset(viper.ConfigFileUsed()))
			fmt.Fprintf(outWriter(), "Model: %s\n", cfg.Model)
			fmt.Fprintf(outWriter(), "API base URL: %s\n", displayOrUnset(cfg.APIBase))
			fmt.Fprintf(outWriter(), "Log file: %s\n", displayOrUnset(cfg.LogFile))
			fmt.Fprintf(outWriter(), "API key: %s\n", apiKeyStatus(credential.NewKeyringStore()))
			return nil
		},
	}
)

func init() {
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetAPIBaseCmd)
	configSetCmd.AddCommand(configSetLogFileCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

func saveConfigValue(key string, value any) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}
	config.SetConfigValue(key, value)
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

func displayOrUnset(value string) string {
	if value == "" {
		return "<not set>"
	}
	return value
}

type apiKeyGetter interface {
	Get() (string, error)
}

func apiKeyStatus(store apiKeyGetter) string {
	_, err := store.Get()
	switch {
	case err == nil:
		return "********"
	case credential.IsAbsent(err):
		return "<not set>"
	default:
		return "<keyring unavailable>"
	}
}
