package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samzong/quickcommit/internal/credential"
)

var setAPIKeyCmd = &cobra.Command{
	Use:   "set-api-key",
	Short: "Set or update the API key for the LLM service",
	Long: `Prompt for the API key and store it in the system keyring.

The key is read from standard input, so it can also be piped in:

  echo "$OPENAI_API_KEY" | quickcommit set-api-key`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runSetAPIKey(credential.NewKeyringStore())
	},
}

type apiKeySetter interface {
	Set(key string) error
}

func init() {
	rootCmd.AddCommand(setAPIKeyCmd)
}

func runSetAPIKey(store apiKeySetter) error {
	key, err := credential.ReadAPIKey(inReader(), outWriter())
	if err != nil {
		return err
	}
	if err := store.Set(key); err != nil {
		return err
	}
	log := currentLogger()
	log.Debug().Msg("api key stored")
	fmt.Fprintln(outWriter(), "API key has been securely stored.")
	return nil
}
