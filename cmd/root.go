package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samzong/quickcommit/internal/config"
	"github.com/samzong/quickcommit/internal/credential"
	"github.com/samzong/quickcommit/internal/git"
	"github.com/samzong/quickcommit/internal/llm"
	"github.com/samzong/quickcommit/internal/logging"
	"github.com/samzong/quickcommit/internal/workflow"
)

// ErrInvalidCommand is returned for an unrecognized first argument.
var ErrInvalidCommand = errors.New("invalid command")

var (
	cfgFile   string
	repoDir   string
	verbose   bool
	noVerify  bool
	dryRun    bool
	configErr error
	logger    *logging.Logger
	rootCmd   = &cobra.Command{
		Use:   "quickcommit",
		Short: "quickcommit - A smart Git commit CLI tool",
		Long: `quickcommit generates a commit message for your staged changes with an LLM ` +
			`and commits them.

Usage:
  quickcommit                 Auto-generate commit message and commit staged changes
  quickcommit commit          Same as above, explicitly specified
  quickcommit help            Display this help message
  quickcommit set-api-key     Set or update the API key for the LLM service`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return invalidCommand(cmd, args[0])
			}
			return runCommit(cmd)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the CLI with ctx, which is cancelled on interrupt. A failure
// is reported on the error stream before it is returned.
func Execute(ctx context.Context) error {
	defer closeLogger()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		fmt.Fprintln(errWriter(), "\nOperation cancelled")
	default:
		fmt.Fprintln(errWriter(), "Error:", err)
	}
	return err
}

// RootCmd exposes the command tree for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $XDG_CONFIG_HOME/quickcommit/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "dir", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
	addCommitFlags(rootCmd)
}

func addCommitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip pre-commit hooks")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate message only, do not commit")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)

	logFile := ""
	if configErr == nil {
		if cfg, err := config.GetConfig(); err == nil {
			logFile = cfg.LogFile
		}
	}

	closeLogger()
	l, err := logging.New(logging.Options{Verbose: verbose, Console: errWriter(), File: logFile})
	if err != nil {
		// A broken log file must not block committing; fall back to console only.
		l, _ = logging.New(logging.Options{Verbose: verbose, Console: errWriter()})
		l.Warn().Err(err).Str("log_file", logFile).Msg("log file disabled")
	}
	logger = l
}

func currentLogger() zerolog.Logger {
	if logger == nil {
		return zerolog.Nop()
	}
	return logger.Logger
}

func closeLogger() {
	if logger != nil {
		_ = logger.Close()
		logger = nil
	}
}

func invalidCommand(cmd *cobra.Command, token string) error {
	fmt.Fprintln(outWriter(), "\nHere's how to use quickcommit:")
	fmt.Fprint(outWriter(), cmd.UsageString())
	return fmt.Errorf("%w '%s'", ErrInvalidCommand, token)
}

func handleErrors(err error) error {
	if errors.Is(err, workflow.ErrNoChanges) {
		fmt.Fprintln(outWriter(), "No changes staged for commit. Please stage your changes first.")
		return nil
	}
	return err
}

func runCommit(cmd *cobra.Command) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	log := currentLogger()
	gitClient := git.NewClient(git.Options{Dir: repoDir, Logger: log})
	llmClient := llm.NewClient(llm.Options{Model: cfg.Model, APIBase: cfg.APIBase, Logger: log})

	flow := workflow.NewCommitFlow(gitClient, llmClient, credential.NewKeyringStore(), workflow.CommitOptions{
		DryRun:    dryRun,
		NoVerify:  noVerify,
		OutWriter: outWriter(),
		ErrWriter: errWriter(),
		Logger:    log,
	})
	return handleErrors(flow.Run(cmd.Context()))
}
