package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

var (
	ErrNoChanges    = errors.New("no changes staged for commit")
	ErrEmptyMessage = errors.New("generated commit message is empty")
)

type CommitOptions struct {
	DryRun    bool
	NoVerify  bool
	ErrWriter io.Writer
	OutWriter io.Writer
	Logger    zerolog.Logger
}

// CommitFlow runs branch -> staged files -> message -> commit, stopping at the
// first failure. Nothing is mutated before the commit step.
type CommitFlow struct {
	git       GitClient
	generator *MessageGenerator
	opts      CommitOptions
}

func NewCommitFlow(git GitClient, llm LLMClient, credentials CredentialStore, opts CommitOptions) *CommitFlow {
	if opts.OutWriter == nil {
		opts.OutWriter = io.Discard
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = io.Discard
	}
	generator := NewMessageGenerator(git, llm, credentials)
	generator.ErrWriter = opts.ErrWriter
	return &CommitFlow{git: git, generator: generator, opts: opts}
}

// Run executes the workflow. It returns ErrNoChanges, without calling the
// model or committing, when nothing is staged.
func (f *CommitFlow) Run(ctx context.Context) error {
	branch, err := f.git.CurrentBranch()
	if err != nil {
		return err
	}

	files, err := f.git.StagedFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoChanges
	}
	f.opts.Logger.Debug().Str("branch", branch).Strs("files", files).Msg("collected staged changes")

	message, err := f.generator.Generate(ctx, branch, files)
	if err != nil {
		return err
	}

	if f.opts.DryRun {
		fmt.Fprintln(f.opts.OutWriter, "Generated commit message (dry run):")
		fmt.Fprintln(f.opts.OutWriter, message)
		return nil
	}

	if err := f.git.Commit(message, f.buildCommitArgs()...); err != nil {
		return err
	}

	fmt.Fprintln(f.opts.OutWriter, "Committed changes with message:")
	fmt.Fprintln(f.opts.OutWriter, message)
	return nil
}

func (f *CommitFlow) buildCommitArgs() []string {
	var args []string
	if f.opts.NoVerify {
		args = append(args, "--no-verify")
	}
	return args
}
