package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/samzong/quickcommit/internal/formatter"
	"github.com/samzong/quickcommit/internal/ui"
)

// MessageGenerator turns the staged changes into a commit message.
type MessageGenerator struct {
	git         GitClient
	llm         LLMClient
	credentials CredentialStore
	// ErrWriter hosts the progress spinner.
	ErrWriter io.Writer
}

func NewMessageGenerator(git GitClient, llm LLMClient, credentials CredentialStore) *MessageGenerator {
	return &MessageGenerator{git: git, llm: llm, credentials: credentials, ErrWriter: io.Discard}
}

// Generate reads the API key and the staged diff, builds the prompt and asks
// the model for a message. Errors from the credential store and from git are
// returned unchanged.
func (g *MessageGenerator) Generate(ctx context.Context, branch string, files []string) (string, error) {
	apiKey, err := g.credentials.Get()
	if err != nil {
		return "", err
	}

	diffContext, err := g.git.StagedDiffContext()
	if err != nil {
		return "", err
	}

	prompt, err := formatter.BuildPrompt(branch, files, diffContext)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	sp := ui.NewSpinner(g.ErrWriter, "Generating commit message...")
	sp.Start()
	message, err := g.llm.Complete(ctx, apiKey, prompt)
	sp.Stop()
	if err != nil {
		return "", err
	}

	message = formatter.FormatCommitMessage(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	return message, nil
}
