// Package workflow provides the commit workflow orchestration logic.
package workflow

import "context"

// GitClient abstracts git operations for testability.
type GitClient interface {
	CurrentBranch() (string, error)
	StagedFiles() ([]string, error)
	StagedDiffContext() (string, error)
	Commit(message string, args ...string) error
}

// LLMClient abstracts the completion endpoint for testability.
type LLMClient interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// CredentialStore provides the API key.
type CredentialStore interface {
	Get() (string, error)
}
