package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/samzong/quickcommit/internal/formatter"
	"github.com/samzong/quickcommit/internal/gitcmd"
)

// DefaultBranch is reported for a repository that has no commits yet.
const DefaultBranch = "main"

// ErrBranchUnknown is returned when HEAD cannot be resolved in a repository
// that already has history.
var ErrBranchUnknown = errors.New("could not determine current branch")

// Options configures a Client.
type Options struct {
	// Dir is the working tree to operate on. Empty means the process cwd.
	Dir string
	// MaxDiffBytes caps the diff returned by StagedDiffContext.
	// Zero selects formatter.MaxDiffBytes.
	MaxDiffBytes int
	Logger       zerolog.Logger
}

// Client runs read-only queries and the commit against one working tree.
type Client struct {
	runner       gitcmd.Runner
	maxDiffBytes int
}

func NewClient(opts Options) *Client {
	maxDiff := opts.MaxDiffBytes
	if maxDiff == 0 {
		maxDiff = formatter.MaxDiffBytes
	}
	return &Client{
		runner:       gitcmd.Runner{Dir: opts.Dir, Logger: opts.Logger},
		maxDiffBytes: maxDiff,
	}
}

// CurrentBranch returns the abbreviated name of HEAD. A repository without
// any commits reports DefaultBranch.
func (c *Client) CurrentBranch() (string, error) {
	result, err := c.runner.Run("rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		branch, decodeErr := result.StdoutString(true)
		if decodeErr != nil {
			return "", fmt.Errorf("failed to read current branch: %w", decodeErr)
		}
		if branch != "" {
			return branch, nil
		}
	}

	result, err = c.runner.Run("rev-list", "-n", "1", "--all")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBranchUnknown, result.Wrap("git rev-list", err))
	}
	if len(result.Stdout) == 0 {
		return DefaultBranch, nil
	}
	return "", ErrBranchUnknown
}

// StagedFiles lists the paths staged for commit in git's order.
func (c *Client) StagedFiles() ([]string, error) {
	result, err := c.runner.Run("diff", "--cached", "--name-only")
	if err != nil {
		return nil, result.Wrap("failed to get staged files", err)
	}
	out, err := result.StdoutString(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged files: %w", err)
	}
	return splitLines(out), nil
}

// StagedDiff returns the raw unified diff of staged changes.
func (c *Client) StagedDiff() (string, error) {
	result, err := c.runner.Run("diff", "--cached")
	if err != nil {
		return "", result.Wrap("failed to get git diff for staged changes", err)
	}
	out, err := result.StdoutString(false)
	if err != nil {
		return "", fmt.Errorf("failed to get git diff for staged changes: %w", err)
	}
	return out, nil
}

// StagedDiffContext returns the staged diff, truncated to the configured byte
// limit and prefixed with formatter.DiffHeader, ready to embed in a prompt.
func (c *Client) StagedDiffContext() (string, error) {
	diff, err := c.StagedDiff()
	if err != nil {
		return "", err
	}
	return formatter.DiffContext(diff, c.maxDiffBytes), nil
}

// Commit records the staged changes with message passed verbatim as a
// single argument. Extra args are appended after the message.
func (c *Client) Commit(message string, args ...string) error {
	commitArgs := append([]string{"commit", "-m", message}, args...)
	result, err := c.runner.Run(commitArgs...)
	if err != nil {
		return result.Wrap("failed to commit changes", err)
	}
	return nil
}

func splitLines(out string) []string {
	lines := strings.Split(out, "\n")
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSuffix(line, "\r"); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}
