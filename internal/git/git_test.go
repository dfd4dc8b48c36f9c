package git

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/quickcommit/internal/formatter"
)

func TestCurrentBranch_EmptyRepository(t *testing.T) {
	client, _ := newTestRepo(t)

	branch, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, DefaultBranch, branch)
}

func TestCurrentBranch_WithHistory(t *testing.T) {
	client, dir := newTestRepo(t)

	stageFile(t, dir, "a.txt", "a\n")
	runGit(t, dir, "commit", "-q", "-m", "init")
	runGit(t, dir, "checkout", "-q", "-b", "feature/login")

	branch, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature/login", branch)
}

func TestCurrentBranch_UnbornBranchWithHistory(t *testing.T) {
	client, dir := newTestRepo(t)

	stageFile(t, dir, "a.txt", "a\n")
	runGit(t, dir, "commit", "-q", "-m", "init")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/orphan")

	branch, err := client.CurrentBranch()
	require.Error(t, err)
	assert.Empty(t, branch)
	assert.ErrorIs(t, err, ErrBranchUnknown)
}

func TestCurrentBranch_OutsideRepository(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	client := NewClient(Options{Dir: dir, Logger: zerolog.Nop()})

	_, err := client.CurrentBranch()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBranchUnknown))
}

func TestStagedFiles(t *testing.T) {
	client, dir := newTestRepo(t)

	files, err := client.StagedFiles()
	require.NoError(t, err)
	assert.Empty(t, files, "nothing staged is a valid, empty result")

	stageFile(t, dir, "a.txt", "a\n")
	stageFile(t, dir, "pkg/b.go", "package pkg\n")
	writeFile(t, dir, "unstaged.txt", "ignored\n")

	files, err = client.StagedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "pkg/b.go"}, files)
}

func TestStagedDiffContext(t *testing.T) {
	client, dir := newTestRepo(t)
	stageFile(t, dir, "a.txt", "hello\n")

	raw, err := client.StagedDiff()
	require.NoError(t, err)
	assert.Contains(t, raw, "+hello")

	ctx, err := client.StagedDiffContext()
	require.NoError(t, err)
	assert.Equal(t, formatter.DiffHeader+raw, ctx)
}

func TestStagedDiffContext_Truncates(t *testing.T) {
	client, dir := newTestRepo(t)
	client.maxDiffBytes = 64
	stageFile(t, dir, "big.txt", strings.Repeat("0123456789\n", 50))

	raw, err := client.StagedDiff()
	require.NoError(t, err)
	require.Greater(t, len(raw), 64)

	ctx, err := client.StagedDiffContext()
	require.NoError(t, err)
	assert.Equal(t, formatter.DiffHeader+raw[:64]+formatter.TruncationMarker, ctx)
}

func TestCommit(t *testing.T) {
	client, dir := newTestRepo(t)
	stageFile(t, dir, "a.txt", "a\n")

	require.NoError(t, client.Commit("feat: add a.txt"))

	subject := strings.TrimSpace(runGit(t, dir, "log", "-1", "--format=%s"))
	assert.Equal(t, "feat: add a.txt", subject)

	files, err := client.StagedFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCommit_FailureIncludesStderr(t *testing.T) {
	client, _ := newTestRepo(t)

	err := client.Commit("chore: nothing staged")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit changes")
}
