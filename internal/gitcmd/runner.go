package gitcmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// ErrInvalidOutput is returned when git writes output that is not valid UTF-8.
var ErrInvalidOutput = errors.New("git output is not valid UTF-8")

// Runner executes git commands with shared logging and output handling.
type Runner struct {
	Dir    string
	Env    []string
	Logger zerolog.Logger
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// StdoutString decodes stdout, failing on invalid UTF-8.
func (r Result) StdoutString(trim bool) (string, error) {
	if !utf8.Valid(r.Stdout) {
		return "", ErrInvalidOutput
	}
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output), nil
	}
	return output, nil
}

// StderrString decodes stderr leniently; it only ever feeds error messages.
func (r Result) StderrString() string {
	return strings.TrimSpace(strings.ToValidUTF8(string(r.Stderr), "�"))
}

// Wrap annotates a failed run with action and, when present, git's stderr.
func (r Result) Wrap(action string, err error) error {
	if stderr := r.StderrString(); stderr != "" {
		return fmt.Errorf("%s: %s: %w", action, stderr, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (r Runner) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

// Run executes a git command and captures stdout/stderr.
func (r Runner) Run(args ...string) (Result, error) {
	r.Logger.Debug().Strs("args", args).Str("dir", r.Dir).Msg("running git")

	cmd := r.command(args...)
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	result := Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}
	if err != nil {
		r.Logger.Debug().Err(err).Strs("args", args).Str("stderr", result.StderrString()).Msg("git failed")
	}
	return result, err
}
