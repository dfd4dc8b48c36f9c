// Package credential keeps the API key in the operating system keyring.
package credential

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	ServiceName = "QuickCommit"
	AccountName = "api-key"
)

var (
	// ErrNotFound matches every failure to read the API key, whether the
	// entry is absent or the keyring could not be reached.
	ErrNotFound = errors.New("API key not found. Please set it using 'quickcommit set-api-key'")

	ErrEmptyKey = errors.New("API key cannot be empty")
)

// lookupError presents a keyring read failure with the ErrNotFound text while
// keeping the underlying keyring error reachable for errors.Is/As.
type lookupError struct {
	cause error
}

func (e *lookupError) Error() string {
	return ErrNotFound.Error()
}

func (e *lookupError) Unwrap() []error {
	return []error{ErrNotFound, e.cause}
}

// KeyringStore reads and writes a single secret under a fixed service and account.
type KeyringStore struct {
	Service string
	Account string
}

// NewKeyringStore returns the store used by the CLI.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{Service: ServiceName, Account: AccountName}
}

// Set stores key, replacing any previous value.
func (s *KeyringStore) Set(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := keyring.Set(s.Service, s.Account, key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	return nil
}

// Get returns the stored key. Any failure matches ErrNotFound.
func (s *KeyringStore) Get() (string, error) {
	key, err := keyring.Get(s.Service, s.Account)
	if err != nil {
		return "", &lookupError{cause: err}
	}
	return key, nil
}

// IsAbsent reports whether err means no key is stored, as opposed to the
// keyring being unreachable.
func IsAbsent(err error) bool {
	return errors.Is(err, keyring.ErrNotFound)
}

// ReadAPIKey prompts on out and reads one line from in. Surrounding
// whitespace, including the line terminator, is removed. A terminal gets a
// masked input field instead of a plain prompt.
func ReadAPIKey(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return promptAPIKey(f, out)
	}

	fmt.Fprint(out, "Enter your API key: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptAPIKey(in *os.File, out io.Writer) (string, error) {
	var key string
	input := huh.NewInput().
		Title("Enter your API key:").
		EchoMode(huh.EchoModePassword).
		Value(&key)

	if err := huh.NewForm(huh.NewGroup(input)).WithInput(in).WithOutput(out).Run(); err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(key), nil
}
