package formatter

import (
	"strings"
)

const (
	// MaxDiffBytes caps how much of the staged diff is sent to the model.
	MaxDiffBytes = 4000

	// TruncationMarker is appended to a diff cut at MaxDiffBytes.
	TruncationMarker = "... (truncated)"

	// DiffHeader introduces the diff inside the prompt.
	DiffHeader = "Git diff for staged changes:\n"
)

// TruncateDiff keeps the first limit bytes of diff and appends TruncationMarker
// when diff is longer than limit. The cut is byte based and may land mid-line
// or mid-rune.
func TruncateDiff(diff string, limit int) string {
	if limit <= 0 || len(diff) <= limit {
		return diff
	}
	return diff[:limit] + TruncationMarker
}

// DiffContext returns the diff as it appears in the prompt: DiffHeader followed
// by the possibly truncated diff.
func DiffContext(diff string, limit int) string {
	return DiffHeader + TruncateDiff(diff, limit)
}

// FormatCommitMessage trims the model output into a commit message.
func FormatCommitMessage(message string) string {
	return strings.TrimSpace(message)
}
