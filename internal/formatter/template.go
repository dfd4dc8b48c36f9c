package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

type CommitType struct {
	Name        string
	Description string
}

// CommitTypes is the closed set of prefixes the model may start a subject with.
var CommitTypes = []CommitType{
	{"feat", "new feature"},
	{"fix", "bug fix"},
	{"refactor", "refactoring production code"},
	{"style", "formatting, missing semi colons, etc; no code change"},
	{"docs", "changes to documentation"},
	{"test", "adding or refactoring tests; no production code change"},
	{"perf", "code change that improves performance"},
	{"revert", "revert a commit"},
	{"build", "changes that affect the build system"},
	{"ci", "changes to the CI configuration files or scripts"},
	{"chore", "updating grunt tasks etc; no production code change"},
}

type TemplateData struct {
	Branch      string
	Files       string
	DiffContext string
	Types       []CommitType
}

const promptTemplate = `Take a deep breath and work on this problem step-by-step.
Summarize the provided diff into a clear and concise written commit message.
Use the imperative style for the subject, use the imperative style for the body, and limit the combination of the entire subject line to 50 characters or less.
Optionally, use a scope, and limit the scope types to 50 characters or less. Be as descriptive as possible, but keep it to a single line.
It should be ready to be pasted into commit edits without further editing.
Do not add the ` + "```" + ` to the start and end of the commit message.
It is important that you start the subject with a commit type based on the changes made.

The following are the commit types that you can use:
{{- range .Types}}
    {{printf "%-8s" .Name}} ({{.Description}})
{{- end}}

It is crucial that you follow the rules above.

Use the following information to generate the commit message:
Branch name: {{.Branch}}
Staged files: {{.Files}}
Git diff:
{{.DiffContext}}`

var prompt = template.Must(template.New("prompt").Parse(promptTemplate))

// RenderTemplate executes the prompt template with data.
func RenderTemplate(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := prompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template rendering error: %w", err)
	}
	return buf.String(), nil
}

// BuildPrompt assembles the instruction block, the branch name, the
// comma-joined staged files and the diff context into one prompt.
func BuildPrompt(branch string, files []string, diffContext string) (string, error) {
	return RenderTemplate(TemplateData{
		Branch:      branch,
		Files:       strings.Join(files, ", "),
		DiffContext: diffContext,
		Types:       CommitTypes,
	})
}
