// Package prompt assembles the text blob sent to the completion
// endpoint from a context snapshot and the user's query.
package prompt

import (
	"bytes"
	"os"
	"strings"
	"text/template"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

const systemInstructions = `You are a helpful terminal assistant that translates natural language requests into executable bash commands.

INSTRUCTIONS:
1. Your response should ONLY contain the bash command without any explanations, markdown formatting, or additional text.
2. The user will confirm or reject your proposed command before execution.
3. Use the current working directory and terminal context provided to generate appropriate commands.
4. Choose the most efficient and correct command for the user's request.
5. Do not include ` + "```bash, ```" + `, or any other markdown formatting in your response.
6. Use appropriate flags and options for user-friendly output (e.g., -h for human-readable output in commands like ls -lh).

EXAMPLES:
Request: "Show me the largest files in this directory"
Response: find . -type f -exec du -h {} \; | sort -rh | head -n 10

Request: "Create a backup of my config file"
Response: cp ~/.config/myapp/config.yaml ~/.config/myapp/config.yaml.bak

Request: "How much disk space do I have left"
Response: df -h`

// The section order is fixed: instructions, terminal context (directory,
// history or its sentinel, error only when present, system identity),
// the user request, then the trailing marker cueing a bare command.
const promptTemplate = `{{.Instructions}}

TERMINAL CONTEXT:
Current working directory: {{.WorkingDirectory}}
{{- if .History}}
Recent commands:
{{- range .History}}
{{.Number}}. {{.Command}}
{{- end}}
{{- else}}
No previous commands in history.
{{- end}}
{{- if .LastError}}
Last error message: {{.LastError}}
{{- end}}
OS: {{.OSName}} {{.OSVersion}}
Shell: {{.ShellName}}{{if .ShellVersion}} {{.ShellVersion}}{{end}}
Host: {{.Hostname}}

USER REQUEST:
{{.Query}}

COMMAND:`

var tmpl = template.Must(template.New("prompt").Parse(promptTemplate))

type historyEntry struct {
	Number  int
	Command string
}

type templateData struct {
	Instructions     string
	WorkingDirectory string
	History          []historyEntry
	LastError        string
	OSName           string
	OSVersion        string
	ShellName        string
	ShellVersion     string
	Hostname         string
	Query            string
}

// Builder renders prompts from the terminal context. Building refreshes
// the store's working directory; that is its only side effect.
type Builder struct {
	historyWindow int
	getwd         func() (string, error)
}

// NewBuilder constructs a Builder with the default history window.
func NewBuilder() *Builder {
	return &Builder{
		historyWindow: domain.PromptHistoryWindow,
		getwd:         os.Getwd,
	}
}

// Build implements ports.PromptBuilder.
func (b *Builder) Build(query string, store *domain.TerminalContext) (string, error) {
	if wd, err := b.getwd(); err == nil {
		store.SetWorkingDirectory(wd)
	}
	snapshot := store.Snapshot()

	data := templateData{
		Instructions:     systemInstructions,
		WorkingDirectory: snapshot.WorkingDirectory,
		History:          recentHistory(snapshot.CommandHistory, b.historyWindow),
		LastError:        snapshot.LastError,
		OSName:           snapshot.OSName,
		OSVersion:        snapshot.OSVersion,
		ShellName:        snapshot.ShellName,
		ShellVersion:     snapshot.ShellVersion,
		Hostname:         snapshot.Hostname,
		Query:            strings.TrimSpace(query),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// recentHistory numbers the last window entries 1..N, most recent last.
func recentHistory(history []string, window int) []historyEntry {
	if window <= 0 {
		window = domain.PromptHistoryWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	entries := make([]historyEntry, 0, len(history))
	for i, cmd := range history {
		entries = append(entries, historyEntry{Number: i + 1, Command: cmd})
	}
	return entries
}

var _ ports.PromptBuilder = (*Builder)(nil)
