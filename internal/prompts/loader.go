// Package prompts embeds the prompt templates and renders them with simple
// variable substitution.
package prompts

import (
	"embed"
	"fmt"
	"strings"

	"tempo/internal/intent"
)

//go:embed *.md
var promptFS embed.FS

// ParseIntentTemplate is the template used by the generative fallback.
const ParseIntentTemplate = "parse_intent"

// Loader handles loading and rendering prompt templates.
type Loader struct {
	templates map[string]string
}

// NewLoader reads every embedded markdown template.
func NewLoader() (*Loader, error) {
	loader := &Loader{templates: make(map[string]string)}

	entries, err := promptFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read prompts directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		content, err := promptFS.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read prompt file %s: %w", entry.Name(), err)
		}
		loader.templates[strings.TrimSuffix(entry.Name(), ".md")] = string(content)
	}

	return loader, nil
}

// Render substitutes {{key}} placeholders in the named template.
func (l *Loader) Render(name string, variables map[string]string) (string, error) {
	template, ok := l.templates[name]
	if !ok {
		return "", fmt.Errorf("prompt template %q not found", name)
	}

	content := template
	for key, value := range variables {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content, nil
}

// ParseIntent renders the intent-parsing prompt for one user command,
// grounding the model in the reference clock's dates so relative-day words
// resolve consistently.
func (l *Loader) ParseIntent(clock intent.ReferenceClock, input string) (string, error) {
	return l.Render(ParseIntentTemplate, map[string]string{
		"today":         clock.Today,
		"today_name":    clock.TodayName,
		"tomorrow":      clock.Tomorrow,
		"tomorrow_name": clock.TomorrowName,
		"input":         input,
	})
}
