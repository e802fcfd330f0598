// Package llm is the adapter boundary to the external text-generation
// capability. The rest of the engine treats generation as best-effort
// enhancement, never a dependency: every error this package returns is
// recoverable by falling back to the deterministic parser.
package llm

import (
	"context"
	"errors"
)

// Generator produces a best-effort completion for a prompt. Implementations
// must honor context cancellation; a single attempt is made per call, with
// no retries, because the caller always has a deterministic fallback.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Error taxonomy for the generative path. Callers check with errors.Is and
// recover locally; none of these ever surface to the end user.
var (
	// ErrTimeout reports that the generation call exceeded its deadline.
	ErrTimeout = errors.New("generation timed out")
	// ErrUpstream reports a non-success response from the generation service.
	ErrUpstream = errors.New("generation upstream error")
	// ErrMalformed reports that no valid JSON object could be recovered from
	// the model output, even after repair.
	ErrMalformed = errors.New("malformed generation output")
)

// Config carries the generation client settings.
type Config struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Timeout     int     `yaml:"timeout_seconds"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// DefaultConfig returns the settings tuned for small local models: low
// temperature and a short completion budget keep the JSON output tight.
func DefaultConfig() Config {
	return Config{
		Model:       "qwen2.5:0.5b",
		BaseURL:     "http://localhost:11434/api",
		Timeout:     15,
		Temperature: 0.1,
		TopP:        0.9,
		MaxTokens:   300,
	}
}
