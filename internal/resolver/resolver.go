// Package resolver arbitrates between the deterministic parser and the
// generative fallback, then applies the correction passes that repair the
// systematic mistakes the generative path is known to make.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tempo/internal/intent"
	"tempo/internal/jsonx"
	"tempo/internal/llm"
	"tempo/internal/logging"
	"tempo/internal/parser"
	"tempo/internal/prompts"
)

const defaultGenerateTimeout = 15 * time.Second

var errGeneratorDisabled = errors.New("no generator configured")

// Engine resolves free-text commands into structured intents. It holds no
// per-request state: concurrent Resolve calls are independent, each with its
// own reference clock snapshot.
type Engine struct {
	generator llm.Generator
	prompts   *prompts.Loader
	timeout   time.Duration
	logger    logging.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithTimeout bounds the generative call. The deterministic stages are not
// preemptible; they complete in microseconds.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrNop(logger)
	}
}

// New builds an Engine. A nil generator disables the generative fallback
// entirely; the deterministic parser then handles every input.
func New(generator llm.Generator, opts ...Option) (*Engine, error) {
	loader, err := prompts.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	engine := &Engine{
		generator: generator,
		prompts:   loader,
		timeout:   defaultGenerateTimeout,
		logger:    logging.NewComponentLogger("resolver"),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// Resolve classifies text against the reference time now. It never fails:
// every input, however malformed, yields a valid Intent — in the worst case
// a Task carrying the raw text. Downstream layers never see a parse error.
func (e *Engine) Resolve(ctx context.Context, text string, now time.Time) intent.Intent {
	reqID := uuid.NewString()[:8]
	clock := intent.NewReferenceClock(now)

	local := parser.ParseLocal(text, clock)
	candidate := local

	// The generative path is strictly a fallback for the ambiguous
	// "no time or command signal" case: when a deterministic signal exists
	// the model is known to hallucinate, so the local result is trusted
	// unconditionally.
	switch local.(type) {
	case intent.Delete, intent.Edit, intent.Query:
		e.logger.Debug("[%s] local parser matched command (%s)", reqID, local.Kind())
	case intent.Event:
		e.logger.Debug("[%s] local parser resolved timed event", reqID)
	default:
		generated, err := e.generateIntent(ctx, clock, text)
		if err != nil {
			// Recovered locally; the weaker local guess stands in.
			e.logger.Warn("[%s] generative fallback unavailable: %v", reqID, err)
		} else {
			e.logger.Debug("[%s] generative fallback produced %s", reqID, generated.Kind())
			candidate = generated
		}
	}

	return e.correct(reqID, text, clock, candidate)
}

// generateIntent invokes the external generation capability once, bounded
// by the engine timeout, and recovers a structured candidate from its
// free-form output.
func (e *Engine) generateIntent(ctx context.Context, clock intent.ReferenceClock, text string) (intent.Intent, error) {
	if e.generator == nil {
		return nil, errGeneratorDisabled
	}

	prompt, err := e.prompts.ParseIntent(clock, text)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	output, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := jsonx.ExtractObject(output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformed, err)
	}
	candidate, err := intent.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformed, err)
	}
	return candidate, nil
}
