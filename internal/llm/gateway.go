// Package llm provides a provider-abstracted text-completion gateway with
// ordered fallback. The gateway never returns an error: failures degrade to
// a diagnostic string embedded in the normal success path, because callers
// treat gateway output as plain text to store inside structured records. The
// pipeline must never abort solely because a model is unavailable.
package llm

import (
	"context"

	"go.uber.org/zap"
)

// NotConfiguredMessage is returned immediately when no provider has a
// credential. It is a package constant so callers and tests can recognize it.
const NotConfiguredMessage = "AI service not configured. Please set GEMINI_API_KEY or GEMINI_REST_API_KEY in environment variables."

// Config holds provider credentials and model choices. It is read once at
// construction and treated as immutable afterwards.
type Config struct {
	// APIKey enables the SDK-based primary provider.
	APIKey string
	// PrimaryModel is the model the primary provider uses.
	PrimaryModel string
	// RESTAPIKey enables the HTTP fallback provider.
	RESTAPIKey string
	// FallbackModels are tried in order by the HTTP provider; stable model
	// names belong before preview/experimental ones.
	FallbackModels []string
	// BaseURL overrides the HTTP provider endpoint (used by tests).
	BaseURL string
}

// DefaultConfig reads credentials once and fills in the stock model chain.
func DefaultConfig(apiKey, restAPIKey string) Config {
	return Config{
		APIKey:         apiKey,
		PrimaryModel:   "gemini-2.5-flash",
		RESTAPIKey:     restAPIKey,
		FallbackModels: []string{"gemini-1.5-flash", "gemini-pro", "gemini-3-flash-preview"},
	}
}

// completer is one attempt strategy in the fallback chain.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// Gateway is the single entry point for text completion.
type Gateway struct {
	chain  []completer
	logger *zap.Logger
}

// New assembles the provider chain from config. Providers without a
// credential are left out of the chain entirely.
func New(ctx context.Context, cfg Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	var chain []completer
	if cfg.APIKey != "" {
		if p, err := newGenaiProvider(ctx, cfg.APIKey, cfg.PrimaryModel); err == nil {
			chain = append(chain, p)
		} else {
			logger.Warn("primary llm provider unavailable", zap.Error(err))
		}
	}
	if cfg.RESTAPIKey != "" {
		chain = append(chain, newRESTProvider(cfg.RESTAPIKey, cfg.FallbackModels, cfg.BaseURL))
	}

	return &Gateway{chain: chain, logger: logger}
}

// Complete runs the prompt through the provider chain and returns the first
// successful response. Every provider error falls through to the next
// provider; when the whole chain fails the last error is embedded in the
// returned text. Callers never inspect a separate error channel.
func (g *Gateway) Complete(ctx context.Context, prompt string) string {
	if len(g.chain) == 0 {
		return NotConfiguredMessage
	}

	lastErr := ""
	for _, provider := range g.chain {
		text, err := provider.complete(ctx, prompt)
		if err != nil {
			lastErr = err.Error()
			g.logger.Warn("llm provider attempt failed", zap.String("error", lastErr))
			continue
		}
		return text
	}

	return "Error from AI Provider (All models failed). Last error: " + lastErr
}
