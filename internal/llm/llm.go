// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the model client: one call contract, Generate, over several
// generative text providers. Clients hold no per-request state and are safe
// to share across concurrent analyses. No call is ever retried or cached.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

var (
	// ErrConfiguration means a client cannot be used as configured, most
	// often because its credential is missing. It is always returned before
	// any network call.
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstream means the remote call failed, timed out, or returned an
	// unusable response.
	ErrUpstream = errors.New("upstream error")

	// ErrInvalidRequest means Generate was called with an empty instruction
	// or context.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// Credential names looked up through secrets.Source.
const (
	AnthropicKeyName = "anthropic-api-key"
	GroqKeyName      = "groq-api-key"
)

const (
	defaultTemperature    = 0.7
	defaultMaxTokens      = 4096
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultGroqBaseURL    = "https://api.groq.com/openai/v1"
)

// Generator produces text for a role instruction and a context string.
type Generator interface {
	Generate(ctx context.Context, instruction, input string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, instruction, input string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, instruction, input string) (string, error) {
	return f(ctx, instruction, input)
}

// WithDefaults fills zero values in cfg with the provider defaults.
func WithDefaults(cfg types.ModelConfig) types.ModelConfig {
	if cfg.Provider == "" {
		cfg.Provider = types.ProviderAnthropic
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Name == "" {
		switch cfg.Provider {
		case types.ProviderGroq:
			cfg.Name = defaultGroqModel
		default:
			cfg.Name = defaultAnthropicModel
		}
	}
	if cfg.Provider == types.ProviderGroq && cfg.BaseURL == "" {
		cfg.BaseURL = defaultGroqBaseURL
	}
	return cfg
}

func validate(instruction, input string) error {
	if strings.TrimSpace(instruction) == "" {
		return fmt.Errorf("%w: empty role instruction", ErrInvalidRequest)
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: empty context", ErrInvalidRequest)
	}
	return nil
}

func missingCredential(name string) error {
	return fmt.Errorf("%w: credential %s is not set", ErrConfiguration, name)
}

func upstream(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, provider, err)
}

// Usage is a snapshot of Tracker counters.
type Usage struct {
	Calls        int           `json:"calls" yaml:"calls"`
	InputTokens  int64         `json:"input_tokens" yaml:"input_tokens"`
	OutputTokens int64         `json:"output_tokens" yaml:"output_tokens"`
	Elapsed      time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Tracker accumulates call counts and token usage across calls.
type Tracker struct {
	mu    sync.Mutex
	usage Usage
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Add records one completed call.
func (t *Tracker) Add(input, output int64, elapsed time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage.Calls++
	t.usage.InputTokens += input
	t.usage.OutputTokens += output
	t.usage.Elapsed += elapsed
}

// Usage returns the current totals.
func (t *Tracker) Usage() Usage {
	if t == nil {
		return Usage{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}
