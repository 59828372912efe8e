// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/startup-analyzer/internal/secrets"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// messageParams are the decoding settings shared by the Anthropic-backed clients.
type messageParams struct {
	model       anthropic.Model
	temperature float64
	maxTokens   int64
}

// Claude calls the Anthropic Messages API through the official SDK. The API
// key is read from the credential source on every call, so a missing key is
// reported as ErrConfiguration before a request is built.
type Claude struct {
	creds   secrets.Source
	params  messageParams
	opts    []option.RequestOption
	tracker *Tracker
}

// NewClaude returns a Claude client for cfg. Extra request options (base URL,
// HTTP client) are appended after the defaults.
func NewClaude(cfg types.ModelConfig, creds secrets.Source, tracker *Tracker, opts ...option.RequestOption) *Claude {
	cfg = WithDefaults(cfg)

	base := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return &Claude{
		creds:   creds,
		params:  paramsFor(cfg),
		opts:    append(base, opts...),
		tracker: tracker,
	}
}

func paramsFor(cfg types.ModelConfig) messageParams {
	return messageParams{
		model:       anthropic.Model(cfg.Name),
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
	}
}

// Model returns the configured model identifier.
func (c *Claude) Model() string {
	return string(c.params.model)
}

// Generate implements Generator.
func (c *Claude) Generate(ctx context.Context, instruction, input string) (string, error) {
	if err := validate(instruction, input); err != nil {
		return "", err
	}
	if c.creds == nil {
		return "", missingCredential(AnthropicKeyName)
	}
	key, ok := c.creds.Lookup(AnthropicKeyName)
	if !ok {
		return "", missingCredential(AnthropicKeyName)
	}

	opts := append([]option.RequestOption{option.WithAPIKey(key)}, c.opts...)
	client := anthropic.NewClient(opts...)
	return sendMessage(ctx, client, c.params, c.tracker, "anthropic", instruction, input)
}

// sendMessage performs one Messages.New call and returns the concatenated
// text blocks of the reply.
func sendMessage(ctx context.Context, client anthropic.Client, p messageParams, tracker *Tracker, provider, instruction, input string) (string, error) {
	start := time.Now()
	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(p.temperature),
		System: []anthropic.TextBlockParam{
			{Text: instruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	})
	if err != nil {
		return "", upstream(provider, err)
	}
	tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens, time.Since(start))

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", upstream(provider, fmt.Errorf("response contained no text"))
	}
	return b.String(), nil
}
