// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/startup-analyzer/internal/httputil"
	"github.com/pdiddy/startup-analyzer/internal/secrets"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// Gateway calls an OpenAI-compatible chat completions endpoint. The default
// target is Groq.
type Gateway struct {
	creds      secrets.Source
	secretName string
	baseURL    string
	model      string
	temp       float64
	maxTokens  int
	client     *http.Client
	tracker    *Tracker
}

// NewGateway returns a Gateway for cfg. The credential secretName is read
// on every call.
func NewGateway(cfg types.ModelConfig, creds secrets.Source, secretName string, tracker *Tracker) *Gateway {
	cfg = WithDefaults(cfg)
	return &Gateway{
		creds:      creds,
		secretName: secretName,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Name,
		temp:       cfg.Temperature,
		maxTokens:  cfg.MaxTokens,
		client:     &http.Client{Timeout: cfg.Timeout},
		tracker:    tracker,
	}
}

// Model returns the configured model identifier.
func (g *Gateway) Model() string {
	return g.model
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
}

// Generate implements Generator.
func (g *Gateway) Generate(ctx context.Context, instruction, input string) (string, error) {
	if err := validate(instruction, input); err != nil {
		return "", err
	}
	if g.creds == nil {
		return "", missingCredential(g.secretName)
	}
	key, ok := g.creds.Lookup(g.secretName)
	if !ok {
		return "", missingCredential(g.secretName)
	}

	req := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: input},
		},
		Temperature: g.temp,
		MaxTokens:   g.maxTokens,
	}
	header := http.Header{"Authorization": []string{"Bearer " + key}}

	start := time.Now()
	var resp chatResponse
	if err := httputil.PostJSON(ctx, g.client, g.baseURL+"/chat/completions", header, req, &resp); err != nil {
		return "", upstream("gateway", err)
	}
	g.tracker.Add(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, time.Since(start))

	if len(resp.Choices) == 0 {
		return "", upstream("gateway", fmt.Errorf("response contained no choices"))
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", upstream("gateway", fmt.Errorf("response contained no text"))
	}
	return text, nil
}
