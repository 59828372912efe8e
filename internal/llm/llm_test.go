// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/startup-analyzer/internal/secrets"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

const sampleMessage = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-test",
  "content": [
    {"type": "text", "text": "Part one. "},
    {"type": "text", "text": "Part two."}
  ],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 12, "output_tokens": 7}
}`

const emptyMessage = `{
  "id": "msg_02",
  "type": "message",
  "role": "assistant",
  "model": "claude-test",
  "content": [],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 3, "output_tokens": 0}
}`

// countingServer serves body with status for every request and counts calls.
func countingServer(t *testing.T, status int, body string, inspect func(*http.Request, []byte)) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		if inspect != nil {
			inspect(r, raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestClaudeGenerate(t *testing.T) {
	var gotBody map[string]any
	var gotKey string
	ts, calls := countingServer(t, http.StatusOK, sampleMessage, func(r *http.Request, raw []byte) {
		gotKey = r.Header.Get("X-Api-Key")
		_ = json.Unmarshal(raw, &gotBody)
	})

	tracker := NewTracker()
	c := NewClaude(types.ModelConfig{Name: "claude-test", BaseURL: ts.URL + "/"},
		secrets.Map{AnthropicKeyName: "sk-test"}, tracker)

	text, err := c.Generate(context.Background(), "You are a critic.", "Startup Idea: tea")
	require.NoError(t, err)
	assert.Equal(t, "Part one. Part two.", text)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "sk-test", gotKey)

	assert.Equal(t, "claude-test", gotBody["model"])
	assert.EqualValues(t, 4096, gotBody["max_tokens"])
	assert.InDelta(t, 0.7, gotBody["temperature"], 1e-9)

	u := tracker.Usage()
	assert.Equal(t, 1, u.Calls)
	assert.EqualValues(t, 12, u.InputTokens)
	assert.EqualValues(t, 7, u.OutputTokens)
}

func TestClaudeMissingCredential(t *testing.T) {
	ts, calls := countingServer(t, http.StatusOK, sampleMessage, nil)

	for name, src := range map[string]secrets.Source{
		"empty map": secrets.Map{},
		"nil":       nil,
	} {
		t.Run(name, func(t *testing.T) {
			c := NewClaude(types.ModelConfig{BaseURL: ts.URL + "/"}, src, nil)
			_, err := c.Generate(context.Background(), "instr", "ctx")
			require.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), AnthropicKeyName)
		})
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestClaudeUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"type":"error","error":{"type":"api_error","message":"boom"}}`},
		{"rate limited", http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`},
		{"no text", http.StatusOK, emptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := countingServer(t, tt.status, tt.body, nil)
			c := NewClaude(types.ModelConfig{BaseURL: ts.URL + "/"}, secrets.Map{AnthropicKeyName: "k"}, nil)

			_, err := c.Generate(context.Background(), "instr", "ctx")
			require.ErrorIs(t, err, ErrUpstream)
			assert.Equal(t, int32(1), calls.Load(), "no retries")
		})
	}
}

func TestGenerateRejectsEmptyInput(t *testing.T) {
	ts, calls := countingServer(t, http.StatusOK, sampleMessage, nil)
	creds := secrets.Map{AnthropicKeyName: "k", GroqKeyName: "g"}

	gens := map[string]Generator{
		"claude":  NewClaude(types.ModelConfig{BaseURL: ts.URL + "/"}, creds, nil),
		"gateway": NewGateway(types.ModelConfig{Provider: types.ProviderGroq, BaseURL: ts.URL}, creds, GroqKeyName, nil),
	}
	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			_, err := g.Generate(context.Background(), "", "ctx")
			require.ErrorIs(t, err, ErrInvalidRequest)
			_, err = g.Generate(context.Background(), "instr", "  \n")
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestGatewayGenerate(t *testing.T) {
	var req chatRequest
	var auth, path string
	ts, calls := countingServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"market is large"}}],"usage":{"prompt_tokens":20,"completion_tokens":4}}`,
		func(r *http.Request, raw []byte) {
			auth = r.Header.Get("Authorization")
			path = r.URL.Path
			_ = json.Unmarshal(raw, &req)
		})

	tracker := NewTracker()
	g := NewGateway(types.ModelConfig{Provider: types.ProviderGroq, BaseURL: ts.URL + "/"},
		secrets.Map{GroqKeyName: "gsk"}, GroqKeyName, tracker)

	text, err := g.Generate(context.Background(), "You are an analyst.", "Startup Idea: tea")
	require.NoError(t, err)
	assert.Equal(t, "market is large", text)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Bearer gsk", auth)
	assert.Equal(t, "/chat/completions", path)

	assert.Equal(t, defaultGroqModel, req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "You are an analyst."}, req.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "Startup Idea: tea"}, req.Messages[1])
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, 4096, req.MaxTokens)

	assert.EqualValues(t, 20, tracker.Usage().InputTokens)
}

func TestGatewayFailures(t *testing.T) {
	tests := []struct {
		name    string
		creds   secrets.Source
		status  int
		body    string
		wantErr error
		calls   int32
	}{
		{"missing credential", secrets.Map{}, http.StatusOK, `{}`, ErrConfiguration, 0},
		{"status error", secrets.Map{GroqKeyName: "k"}, http.StatusBadGateway, `bad`, ErrUpstream, 1},
		{"no choices", secrets.Map{GroqKeyName: "k"}, http.StatusOK, `{"choices":[]}`, ErrUpstream, 1},
		{"blank content", secrets.Map{GroqKeyName: "k"}, http.StatusOK, `{"choices":[{"message":{"content":" "}}]}`, ErrUpstream, 1},
		{"malformed json", secrets.Map{GroqKeyName: "k"}, http.StatusOK, `{"choices":`, ErrUpstream, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := countingServer(t, tt.status, tt.body, nil)
			g := NewGateway(types.ModelConfig{Provider: types.ProviderGroq, BaseURL: ts.URL}, tt.creds, GroqKeyName, nil)

			_, err := g.Generate(context.Background(), "instr", "ctx")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.calls, calls.Load())
		})
	}
}

func TestGatewayTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	g := NewGateway(types.ModelConfig{Provider: types.ProviderGroq, BaseURL: ts.URL, Timeout: 50 * time.Millisecond},
		secrets.Map{GroqKeyName: "k"}, GroqKeyName, nil)
	_, err := g.Generate(context.Background(), "instr", "ctx")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestWithDefaults(t *testing.T) {
	got := WithDefaults(types.ModelConfig{})
	assert.Equal(t, types.ProviderAnthropic, got.Provider)
	assert.Equal(t, defaultAnthropicModel, got.Name)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	assert.Equal(t, 4096, got.MaxTokens)

	groq := WithDefaults(types.ModelConfig{Provider: types.ProviderGroq})
	assert.Equal(t, defaultGroqModel, groq.Name)
	assert.Equal(t, defaultGroqBaseURL, groq.BaseURL)

	kept := WithDefaults(types.ModelConfig{Name: "custom", Temperature: 0.2, MaxTokens: 100})
	assert.Equal(t, "custom", kept.Name)
	assert.InDelta(t, 0.2, kept.Temperature, 1e-9)
	assert.Equal(t, 100, kept.MaxTokens)
}

func TestNewFactory(t *testing.T) {
	ctx := context.Background()

	g, err := New(ctx, types.ModelConfig{}, secrets.Map{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Claude{}, g)

	g, err = New(ctx, types.ModelConfig{Provider: types.ProviderGroq}, secrets.Map{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Gateway{}, g)

	_, err = New(ctx, types.ModelConfig{Provider: types.ProviderBedrock}, nil, nil)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = New(ctx, types.ModelConfig{Provider: "openai"}, nil, nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

// isolateAWS points the AWS default chain at an empty home directory with
// instance metadata disabled, so nothing is read from the host.
func isolateAWS(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(home, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(home, "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	for _, k := range []string{
		"AWS_PROFILE", "AWS_DEFAULT_PROFILE",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN",
		"AWS_CONTAINER_CREDENTIALS_RELATIVE_URI", "AWS_CONTAINER_CREDENTIALS_FULL_URI",
		"AWS_WEB_IDENTITY_TOKEN_FILE", "AWS_ROLE_ARN",
	} {
		t.Setenv(k, "")
	}
}

func TestBedrockUnknownProfile(t *testing.T) {
	isolateAWS(t)
	cfg := types.ModelConfig{Provider: types.ProviderBedrock, Region: "us-east-1", Profile: "no-such-profile"}

	var err error
	assert.NotPanics(t, func() {
		_, err = New(context.Background(), cfg, nil, nil)
	})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "AWS config")
}

func TestBedrockMissingCredentials(t *testing.T) {
	isolateAWS(t)
	tracker := NewTracker()
	b, err := NewBedrock(context.Background(), types.ModelConfig{Region: "us-east-1"}, tracker)
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), "instruction", "context")
	require.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrUpstream)
	assert.Zero(t, tracker.Usage().Calls)
}

func TestBedrockModel(t *testing.T) {
	isolateAWS(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	b, err := NewBedrock(context.Background(), types.ModelConfig{Region: "us-west-2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "us.anthropic.claude-sonnet-4-5-20250929-v1:0", b.Model())

	creds, err := b.creds.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}

func TestModelNames(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-5-20250929", NewClaude(types.ModelConfig{}, nil, nil).Model())
	assert.Equal(t, "llama-3.3-70b-versatile",
		NewGateway(types.ModelConfig{Provider: types.ProviderGroq}, nil, GroqKeyName, nil).Model())
}

func TestBedrockModelID(t *testing.T) {
	assert.Equal(t, "us.anthropic.claude-sonnet-4-5-20250929-v1:0", BedrockModelID("claude-sonnet-4-5-20250929"))
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", BedrockModelID("anthropic.claude-3-haiku-20240307-v1:0"))
}

func TestTrackerConcurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Add(2, 1, time.Millisecond)
		}()
	}
	wg.Wait()

	u := tr.Usage()
	assert.Equal(t, 50, u.Calls)
	assert.EqualValues(t, 100, u.InputTokens)
	assert.EqualValues(t, 50, u.OutputTokens)

	var nilTracker *Tracker
	nilTracker.Add(1, 1, 0)
	assert.Equal(t, Usage{}, nilTracker.Usage())
}

func TestGeneratorFunc(t *testing.T) {
	var g Generator = GeneratorFunc(func(_ context.Context, instruction, input string) (string, error) {
		return instruction + "|" + input, nil
	})
	out, err := g.Generate(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a|b", out)
}
