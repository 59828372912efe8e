// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"

	"github.com/pdiddy/startup-analyzer/internal/secrets"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// New returns the Generator selected by cfg.Provider. It performs no network
// call; credentials are checked when Generate runs.
func New(ctx context.Context, cfg types.ModelConfig, creds secrets.Source, tracker *Tracker) (Generator, error) {
	cfg = WithDefaults(cfg)
	switch cfg.Provider {
	case types.ProviderAnthropic:
		return NewClaude(cfg, creds, tracker), nil
	case types.ProviderGroq:
		return NewGateway(cfg, creds, GroqKeyName, tracker), nil
	case types.ProviderBedrock:
		return NewBedrock(ctx, cfg, tracker)
	default:
		return nil, fmt.Errorf("%w: unknown model provider %q", ErrConfiguration, cfg.Provider)
	}
}
