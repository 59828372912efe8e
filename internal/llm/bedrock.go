// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// Bedrock calls Claude through AWS Bedrock. Credentials come from the AWS
// default chain (environment, shared config, instance role).
type Bedrock struct {
	client  anthropic.Client
	creds   aws.CredentialsProvider
	params  messageParams
	tracker *Tracker
}

// NewBedrock loads the AWS configuration for cfg.Region and cfg.Profile.
// A missing region or an unloadable profile is a configuration error.
func NewBedrock(ctx context.Context, cfg types.ModelConfig, tracker *Tracker) (*Bedrock, error) {
	cfg = WithDefaults(cfg)
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: bedrock requires model.region", ErrConfiguration)
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %w", ErrConfiguration, err)
	}

	client := anthropic.NewClient(
		bedrock.WithConfig(awsCfg),
		option.WithMaxRetries(0),
	)

	p := paramsFor(cfg)
	p.model = anthropic.Model(BedrockModelID(cfg.Name))

	return &Bedrock{client: client, creds: awsCfg.Credentials, params: p, tracker: tracker}, nil
}

// BedrockModelID converts an Anthropic model name to the cross-region
// inference profile Bedrock expects. Names already in Bedrock form are
// returned unchanged.
func BedrockModelID(model string) string {
	if strings.Contains(model, "anthropic.") {
		return model
	}
	return "us.anthropic." + model + "-v1:0"
}

// Generate implements Generator.
func (b *Bedrock) Generate(ctx context.Context, instruction, input string) (string, error) {
	if err := validate(instruction, input); err != nil {
		return "", err
	}
	if b.creds == nil {
		return "", fmt.Errorf("%w: no AWS credentials configured", ErrConfiguration)
	}
	if _, err := b.creds.Retrieve(ctx); err != nil {
		return "", fmt.Errorf("%w: resolving AWS credentials: %w", ErrConfiguration, err)
	}
	return sendMessage(ctx, b.client, b.params, b.tracker, "bedrock", instruction, input)
}

// Model returns the Bedrock model identifier.
func (b *Bedrock) Model() string {
	return string(b.params.model)
}
