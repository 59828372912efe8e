// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/pdiddy/startup-analyzer/internal/analysis"
	"github.com/pdiddy/startup-analyzer/internal/llm"
	"github.com/pdiddy/startup-analyzer/internal/project"
	"github.com/pdiddy/startup-analyzer/internal/telemetry"
	"github.com/pdiddy/startup-analyzer/internal/workflow"
)

const tracerName = "github.com/pdiddy/startup-analyzer/cmd/startup-analyzer"

// pipeline holds the analyzer and the resources that must be released
// when the command finishes.
type pipeline struct {
	analyzer *analysis.Analyzer
	tracker  *llm.Tracker
	shutdown func(context.Context) error
}

// newPipeline builds the model client, tracing, and analyzer from cfg.
// observer may be nil.
func newPipeline(ctx context.Context, observer func(workflow.Event)) (*pipeline, error) {
	tp, err := telemetry.InitTracing(ctx, logger, version)
	if err != nil {
		return nil, err
	}

	tracker := llm.NewTracker()
	gen, err := llm.New(ctx, cfg.Model, creds, tracker)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	if m, ok := gen.(interface{ Model() string }); ok {
		logger.Debug("model client ready", "provider", cfg.Model.Provider, "model", m.Model())
	}

	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithTracer(tp.Tracer(tracerName)),
	}
	if observer != nil {
		opts = append(opts, analysis.WithObserver(observer))
	}
	a, err := analysis.New(gen, opts...)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return &pipeline{analyzer: a, tracker: tracker, shutdown: tp.Shutdown}, nil
}

// openStore opens the project database at the configured path.
func openStore() (*project.Store, error) {
	return project.Open(cfg.Store.Path)
}
