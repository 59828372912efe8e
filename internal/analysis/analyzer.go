// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis wires the nine role stages onto a compiled workflow and
// exposes the single entry point, Analyzer.Run.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdiddy/startup-analyzer/internal/llm"
	"github.com/pdiddy/startup-analyzer/internal/prompts"
	"github.com/pdiddy/startup-analyzer/internal/workflow"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// ErrEmptyIdea is returned by Run when the startup idea is blank.
var ErrEmptyIdea = errors.New("startup idea is required")

// Option configures an Analyzer.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	observer func(workflow.Event)
	stages   []Stage
}

// WithLogger sets the logger used for run and stage logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithTracer sets the tracer used for per-stage spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// WithObserver receives stage progress events from every run.
func WithObserver(fn func(workflow.Event)) Option {
	return func(s *settings) { s.observer = fn }
}

// Analyzer runs the full pipeline. The plan is compiled once; Run may be
// called concurrently.
type Analyzer struct {
	plan   *workflow.Plan
	logger *slog.Logger
}

// New validates the pipeline, resolves every role instruction, and compiles
// the workflow. Errors match workflow.ErrGraphConfiguration or
// prompts.ErrUnknownStage.
func New(gen llm.Generator, opts ...Option) (*Analyzer, error) {
	s := settings{stages: Pipeline()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: no model client", llm.ErrConfiguration)
	}

	g, err := buildGraph(gen, s.stages)
	if err != nil {
		return nil, err
	}

	wopts := []workflow.Option{workflow.WithLogger(s.logger)}
	if s.tracer != nil {
		wopts = append(wopts, workflow.WithTracer(s.tracer))
	}
	if s.observer != nil {
		wopts = append(wopts, workflow.WithObserver(s.observer))
	}
	plan, err := g.Compile(wopts...)
	if err != nil {
		return nil, fmt.Errorf("compiling workflow: %w", err)
	}
	return &Analyzer{plan: plan, logger: s.logger}, nil
}

// buildGraph declares one node per stage chained in order.
func buildGraph(gen llm.Generator, stages []Stage) (*workflow.Graph, error) {
	if err := ValidatePipeline(stages); err != nil {
		return nil, err
	}
	g := workflow.New()
	for i, st := range stages {
		instruction, err := prompts.Lookup(st.ID)
		if err != nil {
			return nil, err
		}
		g.AddNode(st.ID, stageNode(gen, st, instruction))
		if i == 0 {
			g.SetEntryPoint(st.ID)
		} else {
			g.AddEdge(stages[i-1].ID, st.ID)
		}
	}
	if len(stages) > 0 {
		g.AddEdge(stages[len(stages)-1].ID, workflow.End)
	}
	return g, nil
}

func stageNode(gen llm.Generator, st Stage, instruction string) workflow.NodeFunc {
	return func(ctx context.Context, state types.AnalysisState) (types.Update, error) {
		text, err := gen.Generate(ctx, instruction, st.Context(state))
		if err != nil {
			return types.Update{}, err
		}
		if strings.TrimSpace(text) == "" {
			return types.Update{}, fmt.Errorf("%w: %s returned no text", llm.ErrUpstream, st.ID)
		}
		return types.Update{Field: st.Writes, Text: text}, nil
	}
}

// Stages returns the stage identifiers in execution order.
func (a *Analyzer) Stages() []types.StageID {
	return a.plan.Stages()
}

// Run analyzes one startup idea. targetMarket may be empty. On any stage
// failure the run is aborted and no partial result is returned.
func (a *Analyzer) Run(ctx context.Context, idea, targetMarket string) (types.Result, error) {
	idea = strings.TrimSpace(idea)
	targetMarket = strings.TrimSpace(targetMarket)
	if idea == "" {
		return types.Result{}, ErrEmptyIdea
	}

	runID := uuid.NewString()
	log := a.logger.With("run", runID)
	log.InfoContext(ctx, "analysis started", "idea_chars", len(idea), "target_market", targetMarket != "")

	start := time.Now()
	final, err := a.plan.Invoke(ctx, types.NewAnalysisState(idea, targetMarket))
	if err != nil {
		log.ErrorContext(ctx, "analysis failed", "elapsed", time.Since(start), "error", err)
		return types.Result{}, err
	}

	res := final.Project()
	if !res.Analysis.Complete() {
		err := fmt.Errorf("%w: analysis finished with empty result fields", llm.ErrUpstream)
		log.ErrorContext(ctx, "analysis failed", "elapsed", time.Since(start), "error", err)
		return types.Result{}, err
	}

	log.InfoContext(ctx, "analysis completed", "elapsed", time.Since(start))
	return res, nil
}

// Progress returns an observer that writes one line per stage event to w.
func Progress(w io.Writer) func(workflow.Event) {
	return func(e workflow.Event) {
		title := prompts.Title(e.Stage)
		switch e.Kind {
		case workflow.EventStarted:
			fmt.Fprintf(w, "[%d/%d] %s...\n", e.Index+1, e.Total, title)
		case workflow.EventCompleted:
			fmt.Fprintf(w, "[%d/%d] %s done (%s)\n", e.Index+1, e.Total, title, e.Elapsed.Round(time.Millisecond))
		case workflow.EventFailed:
			fmt.Fprintf(w, "[%d/%d] %s failed: %v\n", e.Index+1, e.Total, title, e.Err)
		}
	}
}
