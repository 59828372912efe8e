// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

const tracerName = "github.com/pdiddy/startup-analyzer/internal/workflow"

// EventKind identifies a point in a stage's lifecycle.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventCompleted EventKind = "completed"
	EventFailed    EventKind = "failed"
)

// Event reports stage progress to an observer.
type Event struct {
	Kind    EventKind
	Stage   types.StageID
	Index   int // zero-based
	Total   int
	Elapsed time.Duration
	Err     error
}

// StageError wraps the error returned by a failing stage.
type StageError struct {
	Stage types.StageID
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Option configures a Plan at Compile.
type Option func(*Plan)

// WithLogger sets the logger for stage progress.
func WithLogger(l *slog.Logger) Option {
	return func(p *Plan) { p.logger = l }
}

// WithTracer sets the tracer used for per-stage spans.
func WithTracer(t trace.Tracer) Option {
	return func(p *Plan) { p.tracer = t }
}

// WithObserver registers fn to receive stage events. fn is called
// synchronously from Invoke.
func WithObserver(fn func(Event)) Option {
	return func(p *Plan) { p.observer = fn }
}

type step struct {
	id types.StageID
	fn NodeFunc
}

// Plan is a compiled graph.
type Plan struct {
	steps    []step
	logger   *slog.Logger
	tracer   trace.Tracer
	observer func(Event)
}

func (p *Plan) setDefaults() {
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}
	if p.observer == nil {
		p.observer = func(Event) {}
	}
}

// Stages returns the stage identifiers in execution order.
func (p *Plan) Stages() []types.StageID {
	out := make([]types.StageID, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.id
	}
	return out
}

// Invoke runs every stage in order, merging each update into the state.
// The first failure aborts the run; no partial state is returned.
func (p *Plan) Invoke(ctx context.Context, initial types.AnalysisState) (types.AnalysisState, error) {
	state := initial
	total := len(p.steps)

	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.WarnContext(ctx, "workflow cancelled", "stage", s.id, "error", err)
			return types.AnalysisState{}, &StageError{Stage: s.id, Err: err}
		}

		next, err := p.run(ctx, i, total, s, state)
		if err != nil {
			return types.AnalysisState{}, err
		}
		state = next
	}
	return state, nil
}

func (p *Plan) run(ctx context.Context, index, total int, s step, state types.AnalysisState) (types.AnalysisState, error) {
	ctx, span := p.tracer.Start(ctx, "stage "+string(s.id),
		trace.WithAttributes(
			attribute.String("stage.id", string(s.id)),
			attribute.Int("stage.index", index),
		),
	)
	defer span.End()

	p.observer(Event{Kind: EventStarted, Stage: s.id, Index: index, Total: total})
	p.logger.DebugContext(ctx, "stage started", "stage", s.id, "index", index+1, "total", total)

	start := time.Now()
	next, err := p.apply(ctx, s, state)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.observer(Event{Kind: EventFailed, Stage: s.id, Index: index, Total: total, Elapsed: elapsed, Err: err})
		p.logger.ErrorContext(ctx, "stage failed", "stage", s.id, "elapsed", elapsed, "error", err)
		return types.AnalysisState{}, &StageError{Stage: s.id, Err: err}
	}

	span.SetStatus(codes.Ok, "")
	p.observer(Event{Kind: EventCompleted, Stage: s.id, Index: index, Total: total, Elapsed: elapsed})
	p.logger.InfoContext(ctx, "stage completed", "stage", s.id, "elapsed", elapsed)
	return next, nil
}

func (p *Plan) apply(ctx context.Context, s step, state types.AnalysisState) (types.AnalysisState, error) {
	update, err := s.fn(ctx, state)
	if err != nil {
		return types.AnalysisState{}, err
	}
	return state.With(update)
}
