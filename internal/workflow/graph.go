// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow declares a stage graph and compiles it into a runnable
// plan. Graphs are validated once at Compile; a compiled Plan is immutable
// and may be invoked concurrently with independent initial states.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// End is the terminal marker. Exactly one edge must point to it.
const End types.StageID = "__end__"

// ErrGraphConfiguration is returned by Compile when the declared graph is
// not a single path from the entry point to End.
var ErrGraphConfiguration = errors.New("graph configuration error")

// NodeFunc is one stage. It receives a snapshot of the state and returns the
// single field it produces.
type NodeFunc func(ctx context.Context, state types.AnalysisState) (types.Update, error)

// Graph is a builder for a stage graph. It is not safe for concurrent use.
type Graph struct {
	nodes map[types.StageID]NodeFunc
	added []types.StageID
	entry types.StageID
	edges map[types.StageID][]types.StageID
	errs  []error
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[types.StageID]NodeFunc),
		edges: make(map[types.StageID][]types.StageID),
	}
}

// AddNode registers fn under id. Registration problems are reported by Compile.
func (g *Graph) AddNode(id types.StageID, fn NodeFunc) *Graph {
	switch {
	case id == "" || id == End:
		g.errs = append(g.errs, configError("invalid node id %q", id))
	case fn == nil:
		g.errs = append(g.errs, configError("node %s has no function", id))
	default:
		if _, dup := g.nodes[id]; dup {
			g.errs = append(g.errs, configError("node %s registered twice", id))
			return g
		}
		g.nodes[id] = fn
		g.added = append(g.added, id)
	}
	return g
}

// SetEntryPoint names the first stage.
func (g *Graph) SetEntryPoint(id types.StageID) *Graph {
	g.entry = id
	return g
}

// AddEdge declares that to runs after from.
func (g *Graph) AddEdge(from, to types.StageID) *Graph {
	g.edges[from] = append(g.edges[from], to)
	return g
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGraphConfiguration, fmt.Sprintf(format, args...))
}

// Compile validates the graph and returns a Plan. Every problem found is
// reported, joined into one error that matches ErrGraphConfiguration.
func (g *Graph) Compile(opts ...Option) (*Plan, error) {
	errs := slices.Clone(g.errs)

	if len(g.nodes) == 0 {
		errs = append(errs, configError("graph has no nodes"))
		return nil, errors.Join(errs...)
	}
	switch {
	case g.entry == "":
		errs = append(errs, configError("entry point not set"))
	case g.nodes[g.entry] == nil:
		errs = append(errs, configError("entry point %s is not a registered node", g.entry))
	}

	sources := make([]types.StageID, 0, len(g.edges))
	for from := range g.edges {
		sources = append(sources, from)
	}
	slices.Sort(sources)

	toEnd := 0
	for _, from := range sources {
		targets := g.edges[from]
		if g.nodes[from] == nil {
			errs = append(errs, configError("edge from unregistered node %s", from))
		}
		if len(targets) > 1 {
			errs = append(errs, configError("node %s has %d outgoing edges", from, len(targets)))
		}
		for _, to := range targets {
			if to == End {
				toEnd++
				continue
			}
			if g.nodes[to] == nil {
				errs = append(errs, configError("edge %s -> %s targets an unregistered node", from, to))
			}
			if to == g.entry {
				errs = append(errs, configError("edge %s -> %s points back to the entry point", from, to))
			}
		}
	}
	for _, id := range g.added {
		if len(g.edges[id]) == 0 {
			errs = append(errs, configError("node %s has no outgoing edge", id))
		}
	}
	if toEnd != 1 {
		errs = append(errs, configError("graph has %d edges to end, want 1", toEnd))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	seq, err := g.walk()
	if err != nil {
		return nil, err
	}

	p := &Plan{steps: make([]step, len(seq))}
	for i, id := range seq {
		p.steps[i] = step{id: id, fn: g.nodes[id]}
	}
	for _, opt := range opts {
		opt(p)
	}
	p.setDefaults()
	return p, nil
}

// walk follows single edges from the entry point to End. Structural checks
// have already passed, so only cycles and unreachable nodes remain.
func (g *Graph) walk() ([]types.StageID, error) {
	var seq []types.StageID
	visited := make(map[types.StageID]bool, len(g.nodes))
	for id := g.entry; id != End; id = g.edges[id][0] {
		if visited[id] {
			path := make([]string, 0, len(seq)+1)
			for _, s := range seq {
				path = append(path, string(s))
			}
			path = append(path, string(id))
			return nil, configError("cycle detected: %s", strings.Join(path, " -> "))
		}
		visited[id] = true
		seq = append(seq, id)
	}

	var unreachable []string
	for _, id := range g.added {
		if !visited[id] {
			unreachable = append(unreachable, string(id))
		}
	}
	if len(unreachable) > 0 {
		return nil, configError("unreachable nodes: %s", strings.Join(unreachable, ", "))
	}
	return seq, nil
}
