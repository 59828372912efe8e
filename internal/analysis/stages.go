// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"strings"

	"github.com/pdiddy/startup-analyzer/internal/workflow"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// previewLimit is the number of characters of the market and cost analyses
// quoted to the critic alongside the full synthesis.
const previewLimit = 2000

// Stage describes one pipeline step: which fields it reads, the single field
// it writes, and how its context string is built from the state.
type Stage struct {
	ID      types.StageID
	Reads   []types.Field
	Writes  types.Field
	Context func(types.AnalysisState) string
}

var (
	inputs      = []types.Field{types.FieldStartupIdea, types.FieldTargetMarket}
	specialists = []types.Field{
		types.FieldMarketAnalysis,
		types.FieldCostPrediction,
		types.FieldBusinessStrategy,
		types.FieldMonetization,
		types.FieldLegalConsiderations,
		types.FieldTechStack,
	}
)

// Pipeline returns the nine stages in execution order.
func Pipeline() []Stage {
	specialist := func(id types.StageID, out types.Field) Stage {
		return Stage{ID: id, Reads: inputs, Writes: out, Context: UserContext}
	}
	return []Stage{
		specialist(types.StageMarketAnalyst, types.FieldMarketAnalysis),
		specialist(types.StageCostPredictor, types.FieldCostPrediction),
		specialist(types.StageBusinessStrategist, types.FieldBusinessStrategy),
		specialist(types.StageMonetization, types.FieldMonetization),
		specialist(types.StageLegalAdvisor, types.FieldLegalConsiderations),
		specialist(types.StageTechArchitect, types.FieldTechStack),
		{
			ID:      types.StageStrategistSynthesis,
			Reads:   append(append([]types.Field{}, inputs...), specialists...),
			Writes:  types.FieldStrategistSynthesis,
			Context: SynthesisContext,
		},
		{
			ID: types.StageCriticReview,
			Reads: []types.Field{
				types.FieldStartupIdea,
				types.FieldStrategistSynthesis,
				types.FieldMarketAnalysis,
				types.FieldCostPrediction,
			},
			Writes:  types.FieldCriticReview,
			Context: CritiqueContext,
		},
		{
			ID:      types.StageFinalRefinement,
			Reads:   []types.Field{types.FieldStrategistSynthesis, types.FieldCriticReview},
			Writes:  types.FieldFinalStrategy,
			Context: RefinementContext,
		},
	}
}

// ValidatePipeline checks that every stage reads only inputs or fields
// written by an earlier stage, and that each output field has one writer.
func ValidatePipeline(stages []Stage) error {
	var probe types.AnalysisState
	available := map[types.Field]bool{}
	for _, f := range inputs {
		available[f] = true
	}
	seen := map[types.StageID]bool{}

	for _, st := range stages {
		switch {
		case st.ID == "":
			return fmt.Errorf("%w: stage without id", workflow.ErrGraphConfiguration)
		case seen[st.ID]:
			return fmt.Errorf("%w: stage %s declared twice", workflow.ErrGraphConfiguration, st.ID)
		case st.Context == nil:
			return fmt.Errorf("%w: stage %s has no context builder", workflow.ErrGraphConfiguration, st.ID)
		case !probe.Has(st.Writes):
			return fmt.Errorf("%w: stage %s writes unknown field %q", workflow.ErrGraphConfiguration, st.ID, st.Writes)
		case st.Writes.IsInput():
			return fmt.Errorf("%w: stage %s writes input field %s", workflow.ErrGraphConfiguration, st.ID, st.Writes)
		case available[st.Writes]:
			return fmt.Errorf("%w: field %s has more than one writer (%s)", workflow.ErrGraphConfiguration, st.Writes, st.ID)
		}
		for _, f := range st.Reads {
			if !available[f] {
				return fmt.Errorf("%w: stage %s reads %s before it is written", workflow.ErrGraphConfiguration, st.ID, f)
			}
		}
		seen[st.ID] = true
		available[st.Writes] = true
	}
	return nil
}

// UserContext is the context every specialist receives.
func UserContext(s types.AnalysisState) string {
	ctx := "Startup Idea: " + s.StartupIdea
	if s.TargetMarket != "" {
		ctx += "\nTarget Market: " + s.TargetMarket
	}
	return ctx
}

// SynthesisContext labels the six specialist outputs in pipeline order.
func SynthesisContext(s types.AnalysisState) string {
	var b strings.Builder
	b.WriteString("\nOriginal Startup Idea: " + s.StartupIdea + "\n")
	if s.TargetMarket != "" {
		b.WriteString("Target Market: " + s.TargetMarket)
	}
	b.WriteString("\n")

	sections := []struct {
		header string
		body   string
	}{
		{"MARKET ANALYSIS", s.MarketAnalysis},
		{"COST PREDICTION", s.CostPrediction},
		{"BUSINESS STRATEGY", s.BusinessStrategy},
		{"MONETIZATION MODELS", s.Monetization},
		{"LEGAL CONSIDERATIONS", s.LegalConsiderations},
		{"TECHNOLOGY STACK", s.TechStack},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n=== %s ===\n%s", sec.header, sec.body)
	}
	b.WriteString("\n")
	return b.String()
}

// CritiqueContext carries the full synthesis plus previews of the market and
// cost analyses.
func CritiqueContext(s types.AnalysisState) string {
	return "\nOriginal Startup Idea: " + s.StartupIdea + "\n" +
		"\n=== STRATEGIST'S SYNTHESIZED PLAN ===\n" + s.StrategistSynthesis + "\n" +
		"\n=== KEY DATA FROM ANALYSES ===\n" +
		"Market Analysis Summary: " + preview(s.MarketAnalysis) + "...\n" +
		"Cost Estimates: " + preview(s.CostPrediction) + "...\n"
}

// RefinementContext carries the full synthesis and the full critique.
func RefinementContext(s types.AnalysisState) string {
	return "\n=== YOUR ORIGINAL SYNTHESIZED PLAN ===\n" + s.StrategistSynthesis + "\n" +
		"\n=== CRITIC'S REVIEW ===\n" + s.CriticReview + "\n" +
		"\nBased on this feedback, provide a refined final strategy that addresses the valid concerns while maintaining strategic coherence.\n"
}

// preview returns the first previewLimit characters of s.
func preview(s string) string {
	n := 0
	for i := range s {
		if n == previewLimit {
			return s[:i]
		}
		n++
	}
	return s
}
