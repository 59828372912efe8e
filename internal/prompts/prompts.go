// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompts holds the fixed role instruction for every pipeline stage.
// The table is built once at package init and never modified, so it is safe
// to read from any number of concurrent analyses.
package prompts

import (
	"errors"
	"fmt"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// ErrUnknownStage is returned by Lookup for an identifier outside the
// nine pipeline stages.
var ErrUnknownStage = errors.New("unknown stage")

// order lists the stages in pipeline order.
var order = []types.StageID{
	types.StageMarketAnalyst,
	types.StageCostPredictor,
	types.StageBusinessStrategist,
	types.StageMonetization,
	types.StageLegalAdvisor,
	types.StageTechArchitect,
	types.StageStrategistSynthesis,
	types.StageCriticReview,
	types.StageFinalRefinement,
}

var instructions = map[types.StageID]string{
	types.StageMarketAnalyst:       marketAnalyst,
	types.StageCostPredictor:       costPredictor,
	types.StageBusinessStrategist:  businessStrategist,
	types.StageMonetization:        monetization,
	types.StageLegalAdvisor:        legalAdvisor,
	types.StageTechArchitect:       techArchitect,
	types.StageStrategistSynthesis: strategistSynthesis,
	types.StageCriticReview:        criticReview,
	types.StageFinalRefinement:     finalRefinement,
}

// Lookup returns the role instruction for id.
func Lookup(id types.StageID) (string, error) {
	text, ok := instructions[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, id)
	}
	return text, nil
}

// Must is Lookup for identifiers known at compile time. It panics on an
// unknown stage.
func Must(id types.StageID) string {
	text, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return text
}

// Stages returns the stage identifiers in pipeline order. The returned slice
// is a copy.
func Stages() []types.StageID {
	out := make([]types.StageID, len(order))
	copy(out, order)
	return out
}

// Title returns a human-readable role name for id, used in progress output
// and reports.
func Title(id types.StageID) string {
	switch id {
	case types.StageMarketAnalyst:
		return "Market Analyst"
	case types.StageCostPredictor:
		return "Cost Predictor"
	case types.StageBusinessStrategist:
		return "Business Strategist"
	case types.StageMonetization:
		return "Monetization Expert"
	case types.StageLegalAdvisor:
		return "Legal Advisor"
	case types.StageTechArchitect:
		return "Tech Architect"
	case types.StageStrategistSynthesis:
		return "Strategist"
	case types.StageCriticReview:
		return "Critic"
	case types.StageFinalRefinement:
		return "Final Refinement"
	}
	return string(id)
}
