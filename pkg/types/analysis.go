// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// StageID names one specialist role in the analysis pipeline.
type StageID string

const (
	StageMarketAnalyst       StageID = "market_analyst"
	StageCostPredictor       StageID = "cost_predictor"
	StageBusinessStrategist  StageID = "business_strategist"
	StageMonetization        StageID = "monetization"
	StageLegalAdvisor        StageID = "legal_advisor"
	StageTechArchitect       StageID = "tech_architect"
	StageStrategistSynthesis StageID = "strategist_synthesis"
	StageCriticReview        StageID = "critic_review"
	StageFinalRefinement     StageID = "final_refinement"
)

// Field names one text field of AnalysisState.
type Field string

const (
	FieldStartupIdea         Field = "startup_idea"
	FieldTargetMarket        Field = "target_market"
	FieldMarketAnalysis      Field = "market_analysis"
	FieldCostPrediction      Field = "cost_prediction"
	FieldBusinessStrategy    Field = "business_strategy"
	FieldMonetization        Field = "monetization"
	FieldLegalConsiderations Field = "legal_considerations"
	FieldTechStack           Field = "tech_stack"
	FieldStrategistSynthesis Field = "strategist_synthesis"
	FieldCriticReview        Field = "critic_review"
	FieldFinalStrategy       Field = "final_strategy"
)

// IsInput reports whether f is set at initialization rather than by a stage.
func (f Field) IsInput() bool {
	return f == FieldStartupIdea || f == FieldTargetMarket
}

var (
	// ErrFieldWritten is returned when an update targets a field that
	// already holds a value or is an input field.
	ErrFieldWritten = errors.New("field already written")

	// ErrUnknownField is returned for a Field that AnalysisState does not have.
	ErrUnknownField = errors.New("unknown state field")
)

// AnalysisState is the record threaded through the pipeline. It is a value
// type: stages receive a snapshot and return an Update, and the workflow
// merges the update into a new snapshot with With.
type AnalysisState struct {
	StartupIdea  string `json:"startup_idea" yaml:"startup_idea"`
	TargetMarket string `json:"target_market,omitempty" yaml:"target_market,omitempty"`

	MarketAnalysis      string `json:"market_analysis,omitempty" yaml:"market_analysis,omitempty"`
	CostPrediction      string `json:"cost_prediction,omitempty" yaml:"cost_prediction,omitempty"`
	BusinessStrategy    string `json:"business_strategy,omitempty" yaml:"business_strategy,omitempty"`
	Monetization        string `json:"monetization,omitempty" yaml:"monetization,omitempty"`
	LegalConsiderations string `json:"legal_considerations,omitempty" yaml:"legal_considerations,omitempty"`
	TechStack           string `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"`
	StrategistSynthesis string `json:"strategist_synthesis,omitempty" yaml:"strategist_synthesis,omitempty"`
	CriticReview        string `json:"critic_review,omitempty" yaml:"critic_review,omitempty"`
	FinalStrategy       string `json:"final_strategy,omitempty" yaml:"final_strategy,omitempty"`
}

// NewAnalysisState returns the initial state for one analysis request with
// every output field empty.
func NewAnalysisState(startupIdea, targetMarket string) AnalysisState {
	return AnalysisState{StartupIdea: startupIdea, TargetMarket: targetMarket}
}

// Update is the partial state a stage returns: exactly one output field.
type Update struct {
	Field Field
	Text  string
}

func (s *AnalysisState) ref(f Field) *string {
	switch f {
	case FieldStartupIdea:
		return &s.StartupIdea
	case FieldTargetMarket:
		return &s.TargetMarket
	case FieldMarketAnalysis:
		return &s.MarketAnalysis
	case FieldCostPrediction:
		return &s.CostPrediction
	case FieldBusinessStrategy:
		return &s.BusinessStrategy
	case FieldMonetization:
		return &s.Monetization
	case FieldLegalConsiderations:
		return &s.LegalConsiderations
	case FieldTechStack:
		return &s.TechStack
	case FieldStrategistSynthesis:
		return &s.StrategistSynthesis
	case FieldCriticReview:
		return &s.CriticReview
	case FieldFinalStrategy:
		return &s.FinalStrategy
	}
	return nil
}

// Get returns the value of field f, or "" for unknown fields.
func (s AnalysisState) Get(f Field) string {
	if p := s.ref(f); p != nil {
		return *p
	}
	return ""
}

// Has reports whether f is a known field.
func (s AnalysisState) Has(f Field) bool {
	return s.ref(f) != nil
}

// With returns a copy of s with u applied. The receiver is not modified.
// Input fields and fields that already hold text cannot be written.
func (s AnalysisState) With(u Update) (AnalysisState, error) {
	next := s
	p := next.ref(u.Field)
	if p == nil {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, u.Field)
	}
	if u.Field.IsInput() {
		return s, fmt.Errorf("%w: %s is an input field", ErrFieldWritten, u.Field)
	}
	if *p != "" {
		return s, fmt.Errorf("%w: %s", ErrFieldWritten, u.Field)
	}
	*p = u.Text
	return next, nil
}

// Analysis holds the seven externally visible result fields. StrategistCritique
// carries the post-critique refined strategy, not the raw critique.
type Analysis struct {
	MarketAnalysis      string `json:"marketAnalysis" yaml:"market_analysis"`
	CostPrediction      string `json:"costPrediction" yaml:"cost_prediction"`
	BusinessStrategy    string `json:"businessStrategy" yaml:"business_strategy"`
	Monetization        string `json:"monetization" yaml:"monetization"`
	LegalConsiderations string `json:"legalConsiderations" yaml:"legal_considerations"`
	TechStack           string `json:"techStack" yaml:"tech_stack"`
	StrategistCritique  string `json:"strategistCritique" yaml:"strategist_critique"`
}

// Complete reports whether every result field is non-empty.
func (a Analysis) Complete() bool {
	for _, v := range []string{
		a.MarketAnalysis, a.CostPrediction, a.BusinessStrategy, a.Monetization,
		a.LegalConsiderations, a.TechStack, a.StrategistCritique,
	} {
		if v == "" {
			return false
		}
	}
	return true
}

// Result is the projection of a finished AnalysisState returned to callers.
type Result struct {
	StartupIdea  string   `json:"startupIdea" yaml:"startup_idea"`
	TargetMarket string   `json:"targetMarket,omitempty" yaml:"target_market,omitempty"`
	Analysis     Analysis `json:"analysis" yaml:"analysis"`
}

// Project projects the final state into a Result. The synthesis and the raw
// critique are internal to the pipeline and are dropped here.
func (s AnalysisState) Project() Result {
	return Result{
		StartupIdea:  s.StartupIdea,
		TargetMarket: s.TargetMarket,
		Analysis: Analysis{
			MarketAnalysis:      s.MarketAnalysis,
			CostPrediction:      s.CostPrediction,
			BusinessStrategy:    s.BusinessStrategy,
			Monetization:        s.Monetization,
			LegalConsiderations: s.LegalConsiderations,
			TechStack:           s.TechStack,
			StrategistCritique:  s.FinalStrategy,
		},
	}
}
