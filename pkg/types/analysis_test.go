// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisStateOutputsEmpty(t *testing.T) {
	s := NewAnalysisState("idea", "market")
	assert.Equal(t, "idea", s.StartupIdea)
	assert.Equal(t, "market", s.TargetMarket)

	for _, f := range []Field{
		FieldMarketAnalysis, FieldCostPrediction, FieldBusinessStrategy,
		FieldMonetization, FieldLegalConsiderations, FieldTechStack,
		FieldStrategistSynthesis, FieldCriticReview, FieldFinalStrategy,
	} {
		assert.Empty(t, s.Get(f), "field %s", f)
		assert.True(t, s.Has(f), "field %s", f)
	}
}

func TestAnalysisStateWith(t *testing.T) {
	tests := []struct {
		name    string
		start   AnalysisState
		update  Update
		wantErr error
	}{
		{
			name:   "writes empty output field",
			start:  NewAnalysisState("idea", ""),
			update: Update{Field: FieldMarketAnalysis, Text: "M"},
		},
		{
			name:    "rejects second write",
			start:   AnalysisState{StartupIdea: "idea", MarketAnalysis: "M"},
			update:  Update{Field: FieldMarketAnalysis, Text: "M2"},
			wantErr: ErrFieldWritten,
		},
		{
			name:    "rejects input field",
			start:   NewAnalysisState("idea", ""),
			update:  Update{Field: FieldTargetMarket, Text: "other"},
			wantErr: ErrFieldWritten,
		},
		{
			name:    "rejects unknown field",
			start:   NewAnalysisState("idea", ""),
			update:  Update{Field: "nope", Text: "x"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.start
			got, err := tt.start.With(tt.update)
			assert.Equal(t, before, tt.start, "receiver must not change")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.update.Text, got.Get(tt.update.Field))
		})
	}
}

func TestAnalysisStateProject(t *testing.T) {
	s := AnalysisState{
		StartupIdea:         "idea",
		TargetMarket:        "market",
		MarketAnalysis:      "M",
		CostPrediction:      "C",
		BusinessStrategy:    "B",
		Monetization:        "$",
		LegalConsiderations: "L",
		TechStack:           "T",
		StrategistSynthesis: "S",
		CriticReview:        "R",
		FinalStrategy:       "F",
	}

	r := s.Project()
	assert.Equal(t, "idea", r.StartupIdea)
	assert.Equal(t, "market", r.TargetMarket)
	assert.Equal(t, Analysis{
		MarketAnalysis:      "M",
		CostPrediction:      "C",
		BusinessStrategy:    "B",
		Monetization:        "$",
		LegalConsiderations: "L",
		TechStack:           "T",
		StrategistCritique:  "F",
	}, r.Analysis)
	assert.True(t, r.Analysis.Complete())
}

func TestAnalysisComplete(t *testing.T) {
	a := Analysis{MarketAnalysis: "M"}
	assert.False(t, a.Complete())
	assert.False(t, Analysis{}.Complete())
}

func TestProjectStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusFailed.Valid())
	assert.False(t, ProjectStatus("archived").Valid())
}
