// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ProjectStatus tracks a submitted idea through analysis.
type ProjectStatus string

const (
	StatusPending   ProjectStatus = "pending"
	StatusAnalyzing ProjectStatus = "analyzing"
	StatusCompleted ProjectStatus = "completed"
	StatusFailed    ProjectStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAnalyzing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Project is a stored startup idea and, once analyzed, its result.
type Project struct {
	// ID is a UUID assigned by the store.
	ID string `json:"id" yaml:"id"`

	StartupIdea  string `json:"startupIdea" yaml:"startup_idea"`
	TargetMarket string `json:"targetMarket,omitempty" yaml:"target_market,omitempty"`

	// Analysis is empty until Status is completed.
	Analysis Analysis `json:"analysis" yaml:"analysis"`

	Status ProjectStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}
