// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package project

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedClock makes the store hand out increasing timestamps one second apart.
func fixedClock(s *Store) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

var sampleAnalysis = types.Analysis{
	MarketAnalysis:      "market",
	CostPrediction:      "cost",
	BusinessStrategy:    "strategy",
	Monetization:        "money",
	LegalConsiderations: "legal",
	TechStack:           "tech",
	StrategistCritique:  "final",
}

func TestCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "  Meal kits for students ", "universities")
	require.NoError(t, err)

	_, err = uuid.Parse(p.ID)
	require.NoError(t, err, "id is a uuid")
	assert.Equal(t, "Meal kits for students", p.StartupIdea)
	assert.Equal(t, types.StatusPending, p.Status)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "universities", got.TargetMarket)
	assert.Equal(t, types.StatusPending, got.Status)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, types.Analysis{}, got.Analysis)
}

func TestCreateRequiresIdea(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Create(context.Background(), "   ", "")
	require.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStatusLifecycle(t *testing.T) {
	s := openTestStore(t)
	fixedClock(s)
	ctx := context.Background()

	p, err := s.Create(ctx, "idea", "")
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, p.ID, types.StatusAnalyzing, "ignored"))
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusAnalyzing, got.Status)
	assert.Empty(t, got.Error, "error only kept for failed")
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.NoError(t, s.SetStatus(ctx, p.ID, types.StatusFailed, "upstream error: HTTP 503"))
	got, err = s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, got.Status)
	assert.Equal(t, "upstream error: HTTP 503", got.Error)

	require.NoError(t, s.SaveResult(ctx, p.ID, sampleAnalysis))
	got, err = s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, got.Status)
	assert.Empty(t, got.Error)
	assert.Equal(t, sampleAnalysis, got.Analysis)
}

func TestUpdatesOnMissingProject(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	assert.ErrorIs(t, s.SetStatus(ctx, id, types.StatusAnalyzing, ""), ErrNotFound)
	assert.ErrorIs(t, s.SaveResult(ctx, id, sampleAnalysis), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.SetStatus(ctx, id, "archived", ""), ErrInvalidStatus)
}

func TestListNewestFirstWithFilters(t *testing.T) {
	s := openTestStore(t)
	fixedClock(s)
	ctx := context.Background()

	var ids []string
	for _, idea := range []string{"Dog walking app", "Solar kiosks", "Dog grooming van", "100% organic_tea"} {
		p, err := s.Create(ctx, idea, "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, s.SaveResult(ctx, ids[1], sampleAnalysis))

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"all", ListOptions{}, []string{ids[3], ids[2], ids[1], ids[0]}},
		{"limit", ListOptions{Limit: 2}, []string{ids[3], ids[2]}},
		{"status", ListOptions{Status: types.StatusCompleted}, []string{ids[1]}},
		{"query", ListOptions{Query: "dog"}, []string{ids[2], ids[0]}},
		{"query escapes wildcards", ListOptions{Query: "0% organic_"}, []string{ids[3]}},
		{"query no match", ListOptions{Query: "%_"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			var gotIDs []string
			for _, p := range got {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.want, gotIDs)
		})
	}

	_, err := s.List(ctx, ListOptions{Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListTiesOrderedByInsertion(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }
	ctx := context.Background()

	first, err := s.Create(ctx, "first", "")
	require.NoError(t, err)
	second, err := s.Create(ctx, "second", "")
	require.NoError(t, err)

	got, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestListSubSecondOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		older, newer time.Duration
	}{
		{"whole second before fraction", 0, 500 * time.Millisecond},
		{"short fraction before longer", 100 * time.Millisecond, 120 * time.Millisecond},
		{"fraction before next second", 900 * time.Millisecond, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			ctx := context.Background()

			s.now = func() time.Time { return base.Add(tt.older) }
			older, err := s.Create(ctx, "older", "")
			require.NoError(t, err)
			s.now = func() time.Time { return base.Add(tt.newer) }
			newer, err := s.Create(ctx, "newer", "")
			require.NoError(t, err)

			got, err := s.List(ctx, ListOptions{})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, newer.ID, got[0].ID, "newest first")
			assert.Equal(t, older.ID, got[1].ID)
			assert.True(t, got[0].CreatedAt.Equal(base.Add(tt.newer)))
		})
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "idea", "")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, p.ID))

	_, err = s.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	p, err := s.Create(ctx, "idea", "market")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "market", got.TargetMarket)
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Create(context.Background(), "idea", "")
	require.NoError(t, err)
	got, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
