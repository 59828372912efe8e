// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package project persists analysis projects in SQLite: the idea, its
// target market, the seven result fields, and a status that tracks the
// analysis lifecycle.
package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// ErrNotFound is returned when no project has the requested id.
var ErrNotFound = errors.New("project not found")

// ErrInvalidStatus is returned by SetStatus and List for an unknown status.
var ErrInvalidStatus = errors.New("invalid project status")

// timeLayout is fixed width so stored timestamps sort lexically in time
// order. Parsing uses RFC3339Nano, which accepts any fraction length.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the projects SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and creates the schema if it
// does not exist. The special path ":memory:" opens a private in-memory
// database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			startup_idea TEXT NOT NULL,
			target_market TEXT NOT NULL DEFAULT '',
			market_analysis TEXT NOT NULL DEFAULT '',
			cost_prediction TEXT NOT NULL DEFAULT '',
			business_strategy TEXT NOT NULL DEFAULT '',
			monetization TEXT NOT NULL DEFAULT '',
			legal_considerations TEXT NOT NULL DEFAULT '',
			tech_stack TEXT NOT NULL DEFAULT '',
			strategist_critique TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			error TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create inserts a pending project for idea and returns it.
func (s *Store) Create(ctx context.Context, idea, targetMarket string) (types.Project, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return types.Project{}, errors.New("startup idea is required")
	}
	now := s.now()
	p := types.Project{
		ID:           uuid.NewString(),
		StartupIdea:  idea,
		TargetMarket: strings.TrimSpace(targetMarket),
		Status:       types.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, startup_idea, target_market, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.StartupIdea, p.TargetMarket, string(p.Status),
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return types.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	return p, nil
}

const selectColumns = `SELECT id, startup_idea, target_market,
	market_analysis, cost_prediction, business_strategy, monetization,
	legal_considerations, tech_stack, strategist_critique,
	status, error, created_at, updated_at
	FROM projects`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (types.Project, error) {
	var (
		p                types.Project
		status           string
		created, updated string
	)
	err := row.Scan(&p.ID, &p.StartupIdea, &p.TargetMarket,
		&p.Analysis.MarketAnalysis, &p.Analysis.CostPrediction,
		&p.Analysis.BusinessStrategy, &p.Analysis.Monetization,
		&p.Analysis.LegalConsiderations, &p.Analysis.TechStack,
		&p.Analysis.StrategistCritique,
		&status, &p.Error, &created, &updated,
	)
	if err != nil {
		return types.Project{}, err
	}
	p.Status = types.ProjectStatus(status)
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return types.Project{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return types.Project{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}

// Get returns the project with id.
func (s *Store) Get(ctx context.Context, id string) (types.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.Project{}, fmt.Errorf("querying project %s: %w", id, err)
	}
	return p, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Status restricts results to one status. Empty means all.
	Status types.ProjectStatus

	// Query matches a substring of the startup idea, case-insensitively.
	Query string

	// Limit caps the result count. Zero means no limit.
	Limit int
}

// List returns projects newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Project, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(selectColumns + ` WHERE 1=1`)

	if opts.Status != "" {
		if !opts.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, opts.Status)
		}
		qb.WriteString(` AND status = ?`)
		args = append(args, string(opts.Status))
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		qb.WriteString(` AND startup_idea LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q)+"%")
	}
	qb.WriteString(` ORDER BY created_at DESC, rowid DESC`)
	if opts.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var out []types.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// SetStatus moves a project to status. errMsg is stored for failed
// projects and cleared otherwise.
func (s *Store) SetStatus(ctx context.Context, id string, status types.ProjectStatus, errMsg string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if status != types.StatusFailed {
		errMsg = ""
	}
	return s.update(ctx, id,
		`UPDATE projects SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), errMsg, s.now().Format(timeLayout), id,
	)
}

// SaveResult stores a finished analysis and marks the project completed.
func (s *Store) SaveResult(ctx context.Context, id string, a types.Analysis) error {
	return s.update(ctx, id,
		`UPDATE projects SET
			market_analysis = ?, cost_prediction = ?, business_strategy = ?,
			monetization = ?, legal_considerations = ?, tech_stack = ?,
			strategist_critique = ?, status = ?, error = '', updated_at = ?
		 WHERE id = ?`,
		a.MarketAnalysis, a.CostPrediction, a.BusinessStrategy,
		a.Monetization, a.LegalConsiderations, a.TechStack,
		a.StrategistCritique, string(types.StatusCompleted),
		s.now().Format(timeLayout), id,
	)
}

// Delete removes the project with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.update(ctx, id, `DELETE FROM projects WHERE id = ?`, id)
}

// update runs a single-row statement and maps zero affected rows to ErrNotFound.
func (s *Store) update(ctx context.Context, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
