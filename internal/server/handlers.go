// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/startup-analyzer/internal/project"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Startup Analyzer API",
		"version": s.version,
		"endpoints": map[string]string{
			"analyze":  "/analyze",
			"projects": "/projects",
			"health":   "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type analyzeRequest struct {
	StartupIdea  string `json:"startupIdea"`
	TargetMarket string `json:"targetMarket"`
	ProjectID    string `json:"projectId"`
}

type analyzeResponse struct {
	Success   bool            `json:"success"`
	ProjectID *string         `json:"projectId"`
	Analysis  *types.Analysis `json:"analysis"`
	Error     *string         `json:"error"`
}

func analyzeFailure(w http.ResponseWriter, status int, projectID *string, msg string) {
	writeJSON(w, status, analyzeResponse{ProjectID: projectID, Error: &msg})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		analyzeFailure(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	if strings.TrimSpace(req.StartupIdea) == "" {
		analyzeFailure(w, http.StatusBadRequest, nil, "startupIdea is required")
		return
	}

	var projectID *string
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			analyzeFailure(w, http.StatusBadRequest, nil, "projectId must be a UUID")
			return
		}
		idStr := id.String()
		projectID = &idStr
	}

	track := projectID != nil && s.store != nil
	if track {
		if _, err := s.store.Get(ctx, *projectID); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, project.ErrNotFound) {
				status = http.StatusNotFound
			}
			analyzeFailure(w, status, projectID, err.Error())
			return
		}
		if err := s.store.SetStatus(ctx, *projectID, types.StatusAnalyzing, ""); err != nil {
			analyzeFailure(w, http.StatusInternalServerError, projectID, err.Error())
			return
		}
	}

	log := s.logger
	if projectID != nil {
		log = log.With("project", *projectID)
	}
	preview := []rune(req.StartupIdea)
	if len(preview) > 100 {
		preview = preview[:100]
	}
	log.InfoContext(ctx, "analysis requested", "idea", string(preview))

	res, err := s.analyzer.Run(ctx, req.StartupIdea, req.TargetMarket)

	// Status writes must land even if the client has gone away.
	storeCtx := context.WithoutCancel(ctx)
	if err != nil {
		log.ErrorContext(ctx, "analysis failed", "error", err)
		if track {
			if serr := s.store.SetStatus(storeCtx, *projectID, types.StatusFailed, err.Error()); serr != nil {
				log.ErrorContext(ctx, "recording failure", "error", serr)
			}
		}
		analyzeFailure(w, http.StatusInternalServerError, projectID, err.Error())
		return
	}

	if track {
		if err := s.store.SaveResult(storeCtx, *projectID, res.Analysis); err != nil {
			log.ErrorContext(ctx, "saving result", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, ProjectID: projectID, Analysis: &res.Analysis})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := project.ListOptions{
		Status: types.ProjectStatus(q.Get("status")),
		Query:  q.Get("q"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}

	projects, err := s.store.List(r.Context(), opts)
	if errors.Is(err, project.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []types.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

type createProjectRequest struct {
	StartupIdea  string `json:"startupIdea"`
	TargetMarket string `json:"targetMarket"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.StartupIdea) == "" {
		writeError(w, http.StatusBadRequest, "startupIdea is required")
		return
	}
	p, err := s.store.Create(r.Context(), req.StartupIdea, req.TargetMarket)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// projectID validates the {id} path value.
func projectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "project id must be a UUID")
		return "", false
	}
	return id.String(), true
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	p, err := s.store.Get(r.Context(), id)
	if errors.Is(err, project.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, project.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
