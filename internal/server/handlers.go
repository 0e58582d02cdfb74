package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/observability"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
	"github.com/Andre-Pham/FamApp-sub000/pkg/store"
)

// =============================================================================
// Wire types
// =============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Error is the human-readable message.
	Error string `json:"error"`

	// Code is the machine-readable error code.
	Code string `json:"code,omitempty"`
}

// LayoutRequest is the body of POST /layout.
type LayoutRequest struct {
	Family  graph.FamilyFile `json:"family"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse carries a layout document, any extra rendered formats and
// pipeline statistics.
type LayoutResponse struct {
	Root      string               `json:"root"`
	Layout    graph.LayoutDocument `json:"layout"`
	Artifacts map[string]string    `json:"artifacts,omitempty"`
	Cached    bool                 `json:"cached"`
	Stats     StatsResponse        `json:"stats"`
}

// StatsResponse mirrors [pipeline.Stats] with durations in milliseconds.
type StatsResponse struct {
	People              int     `json:"people"`
	Positioned          int     `json:"positioned"`
	Couples             int     `json:"couples"`
	Children            int     `json:"children"`
	PositionConflicts   int     `json:"position_conflicts"`
	ConnectionConflicts int     `json:"connection_conflicts"`
	LayoutMillis        float64 `json:"layout_ms"`
	RenderMillis        float64 `json:"render_ms"`
}

// FamilyListResponse is the body of GET /families.
type FamilyListResponse struct {
	Families []string `json:"families"`
}

// FamilyStoredResponse acknowledges a stored family.
type FamilyStoredResponse struct {
	ID     string `json:"id"`
	People int    `json:"people"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.runLayout(w, r, req.Family, req.Options)
}

func (s *Server) handleListFamilies(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, FamilyListResponse{Families: ids})
}

func (s *Server) handleCreateFamily(w http.ResponseWriter, r *http.Request) {
	s.storeFamily(w, r, uuid.NewString(), http.StatusCreated)
}

func (s *Server) handlePutFamily(w http.ResponseWriter, r *http.Request) {
	s.storeFamily(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) storeFamily(w http.ResponseWriter, r *http.Request, id string, status int) {
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	var f graph.FamilyFile
	if err := decodeBody(w, r, &f); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Reject families that cannot be built before they reach the store.
	g, err := f.ToGraph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), id, f); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, FamilyStoredResponse{ID: id, People: g.Len()})
}

func (s *Server) handleGetFamily(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFamily(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFamilyLayout lays out a stored family. Query parameters: root,
// step_limit, format (json, svg, dot or graphviz) and highlight.
func (s *Server) handleFamilyLayout(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{Root: q.Get("root")}
	if v := q.Get("step_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "step_limit must be an integer: %q", v))
			return
		}
		opts.StepLimit = n
	}
	opts.HighlightConflicts = q.Get("highlight") == "true"

	format := q.Get("format")
	if format == "" || format == pipeline.FormatJSON {
		s.runLayout(w, r, f, opts)
		return
	}

	opts.Formats = []string{format}
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), f, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) runLayout(w http.ResponseWriter, r *http.Request, f graph.FamilyFile, opts pipeline.Options) {
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), f, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := LayoutResponse{
		Root:   res.Root,
		Layout: res.Document,
		Cached: res.CacheHit,
		Stats: StatsResponse{
			People:              res.Stats.People,
			Positioned:          res.Stats.Positioned,
			Couples:             res.Stats.Couples,
			Children:            res.Stats.Children,
			PositionConflicts:   res.Stats.PositionConflicts,
			ConnectionConflicts: res.Stats.ConnectionConflicts,
			LayoutMillis:        float64(res.Stats.LayoutTime.Microseconds()) / 1000,
			RenderMillis:        float64(res.Stats.RenderTime.Microseconds()) / 1000,
		},
	}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatGraphviz:
		return "image/svg+xml"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "application/json"
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its status and logs server-side failures.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, errors.ErrCodeNotFound
	case stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case code != "":
		status = errors.HTTPStatus(code)
	}
	if status >= http.StatusInternalServerError {
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		observability.HTTP().OnError(r.Context(), r.Method, route, err)
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: string(code)})
}
