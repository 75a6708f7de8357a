package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/jd-annotator/internal/priors"
	"github.com/jonathan/jd-annotator/internal/types"
	"go.uber.org/zap"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse represents the response for GET /stats.
type StatsResponse struct {
	Version     int               `json:"version"`
	IndexCount  int               `json:"index_count"`
	IndexModel  string            `json:"index_model,omitempty"`
	SkillPriors int               `json:"skill_priors"`
	Stats       types.PriorsStats `json:"stats"`
	RebuildDue  bool              `json:"rebuild_due"`
}

// handleSuggest runs the generation gate and, when it passes, the matcher.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record := s.store.Load(r.Context())

	resp := types.SuggestResponse{}
	ok, matchCtx := s.engine.ShouldGenerate(req.Text, s.taxonomy, record)
	resp.ShouldGenerate = ok
	resp.Context = matchCtx

	if ok {
		resp.Match = s.engine.FindBestMatch(r.Context(), req.Text, record, s.embedder)
		if resp.Match != nil {
			record.Stats.TotalSuggestionsMade++
			if !s.store.Save(r.Context(), record) {
				s.log.Warn("failed to persist suggestion stats")
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFeedback folds a user action on an annotation into the skill priors.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record := s.store.Load(r.Context())
	captured := priors.CaptureApplies(&req.Annotation)
	priors.Capture(&req.Annotation, req.Action, record)

	saved := true
	if captured {
		saved = s.store.Save(r.Context(), record)
	}

	s.jsonResponse(w, http.StatusOK, types.FeedbackResponse{
		Captured: captured,
		Saved:    saved,
	})
}

// handleRebuild triggers a full rebuild. Without ?force=true the rebuild
// scheduler decides; a not-due rebuild is a successful no-op.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	record := s.store.Load(r.Context())
	if !force && !priors.ShouldRebuild(record) {
		s.jsonResponse(w, http.StatusOK, types.RebuildResponse{
			Rebuilt: false,
			Count:   record.Index.Count,
			Version: record.Version,
		})
		return
	}

	record, err := s.rebuilder.Rebuild(r.Context(), record)
	if err != nil {
		s.log.Error("rebuild failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Rebuild failed: "+err.Error())
		return
	}

	if !s.store.Save(r.Context(), record) {
		s.errorResponse(w, http.StatusInternalServerError, "Rebuild completed but could not be persisted")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.RebuildResponse{
		Rebuilt: true,
		Count:   record.Index.Count,
		Version: record.Version,
	})
}

// handleStats reports the record's bookkeeping.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	record := s.store.Load(r.Context())
	s.jsonResponse(w, http.StatusOK, StatsResponse{
		Version:     record.Version,
		IndexCount:  record.Index.Count,
		IndexModel:  record.Index.Model,
		SkillPriors: len(record.SkillPriors),
		Stats:       record.Stats,
		RebuildDue:  priors.ShouldRebuild(record),
	})
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}
