package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-scorer/internal/adaptive"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/server/middleware"
	"github.com/jonathan/resume-scorer/internal/types"
)

// scoreRequest is the wire form of one scoring call. The resume stays raw until
// it has passed schema validation.
type scoreRequest struct {
	ID             string               `json:"id,omitempty"`
	Resume         json.RawMessage      `json:"resume"`
	Mode           string               `json:"mode,omitempty"`
	Level          string               `json:"level,omitempty"`
	Role           string               `json:"role,omitempty"`
	JobDescription string               `json:"job_description,omitempty"`
	JobURL         string               `json:"job_url,omitempty"`
	GrammarIssues  []types.GrammarIssue `json:"grammar_issues,omitempty"`
}

type batchRequest struct {
	Requests    []scoreRequest `json:"requests" validate:"required,min=1"`
	Concurrency int            `json:"concurrency,omitempty" validate:"gte=0"`
}

type batchResponse struct {
	Items     []adaptive.BatchItem `json:"items"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

type extractRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

type synonymsResponse struct {
	Keyword   string   `json:"keyword"`
	Canonical string   `json:"canonical"`
	Synonyms  []string `json:"synonyms"`
}

// decodeBody reads a size-limited JSON body into dst
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return &types.UsageError{Message: "invalid request body", Cause: err}
	}
	return nil
}

// toAdaptive validates the raw resume against the schema and builds the scorer request.
func (s *Server) toAdaptive(req scoreRequest, requestID string) (adaptive.Request, error) {
	raw := bytes.TrimSpace(req.Resume)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return adaptive.Request{}, &ErrValidation{Field: "resume", Message: "is required"}
	}
	resume, err := schemas.DecodeResume(raw)
	if err != nil {
		return adaptive.Request{}, prefixFields(err, "resume")
	}

	level := req.Level
	if strings.TrimSpace(level) == "" {
		level = s.scoring.DefaultLevel
	}
	id := req.ID
	if id == "" {
		id = requestID
	}

	out := adaptive.Request{
		ID:             id,
		Resume:         resume,
		Mode:           req.Mode,
		Level:          level,
		Role:           req.Role,
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		GrammarIssues:  req.GrammarIssues,
	}
	if err := s.validate.Struct(out); err != nil {
		return adaptive.Request{}, err
	}
	return out, nil
}

// handleScore scores one resume
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	scoreReq, err := s.toAdaptive(req, middleware.GetRequestID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.scorer.Score(r.Context(), scoreReq)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScoreBatch scores many resumes with bounded concurrency. Any invalid item
// rejects the whole batch; scoring failures are reported per item.
func (s *Server) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.scoring.MaxBatchSize > 0 && len(req.Requests) > s.scoring.MaxBatchSize {
		s.writeError(w, r, &ErrBatchTooLarge{Size: len(req.Requests), Max: s.scoring.MaxBatchSize})
		return
	}

	reqs := make([]adaptive.Request, len(req.Requests))
	for i, item := range req.Requests {
		scoreReq, err := s.toAdaptive(item, "")
		if err != nil {
			s.writeError(w, r, prefixFields(err, fmt.Sprintf("requests.%d", i)))
			return
		}
		reqs[i] = scoreReq
	}

	concurrency := s.scoring.BatchConcurrency
	if req.Concurrency > 0 && (concurrency <= 0 || req.Concurrency < concurrency) {
		concurrency = req.Concurrency
	}

	items := s.scorer.ScoreBatch(r.Context(), reqs, concurrency)
	resp := batchResponse{Items: items}
	for _, item := range items {
		if item.Result != nil {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExtractKeywords returns the required and preferred keywords of a job description
func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	jk := s.scorer.Parameters().Keywords().ExtractFromJobDescription(req.JobDescription)
	s.jsonResponse(w, http.StatusOK, jk)
}

// handleSynonyms returns the synonym class of a keyword
func (s *Server) handleSynonyms(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.PathValue("keyword"))
	if keyword == "" {
		s.errorResponse(w, r, http.StatusBadRequest, "keyword is required")
		return
	}

	engine := s.scorer.Parameters().Keywords()
	s.jsonResponse(w, http.StatusOK, synonymsResponse{
		Keyword:   keyword,
		Canonical: engine.Canonical(keyword),
		Synonyms:  engine.GetAllSynonyms(keyword),
	})
}

// handleClearCache drops every cached collaborator result
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.scorer.ClearCache(r.Context()); err != nil {
		s.writeError(w, r, fmt.Errorf("failed to clear cache: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
