package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/validation"
)

type segmentRequest struct {
	Text   string               `json:"text" validate:"max=2000000"`
	Method domain.SegmentMethod `json:"method,omitempty" validate:"omitempty,oneof=paragraph sentence custom"`
	Length int                  `json:"length,omitempty" validate:"omitempty,min=50,max=500"`
}

type segmentResponse struct {
	Segments       []domain.Segment      `json:"segments"`
	Options        domain.SegmentOptions `json:"options"`
	Words          int                   `json:"words"`
	ReadingMinutes int                   `json:"reading_minutes"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type jobsResponse struct {
	Jobs []domain.Job          `json:"jobs"`
	Tabs map[domain.JobTab]int `json:"tabs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req domain.CleanRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.logger.Debug("clean request", zap.Int("bytes", len(req.Text)), zap.Int("tools", len(req.Tools)))

	result, err := s.ports.Cleaning.Process(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	if s.ports.Segment == nil {
		s.respondError(w, http.StatusNotImplemented, "segmentation not enabled")
		return
	}
	var req segmentRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.ports.Segment.DefaultOptions(r.Context())
	if req.Method != "" {
		opts.Method = req.Method
	}
	if req.Length != 0 {
		opts.Length = req.Length
	}

	segments, err := s.ports.Segment.Segment(r.Context(), req.Text, opts)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if segments == nil {
		segments = []domain.Segment{}
	}
	words := 0
	for i := range segments {
		words += segments[i].Words
	}
	s.respondJSON(w, http.StatusOK, segmentResponse{
		Segments:       segments,
		Options:        opts,
		Words:          words,
		ReadingMinutes: domain.ReadingMinutes(words),
	})
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.ports.Cleaning.ListRules(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"rules": rules})
}

func (s *Server) handleToggleRule(w http.ResponseWriter, r *http.Request) {
	id := domain.RuleID(chi.URLParam(r, "id"))
	s.logger.Debug("toggle rule request", zap.Stringer("id", id))

	rule, err := s.ports.Cleaning.ToggleRule(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rule)
}

func (s *Server) handleResetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.ports.Cleaning.ResetRules(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"rules": rules})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.JobFilter{
		Query:    q.Get("query"),
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		Priority: q.Get("priority"),
	}
	tab := domain.JobTab(q.Get("tab"))
	if tab != "" && !tab.IsValid() {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown tab %q", tab))
		return
	}

	jobs, err := s.ports.Jobs.Filter(r.Context(), filter)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	tabs := s.ports.Jobs.Tabs(jobs)
	resp := jobsResponse{Jobs: jobs, Tabs: make(map[domain.JobTab]int, 3)}
	for _, t := range domain.JobTabs() {
		resp.Tabs[t] = len(tabs.Tab(t))
	}
	if tab != "" {
		resp.Jobs = tabs.Tab(tab)
	}
	if resp.Jobs == nil {
		resp.Jobs = []domain.Job{}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.ports.Jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleSetJobStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !s.decode(w, r, &req) {
		return
	}
	status, err := domain.ParseJobStatus(req.Status)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	s.logger.Debug("set job status request", zap.String("id", id), zap.Stringer("status", status))
	job, err := s.ports.Jobs.SetStatus(r.Context(), id, status)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	job, err := s.ports.Jobs.ToggleStar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

// decode reads a JSON body into v and validates it. It writes the error
// response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		s.respondError(w, http.StatusBadRequest, msg)
		return false
	}
	if err := validation.Struct(v); err != nil {
		s.respondServiceError(w, err)
		return false
	}
	return true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRuleNotFound),
		errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		s.respondJSON(w, status, map[string]any{"error": domain.ErrInvalidInput.Error(), "fields": verr.Fields})
		return
	}
	s.respondError(w, status, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
