// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Submit registers an evaluation job and returns its id.
	Submit(ctx context.Context, req model.EvaluationRequest) (string, error)

	// Read operations over job state.
	Status(ctx context.Context, id string) (model.JobStatus, error)
	Result(ctx context.Context, id string) (model.Evaluation, error)
	List(ctx context.Context) ([]model.JobSummary, error)

	// Delete removes a job's status and result.
	Delete(ctx context.Context, id string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	evaluationsHandler *EvaluationsHandler
	resultsHandler     *ResultsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		evaluationsHandler: NewEvaluationsHandler(deps),
		resultsHandler:     NewResultsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandleEvaluations, "evaluations"))
	mux.HandleFunc("/evaluations/", MetricsMiddleware(s.resultsHandler.HandleEvaluation, "evaluation"))
}

// evaluationRequest mirrors the JSON schema for POST /evaluations.
type evaluationRequest struct {
	CandidateName string           `json:"candidate_name"`
	Video         model.VideoInput `json:"video"`
	Audio         model.AudioInput `json:"audio"`
	Text          model.TextInput  `json:"text"`
}

func (e evaluationRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Text.JobDescription) == "":
		return errors.New("missing text.job_description")
	case strings.TrimSpace(e.Text.ResumeText) == "":
		return errors.New("missing text.resume_text")
	}
	for _, l := range e.Video.Labels {
		if !l.Valid() {
			return errors.New("unknown emotion label: " + string(l))
		}
	}
	return nil
}

func (e evaluationRequest) toModel() model.EvaluationRequest {
	return model.EvaluationRequest{
		CandidateName: e.CandidateName,
		Video:         e.Video,
		Audio:         e.Audio,
		Text:          e.Text,
	}
}

type submitResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type statusResponse struct {
	ID string `json:"id"`
	model.JobStatus
}

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
