package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/hirelens/hirelens/internal/app"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// EvaluationDependencies defines the interface for submit and list
// operations.
type EvaluationDependencies interface {
	Submit(ctx context.Context, req model.EvaluationRequest) (string, error)
	List(ctx context.Context) ([]model.JobSummary, error)
}

// EvaluationsHandler handles the /evaluations collection.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// HandleEvaluations dispatches POST (submit) and GET (list) on /evaluations.
func (h *EvaluationsHandler) HandleEvaluations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EvaluationsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_evaluation"

	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	id, err := h.deps.Submit(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, service.ErrQueueFull) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusAccepted, submitResponse{
		ID:      id,
		Status:  string(model.StatusPending),
		Message: "Evaluation queued. Poll the status endpoint for progress.",
	})
}

func (h *EvaluationsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_evaluations"

	list, err := h.deps.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}
