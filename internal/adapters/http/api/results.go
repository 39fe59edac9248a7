package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hirelens/hirelens/internal/adapters/repository"
	service "github.com/hirelens/hirelens/internal/app"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// ResultDependencies defines the interface for per-job read and delete
// operations.
type ResultDependencies interface {
	Status(ctx context.Context, id string) (model.JobStatus, error)
	Result(ctx context.Context, id string) (model.Evaluation, error)
	Delete(ctx context.Context, id string) error
}

// ResultsHandler handles /evaluations/{id} and /evaluations/{id}/status.
type ResultsHandler struct {
	deps ResultDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleEvaluation dispatches requests under /evaluations/{id}.
func (h *ResultsHandler) HandleEvaluation(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/evaluations/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch {
	case rest == "status" && r.Method == http.MethodGet:
		h.handleStatus(w, r, id)
	case rest == "" && r.Method == http.MethodGet:
		h.handleResult(w, r, id)
	case rest == "" && r.Method == http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *ResultsHandler) handleStatus(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_status"

	status, err := h.deps.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{ID: id, JobStatus: status})
}

func (h *ResultsHandler) handleResult(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_result"

	eval, err := h.deps.Result(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, service.ErrProcessing):
			// The job exists but has not finished; report progress instead.
			status, statusErr := h.deps.Status(r.Context(), id)
			if statusErr != nil {
				writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, statusErr))
				return
			}
			writeJSON(w, http.StatusAccepted, statusResponse{ID: id, JobStatus: status})
		case errors.Is(err, service.ErrJobFailed):
			writeError(w, http.StatusInternalServerError, "evaluation_failed", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func (h *ResultsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.delete_evaluation"

	if err := h.deps.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{ID: id, Deleted: true})
}
