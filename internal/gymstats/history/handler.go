package history

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/coachtracker/internal/gymstats/progress"
	"github.com/2beens/coachtracker/internal/gymstats/session"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"
	"github.com/2beens/coachtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=history_test

type historyService interface {
	CompletedSessions(ctx context.Context, studentID string) ([]session.CompletedSession, error)
	Stats(ctx context.Context, studentID string) (progress.StudentStats, error)
	Progress(ctx context.Context, studentID, exerciseName string) ([]progress.ProgressPoint, error)
	TopExercises(ctx context.Context, studentID string, limit int) ([]string, error)
	Dashboard(ctx context.Context, studentID, exerciseName string) (progress.Dashboard, error)
}

type Handler struct {
	service historyService
}

func NewHandler(service historyService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/history", h.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/students/{id}/dashboard", h.HandleDashboard).Methods("GET", "OPTIONS")
	r.HandleFunc("/students/{id}/progress", h.HandleProgress).Methods("GET", "OPTIONS")
	r.HandleFunc("/students/{id}/stats", h.HandleStats).Methods("GET", "OPTIONS")
	r.HandleFunc("/students/{id}/top-exercises", h.HandleTopExercises).Methods("GET", "OPTIONS")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.list")
	defer span.End()

	sessions, err := h.service.CompletedSessions(ctx, r.URL.Query().Get("studentId"))
	if err != nil {
		h.writeError(w, "list history", err)
		return
	}
	pkg.WriteJSON(w, sessions, http.StatusOK)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.dashboard")
	defer span.End()

	dashboard, err := h.service.Dashboard(ctx, mux.Vars(r)["id"], r.URL.Query().Get("exercise"))
	if err != nil {
		h.writeError(w, "student dashboard", err)
		return
	}
	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.progress")
	defer span.End()

	points, err := h.service.Progress(ctx, mux.Vars(r)["id"], r.URL.Query().Get("exercise"))
	if err != nil {
		h.writeError(w, "exercise progress", err)
		return
	}
	pkg.WriteJSON(w, points, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.stats")
	defer span.End()

	stats, err := h.service.Stats(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, "student stats", err)
		return
	}
	pkg.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) HandleTopExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.top-exercises")
	defer span.End()

	limit := progress.DefaultTopExercisesLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	names, err := h.service.TopExercises(ctx, mux.Vars(r)["id"], limit)
	if err != nil {
		h.writeError(w, "top exercises", err)
		return
	}
	pkg.WriteJSON(w, names, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, ErrMissingExercise) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Errorf("%s: %s", action, err)
	http.Error(w, action+" failed", http.StatusInternalServerError)
}
