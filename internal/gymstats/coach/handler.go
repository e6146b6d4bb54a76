package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/coachtracker/internal/gymstats/session"
	"github.com/2beens/coachtracker/internal/identity"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"
	"github.com/2beens/coachtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{
		registry: registry,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", h.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/view", h.HandleView).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions", h.HandleStart).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/setup", h.HandleStartNew).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/setup/cancel", h.HandleCancelSetup).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/back", h.HandleBack).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}/select", h.HandleSelect).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}/active-exercise", h.HandleSetActiveExercise).Methods("PUT", "OPTIONS")
	r.HandleFunc("/sessions/{id}/exercises/{exid}/sets", h.HandleAddSet).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}/exercises/{exid}/sets/{setid}", h.HandleRemoveSet).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/sessions/{id}/sets/{setid}", h.HandleUpdateSet).Methods("PUT", "OPTIONS")
	r.HandleFunc("/sessions/{id}/save", h.HandleSave).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}/finish", h.HandleFinish).Methods("POST", "OPTIONS")
}

// HandleList reloads the active sessions from the store and returns the view.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.sessions.list")
	defer span.End()

	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := c.Refresh(ctx); err != nil {
		h.writeError(w, "refresh sessions", err)
		return
	}
	pkg.WriteJSON(w, c.View(), http.StatusOK)
}

func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, c.View(), http.StatusOK)
}

func (h *Handler) HandleStartNew(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "start new", (*Controller).StartNew)
}

func (h *Handler) HandleCancelSetup(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "cancel setup", (*Controller).CancelSetup)
}

func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "back", (*Controller).Back)
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.handleTransition(w, r, "select", func(c *Controller) error {
		return c.Select(id)
	})
}

type startRequest struct {
	StudentID string `json:"studentId"`
	RoutineID string `json:"routineId"`
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.sessions.start")
	defer span.End()

	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req startRequest
	if !decodeJSON(w, r, "start session", &req) {
		return
	}

	active, err := c.Start(ctx, req.StudentID, req.RoutineID)
	if err != nil {
		h.writeError(w, "start session", err)
		return
	}
	pkg.WriteJSON(w, active, http.StatusCreated)
}

type exerciseRequest struct {
	ExerciseID string `json:"exerciseId"`
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decodeJSON(w, r, "add exercise", &req) {
		return
	}
	id := mux.Vars(r)["id"]
	h.handleEdit(w, r, "add exercise", func(c *Controller) (session.ActiveSession, error) {
		return c.AddExercise(id, req.ExerciseID)
	})
}

func (h *Handler) HandleSetActiveExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decodeJSON(w, r, "set active exercise", &req) {
		return
	}
	id := mux.Vars(r)["id"]
	h.handleEdit(w, r, "set active exercise", func(c *Controller) (session.ActiveSession, error) {
		return c.SetActiveExercise(id, req.ExerciseID)
	})
}

func (h *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	var seed session.SetSeed
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, "add set", &seed) {
			return
		}
	}
	vars := mux.Vars(r)
	h.handleEdit(w, r, "add set", func(c *Controller) (session.ActiveSession, error) {
		return c.AddSet(vars["id"], vars["exid"], seed)
	})
}

type updateSetRequest struct {
	Field session.SetField `json:"field"`
	Value float64          `json:"value"`
}

func (h *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req updateSetRequest
	if !decodeJSON(w, r, "update set", &req) {
		return
	}
	vars := mux.Vars(r)
	h.handleEdit(w, r, "update set", func(c *Controller) (session.ActiveSession, error) {
		return c.UpdateSet(vars["id"], vars["setid"], req.Field, req.Value)
	})
}

func (h *Handler) HandleRemoveSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.handleEdit(w, r, "remove set", func(c *Controller) (session.ActiveSession, error) {
		return c.RemoveSet(vars["id"], vars["exid"], vars["setid"])
	})
}

// HandleSave saves in the background and answers right away, unless the
// request asks to wait for the store with ?wait=true.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.sessions.save")
	defer span.End()

	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if r.URL.Query().Get("wait") == "true" {
		if err := c.SaveProgress(ctx, id); err != nil {
			h.writeError(w, "save session", err)
			return
		}
		pkg.WriteJSON(w, c.View(), http.StatusOK)
		return
	}

	if _, found := c.Session(id); !found {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	result := c.SaveProgressAsync(ctx, id)
	go logSaveResult(id, result)
	pkg.WriteResponse(w, pkg.ContentType.Text, "saving", http.StatusAccepted)
}

type finishRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.sessions.finish")
	defer span.End()

	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req finishRequest
	if !decodeJSON(w, r, "finish session", &req) {
		return
	}

	if err := c.Finish(context.WithoutCancel(ctx), mux.Vars(r)["id"], req.Confirmed); err != nil {
		h.writeError(w, "finish session", err)
		return
	}
	pkg.WriteJSON(w, c.View(), http.StatusOK)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, action string, transition func(*Controller) error) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := transition(c); err != nil {
		h.writeError(w, action, err)
		return
	}
	pkg.WriteJSON(w, c.View(), http.StatusOK)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request, action string, edit func(*Controller) (session.ActiveSession, error)) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	active, err := edit(c)
	if err != nil {
		h.writeError(w, action, err)
		return
	}
	pkg.WriteJSON(w, active, http.StatusOK)
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*Controller, bool) {
	coach, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return h.registry.For(coach.ID), true
}

func (h *Handler) writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, session.ErrExerciseNotFound),
		errors.Is(err, session.ErrSetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSessionBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrConfirmationRequired),
		errors.Is(err, ErrUnknownStudent),
		errors.Is(err, ErrUnknownExercise),
		errors.Is(err, session.ErrInvalidValue),
		errors.Is(err, session.ErrUnknownField):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, action+" failed", http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, action string, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Errorf("%s, unmarshal json params: %s", action, err)
		http.Error(w, action+" failed", http.StatusBadRequest)
		return false
	}
	return true
}

func logSaveResult(id string, result <-chan error) {
	if err := <-result; err != nil {
		log.Warnf("background save of session %s: %s", id, err)
	}
}
