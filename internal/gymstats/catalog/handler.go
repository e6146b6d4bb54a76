package catalog

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/coachtracker/internal/identity"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"
	"github.com/2beens/coachtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type catalogService interface {
	Students() []Person
	Exercises() []Exercise
	Routines() []Routine
	CreateStudent(ctx context.Context, name, email string) (*Person, error)
	SaveExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
	SaveRoutine(ctx context.Context, routine Routine) (*Routine, error)
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/students", h.HandleListStudents).Methods("GET", "OPTIONS")
	r.HandleFunc("/students", h.HandleCreateStudent).Methods("POST", "OPTIONS")
	r.HandleFunc("/exercises", h.HandleListExercises).Methods("GET", "OPTIONS")
	r.HandleFunc("/exercises", h.HandleSaveExercise).Methods("PUT", "OPTIONS")
	r.HandleFunc("/exercises/{id}", h.HandleDeleteExercise).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/routines", h.HandleListRoutines).Methods("GET", "OPTIONS")
	r.HandleFunc("/routines", h.HandleSaveRoutine).Methods("PUT", "OPTIONS")
}

func (h *Handler) HandleListStudents(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, nonNil(h.service.Students()), http.StatusOK)
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, nonNil(h.service.Exercises()), http.StatusOK)
}

func (h *Handler) HandleListRoutines(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, nonNil(h.service.Routines()), http.StatusOK)
}

type newStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) HandleCreateStudent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.students.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req newStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("create student, unmarshal json params: %s", err)
		http.Error(w, "create student failed", http.StatusBadRequest)
		return
	}

	student, err := h.service.CreateStudent(ctx, req.Name, req.Email)
	if err != nil {
		h.writeError(w, "create student", err)
		return
	}
	pkg.WriteJSON(w, student, http.StatusCreated)
}

func (h *Handler) HandleSaveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Errorf("save exercise, unmarshal json params: %s", err)
		http.Error(w, "save exercise failed", http.StatusBadRequest)
		return
	}

	saved, err := h.service.SaveExercise(ctx, exercise)
	if err != nil {
		h.writeError(w, "save exercise", err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := h.service.DeleteExercise(ctx, id); err != nil {
		h.writeError(w, "delete exercise", err)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}

func (h *Handler) HandleSaveRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.routines.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var routine Routine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		log.Errorf("save routine, unmarshal json params: %s", err)
		http.Error(w, "save routine failed", http.StatusBadRequest)
		return
	}
	if routine.CreatorID == "" {
		if coach, ok := identity.FromContext(ctx); ok {
			routine.CreatorID = coach.ID
		}
	}

	saved, err := h.service.SaveRoutine(ctx, routine)
	if err != nil {
		h.writeError(w, "save routine", err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
