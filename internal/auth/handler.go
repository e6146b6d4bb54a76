package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/catalog"
	"github.com/2beens/coachtracker/internal/middleware"
	"github.com/2beens/coachtracker/internal/telemetry/metrics"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"
	"github.com/2beens/coachtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type authService interface {
	Login(ctx context.Context, email, password string) (string, *catalog.Person, error)
	Logout(ctx context.Context, token string) (bool, error)
	CurrentUser(ctx context.Context, token string) (*catalog.Person, error)
	TimeLeft(ctx context.Context, token string) (time.Duration, error)
}

type sessionWatcher interface {
	Watch(token, coachID string)
	Forget(token string)
}

type Handler struct {
	service authService
	watcher sessionWatcher
}

func NewHandler(service authService, watcher sessionWatcher) *Handler {
	return &Handler{
		service: service,
		watcher: watcher,
	}
}

type loginResponse struct {
	Token      string         `json:"token"`
	Person     catalog.Person `json:"person"`
	TTLSeconds int            `json:"ttlSeconds"`
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.HandleFunc("/login", h.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.HandleFunc("/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	loginSubrouter.HandleFunc("/me", h.HandleMe).Methods("GET", "OPTIONS").Name("me")

	// rate limit the /login and /logout endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", allowedPerMin, metricsManager))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == pkg.ContentType.JSON {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		loginReq = loginRequest{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	token, person, err := h.service.Login(ctx, loginReq.Email, loginReq.Password)
	if errors.Is(err, ErrWrongCredentials) {
		log.Tracef("failed login attempt for: %s", loginReq.Email)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("login failed: %s", err)
		http.Error(w, "login error", http.StatusInternalServerError)
		return
	}

	if person.Role != catalog.RoleCoach {
		if _, err := h.service.Logout(ctx, token); err != nil {
			log.Errorf("login, drop non-coach session: %s", err)
		}
		http.Error(w, "only coaches can log in", http.StatusForbidden)
		return
	}

	ttl, err := h.service.TimeLeft(ctx, token)
	if err != nil {
		log.Errorf("login, get session ttl: %s", err)
	}
	h.watcher.Watch(token, person.ID)

	log.Tracef("new login success: %s", person.ID)
	pkg.WriteJSON(w, loginResponse{
		Token:      token,
		Person:     *person,
		TTLSeconds: int(ttl.Seconds()),
	}, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(middleware.TokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.service.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	h.watcher.Forget(authToken)
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.me")
	defer span.End()

	authToken := r.Header.Get(middleware.TokenHeader)
	person, err := h.service.CurrentUser(ctx, authToken)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	ttl, err := h.service.TimeLeft(ctx, authToken)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSON(w, loginResponse{
		Person:     *person,
		TTLSeconds: int(ttl.Seconds()),
	}, http.StatusOK)
}
