package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/coachtracker/internal/gymstats/catalog"
	"github.com/2beens/coachtracker/internal/identity"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TokenHeader carries the login token of the coach.
const TokenHeader = "X-COACH-TOKEN"

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type userResolver interface {
	CurrentUser(ctx context.Context, token string) (*catalog.Person, error)
}

type AuthMiddlewareHandler struct {
	resolver             userResolver
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(resolver userResolver) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		resolver: resolver,
		allowedPaths: map[string]bool{
			"/":       true,
			"/health": true,

			// login-logout:
			"/a/login":  true,
			"/a/logout": true,
			"/a/me":     true,
		},
		allowedPathsPrefixes: []string{},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck resolves the token to a coach and stores it in the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(TokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			person, err := h.resolver.CurrentUser(ctx, authToken)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] %s: %s", r.URL.Path, err)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				span.RecordError(err)
				return
			}
			if person.Role != catalog.RoleCoach {
				log.Warnf("[auth middleware] %s is not a coach => %s", person.ID, r.URL.Path)
				http.Error(w, "coaches only", http.StatusForbidden)
				span.SetStatus(codes.Error, "not-coach")
				return
			}

			span.SetAttributes(attribute.String("coach.id", person.ID))
			span.SetStatus(codes.Ok, "ok")
			coach := identity.Principal{
				ID:   person.ID,
				Name: person.Name,
				Role: string(person.Role),
			}
			next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), coach)))
		})
	}
}
