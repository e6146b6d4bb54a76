package store

import (
	"context"
	"errors"

	"github.com/2beens/coachtracker/internal/gymstats/session"
)

var ErrSessionNotFound = errors.New("session not found")

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=store_test

// SessionStore is the durable side of the coaching sessions.
// Save and Finish replace every block and set of the session with the ones
// passed in, so callers always submit the complete state.
type SessionStore interface {
	ListActive(ctx context.Context) ([]session.Session, error)
	Save(ctx context.Context, s session.Session) (*session.Session, error)
	Finish(ctx context.Context, s session.Session) error
	// ListCompleted returns the history, newest first. An empty studentID
	// means all students.
	ListCompleted(ctx context.Context, studentID string) ([]session.CompletedSession, error)
}
