// Package history serves training history and the derived student metrics.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/progress"
	"github.com/2beens/coachtracker/internal/gymstats/session"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

var ErrMissingExercise = errors.New("exercise name is required")

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=history_test

type completedStore interface {
	ListCompleted(ctx context.Context, studentID string) ([]session.CompletedSession, error)
}

type Service struct {
	store completedStore
	now   func() time.Time
}

func NewService(store completedStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces the clock used for "this week" stats.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CompletedSessions lists finished sessions, newest first. An empty student
// id lists every student.
func (s *Service) CompletedSessions(ctx context.Context, studentID string) (_ []session.CompletedSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "history.service.completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student", studentID))

	sessions, err := s.store.ListCompleted(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	if sessions == nil {
		sessions = []session.CompletedSession{}
	}
	span.SetAttributes(attribute.Int("sessions", len(sessions)))
	return sessions, nil
}

func (s *Service) Stats(ctx context.Context, studentID string) (progress.StudentStats, error) {
	sessions, err := s.CompletedSessions(ctx, studentID)
	if err != nil {
		return progress.StudentStats{}, err
	}
	return progress.AggregateStudentStats(sessions, s.now()), nil
}

func (s *Service) Progress(ctx context.Context, studentID, exerciseName string) ([]progress.ProgressPoint, error) {
	if exerciseName == "" {
		return nil, ErrMissingExercise
	}
	sessions, err := s.CompletedSessions(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return progress.BuildProgressSeries(sessions, exerciseName), nil
}

func (s *Service) TopExercises(ctx context.Context, studentID string, limit int) ([]string, error) {
	sessions, err := s.CompletedSessions(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return progress.RankTopExercises(sessions, limit), nil
}

// Dashboard builds all student widgets from a single history read.
func (s *Service) Dashboard(ctx context.Context, studentID, exerciseName string) (progress.Dashboard, error) {
	sessions, err := s.CompletedSessions(ctx, studentID)
	if err != nil {
		return progress.Dashboard{}, err
	}
	return progress.BuildDashboard(sessions, exerciseName, s.now()), nil
}
