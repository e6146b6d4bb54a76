// Package notify delivers coach-facing toasts (success, warning, error).
// Delivery is fire-and-forget: a failing sink is logged and never reported
// back to the caller.
package notify

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

type Notification struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CoachID   string    `json:"coachId"`
	CreatedAt time.Time `json:"createdAt"`
}

func New(level Level, coachID, message string) Notification {
	return Notification{
		Level:     level,
		Message:   message,
		CoachID:   coachID,
		CreatedAt: time.Now(),
	}
}

//go:generate mockgen -source=$GOFILE -destination=notify_mocks_test.go -package=notify_test

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	entry := log.WithField("coach", n.CoachID)
	switch n.Level {
	case LevelError:
		entry.Errorf("notify: %s", n.Message)
	case LevelWarning:
		entry.Warnf("notify: %s", n.Message)
	default:
		entry.Infof("notify: %s", n.Message)
	}
}

// Fanout delivers each notification to every sink, in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) {
	for _, sink := range f {
		sink.Notify(ctx, n)
	}
}

// Func adapts a plain function to a Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}
