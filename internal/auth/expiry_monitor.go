package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2beens/coachtracker/internal/notify"

	log "github.com/sirupsen/logrus"
)

const (
	ExpiryCheckInterval  = time.Minute
	expiryWarningFrom    = 4*time.Minute + 30*time.Second
	expiryWarningTo      = 5 * time.Minute
	MsgSessionExpired    = "Session expired"
	MsgSessionExpireSoon = "Your session is about to expire. Save your progress."
)

type timeLeftSource interface {
	TimeLeft(ctx context.Context, token string) (time.Duration, error)
}

// ExpiryMonitor watches logged in tokens. A coach gets one warning when the
// session enters its last five minutes, and an error plus a sign out once it
// is gone.
type ExpiryMonitor struct {
	source    timeLeftSource
	notifier  notify.Notifier
	onExpired func(coachID string)

	mutex   sync.Mutex
	watched map[string]string // token -> coach id
}

func NewExpiryMonitor(source timeLeftSource, notifier notify.Notifier, onExpired func(coachID string)) *ExpiryMonitor {
	if onExpired == nil {
		onExpired = func(string) {}
	}
	return &ExpiryMonitor{
		source:    source,
		notifier:  notifier,
		onExpired: onExpired,
		watched:   make(map[string]string),
	}
}

func (m *ExpiryMonitor) Watch(token, coachID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.watched[token] = coachID
}

func (m *ExpiryMonitor) Forget(token string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.watched, token)
}

func (m *ExpiryMonitor) Watched() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.watched)
}

// Check runs one pass over the watched tokens.
func (m *ExpiryMonitor) Check(ctx context.Context) {
	m.mutex.Lock()
	watched := make(map[string]string, len(m.watched))
	for token, coachID := range m.watched {
		watched[token] = coachID
	}
	m.mutex.Unlock()

	for token, coachID := range watched {
		left, err := m.source.TimeLeft(ctx, token)
		if errors.Is(err, ErrSessionExpired) || (err == nil && left <= 0) {
			m.Forget(token)
			m.notifier.Notify(ctx, notify.New(notify.LevelError, coachID, MsgSessionExpired))
			m.onExpired(coachID)
			continue
		}
		if err != nil {
			log.Errorf("expiry monitor, time left for coach %s: %s", coachID, err)
			continue
		}

		if left > expiryWarningFrom && left <= expiryWarningTo {
			m.notifier.Notify(ctx, notify.New(notify.LevelWarning, coachID, MsgSessionExpireSoon))
		}
	}
}

func (m *ExpiryMonitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
