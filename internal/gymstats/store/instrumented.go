package store

import (
	"context"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/session"
	"github.com/2beens/coachtracker/internal/telemetry/metrics"
)

const (
	opListActive    = "list_active"
	opSave          = "save"
	opFinish        = "finish"
	opListCompleted = "list_completed"
)

// Instrumented records duration and failures of every store call.
type Instrumented struct {
	inner   SessionStore
	metrics *metrics.Manager
}

var _ SessionStore = (*Instrumented)(nil)

func NewInstrumented(inner SessionStore, metricsManager *metrics.Manager) *Instrumented {
	return &Instrumented{
		inner:   inner,
		metrics: metricsManager,
	}
}

func (i *Instrumented) ListActive(ctx context.Context) (_ []session.Session, err error) {
	defer i.observe(opListActive, time.Now(), &err)
	return i.inner.ListActive(ctx)
}

func (i *Instrumented) Save(ctx context.Context, s session.Session) (_ *session.Session, err error) {
	defer i.observe(opSave, time.Now(), &err)
	return i.inner.Save(ctx, s)
}

func (i *Instrumented) Finish(ctx context.Context, s session.Session) (err error) {
	defer i.observe(opFinish, time.Now(), &err)
	return i.inner.Finish(ctx, s)
}

func (i *Instrumented) ListCompleted(ctx context.Context, studentID string) (_ []session.CompletedSession, err error) {
	defer i.observe(opListCompleted, time.Now(), &err)
	return i.inner.ListCompleted(ctx, studentID)
}

func (i *Instrumented) observe(operation string, start time.Time, err *error) {
	i.metrics.HistogramStoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if *err != nil {
		i.metrics.CounterStoreFailures.WithLabelValues(operation).Inc()
	}
}
