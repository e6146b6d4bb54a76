package coach

import (
	"sync"

	"github.com/2beens/coachtracker/internal/notify"
	"github.com/2beens/coachtracker/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// Registry holds one controller per logged in coach.
type Registry struct {
	store    sessionStore
	catalog  referenceCatalog
	notifier notify.Notifier
	metrics  *metrics.Manager

	mutex       sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(
	store sessionStore,
	catalog referenceCatalog,
	notifier notify.Notifier,
	metricsManager *metrics.Manager,
) *Registry {
	return &Registry{
		store:       store,
		catalog:     catalog,
		notifier:    notifier,
		metrics:     metricsManager,
		controllers: make(map[string]*Controller),
	}
}

// For returns the controller of the coach, creating it on first use.
func (r *Registry) For(coachID string) *Controller {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if c, ok := r.controllers[coachID]; ok {
		return c
	}
	c := NewController(coachID, r.store, r.catalog, r.notifier, r.metrics)
	r.controllers[coachID] = c
	log.Debugf("coach registry: new controller for %s", coachID)
	return c
}

// Drop forgets the controller of the coach once its background saves are done.
func (r *Registry) Drop(coachID string) {
	r.mutex.Lock()
	c, ok := r.controllers[coachID]
	delete(r.controllers, coachID)
	r.mutex.Unlock()

	if !ok {
		return
	}
	c.Wait()
	r.metrics.GaugeActiveSessions.DeleteLabelValues(coachID)
	log.Debugf("coach registry: dropped controller for %s", coachID)
}

func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.controllers)
}

// Wait blocks until the background saves of every controller are done.
func (r *Registry) Wait() {
	r.mutex.Lock()
	controllers := make([]*Controller, 0, len(r.controllers))
	for _, c := range r.controllers {
		controllers = append(controllers, c)
	}
	r.mutex.Unlock()

	for _, c := range controllers {
		c.Wait()
	}
}
