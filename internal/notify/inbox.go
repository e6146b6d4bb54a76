package notify

import (
	"context"
	"net/http"
	"sync"

	"github.com/2beens/coachtracker/internal/identity"
	"github.com/2beens/coachtracker/pkg"

	"github.com/gorilla/mux"
)

const DefaultInboxSize = 50

// Inbox keeps the latest notifications of every coach until they are read.
type Inbox struct {
	mutex   sync.Mutex
	size    int
	pending map[string][]Notification
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{
		size:    size,
		pending: make(map[string][]Notification),
	}
}

func (i *Inbox) Notify(_ context.Context, n Notification) {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	list := append(i.pending[n.CoachID], n)
	if len(list) > i.size {
		list = list[len(list)-i.size:]
	}
	i.pending[n.CoachID] = list
}

// Peek returns the pending notifications without consuming them.
func (i *Inbox) Peek(coachID string) []Notification {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return append([]Notification{}, i.pending[coachID]...)
}

// Drain returns the pending notifications, oldest first, and forgets them.
func (i *Inbox) Drain(coachID string) []Notification {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	list := i.pending[coachID]
	delete(i.pending, coachID)
	if list == nil {
		return []Notification{}
	}
	return list
}

func (i *Inbox) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/notifications", i.HandleDrain).Methods("GET", "OPTIONS")
}

func (i *Inbox) HandleDrain(w http.ResponseWriter, r *http.Request) {
	coach, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	pkg.WriteJSON(w, i.Drain(coach.ID), http.StatusOK)
}
