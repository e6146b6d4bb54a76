// Package coach runs the live coaching shift of one coach: the dashboard of
// active sessions, the setup of a new session and the focused logging view.
package coach

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/catalog"
	"github.com/2beens/coachtracker/internal/gymstats/session"
	"github.com/2beens/coachtracker/internal/notify"
	"github.com/2beens/coachtracker/internal/telemetry/metrics"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Mode string

const (
	ModeDashboard Mode = "DASHBOARD"
	ModeSetup     Mode = "SETUP"
	ModeFocus     Mode = "FOCUS"
)

const (
	UnknownStudentName    = "Unknown"
	MsgSomethingWentWrong = "Something went wrong"
)

var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrSessionNotFound      = errors.New("active session not found")
	ErrSessionBusy          = errors.New("session is being saved")
	ErrConfirmationRequired = errors.New("finishing a session needs confirmation")
	ErrUnknownStudent       = errors.New("unknown student")
	ErrUnknownExercise      = errors.New("unknown exercise")
	ErrUnexpected           = errors.New("unexpected error")
)

//go:generate mockgen -source=$GOFILE -destination=controller_mocks_test.go -package=coach_test

type sessionStore interface {
	ListActive(ctx context.Context) ([]session.Session, error)
	Save(ctx context.Context, s session.Session) (*session.Session, error)
	Finish(ctx context.Context, s session.Session) error
}

type referenceCatalog interface {
	RefreshExercises(ctx context.Context) error
	Exercises() []catalog.Exercise
	Student(id string) (catalog.Person, bool)
	Exercise(id string) (catalog.Exercise, bool)
	Routine(id string) (catalog.Routine, bool)
}

type entry struct {
	active session.ActiveSession
	// a save or finish for this session is in flight
	busy bool
}

type SessionView struct {
	session.ActiveSession
	Saving bool `json:"saving"`
}

type View struct {
	Mode       Mode          `json:"mode"`
	FocusedID  string        `json:"focusedId,omitempty"`
	Focused    *SessionView  `json:"focused,omitempty"`
	Sessions   []SessionView `json:"sessions"`
	SetupError string        `json:"setupError,omitempty"`
}

// Controller owns the active sessions of one coach. Domain edits are applied
// synchronously under the lock; store calls run outside of it, so a save of
// one session never blocks work on another.
type Controller struct {
	coachID  string
	store    sessionStore
	catalog  referenceCatalog
	notifier notify.Notifier
	metrics  *metrics.Manager

	// injectable for tests
	NewID session.IDFunc
	Now   func() time.Time

	mutex      sync.Mutex
	mode       Mode
	focusedID  string
	setupError string
	entries    []*entry
	// ids finished through this controller; a stale store listing never brings them back
	finished map[string]struct{}

	pending sync.WaitGroup
}

func NewController(
	coachID string,
	store sessionStore,
	catalog referenceCatalog,
	notifier notify.Notifier,
	metricsManager *metrics.Manager,
) *Controller {
	return &Controller{
		coachID:  coachID,
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		metrics:  metricsManager,
		NewID:    session.NewID,
		Now:      time.Now,
		mode:     ModeDashboard,
		entries:  []*entry{},
		finished: map[string]struct{}{},
	}
}

func (c *Controller) CoachID() string {
	return c.coachID
}

func (c *Controller) Mode() Mode {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.mode
}

func (c *Controller) View() View {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.mode == ModeFocus && c.find(c.focusedID) == nil {
		log.Debugf("coach %s: focused session %s is gone, back to dashboard", c.coachID, c.focusedID)
		c.mode = ModeDashboard
		c.focusedID = ""
	}

	v := View{
		Mode:       c.mode,
		FocusedID:  c.focusedID,
		Sessions:   make([]SessionView, 0, len(c.entries)),
		SetupError: c.setupError,
	}
	for _, e := range c.entries {
		sv := e.view()
		v.Sessions = append(v.Sessions, sv)
		if c.mode == ModeFocus && e.active.InternalID == c.focusedID {
			v.Focused = &sv
		}
	}
	return v
}

// Session returns a copy of the active session with the given internal id.
func (c *Controller) Session(id string) (session.ActiveSession, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	e := c.find(id)
	if e == nil {
		return session.ActiveSession{}, false
	}
	return e.view().ActiveSession, true
}

func (c *Controller) StartNew() (err error) {
	defer c.guard(context.Background(), "start-new", &err)
	return c.transition(ModeDashboard, ModeSetup, func() {
		c.setupError = ""
	})
}

func (c *Controller) CancelSetup() (err error) {
	defer c.guard(context.Background(), "cancel-setup", &err)
	return c.transition(ModeSetup, ModeDashboard, func() {
		c.setupError = ""
	})
}

func (c *Controller) Back() (err error) {
	defer c.guard(context.Background(), "back", &err)
	return c.transition(ModeFocus, ModeDashboard, func() {
		c.focusedID = ""
	})
}

func (c *Controller) Select(id string) (err error) {
	defer c.guard(context.Background(), "select", &err)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.mode != ModeDashboard {
		return fmt.Errorf("%w: select from %s", ErrInvalidTransition, c.mode)
	}
	if c.find(id) == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	c.mode = ModeFocus
	c.focusedID = id
	return nil
}

// Start creates a session for the student from the optional routine and
// records it in the store before it shows up on the dashboard.
func (c *Controller) Start(ctx context.Context, studentID, routineID string) (_ *session.ActiveSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.controller.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.guard(ctx, "start", &err)
	span.SetAttributes(
		attribute.String("coach", c.coachID),
		attribute.String("student", studentID),
		attribute.String("routine", routineID),
	)

	if mode := c.Mode(); mode != ModeSetup {
		return nil, fmt.Errorf("%w: start from %s", ErrInvalidTransition, mode)
	}

	if err := c.catalog.RefreshExercises(ctx); err != nil {
		log.Errorf("coach %s: refresh exercises before start, using the loaded catalog: %s", c.coachID, err)
	}

	student, ok := c.catalog.Student(studentID)
	if !ok {
		c.setSetupError("Select a student")
		c.notify(ctx, notify.LevelError, "Select a student")
		return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, studentID)
	}

	var routine *catalog.Routine
	if routineID != "" {
		if r, ok := c.catalog.Routine(routineID); ok {
			routine = &r
		} else {
			log.Warnf("coach %s: routine %s not found, starting freestyle", c.coachID, routineID)
		}
	}

	active := session.CreateFromRoutine(student, c.coachID, routine, c.catalog.Exercises(), c.Now(), c.NewID)

	saved, err := c.store.Save(ctx, active.ToSession(true))
	if err != nil {
		log.Errorf("coach %s: create session for %s: %s", c.coachID, student.ID, err)
		c.setSetupError("Failed to create session")
		c.notify(ctx, notify.LevelError, "Failed to create session")
		return nil, fmt.Errorf("save new session: %w", err)
	}
	if saved != nil && saved.ID != "" {
		active = active.Adopt(saved.ID)
	} else {
		log.Warnf("coach %s: store returned no id for the new session of %s", c.coachID, student.ID)
		c.notify(ctx, notify.LevelWarning, "Session started but not saved yet")
	}

	c.mutex.Lock()
	c.entries = append(c.entries, &entry{active: active})
	if c.mode == ModeSetup {
		c.mode = ModeDashboard
	}
	c.setupError = ""
	count := len(c.entries)
	c.mutex.Unlock()

	c.metrics.CounterSessionsStarted.Inc()
	c.metrics.GaugeActiveSessions.WithLabelValues(c.coachID).Set(float64(count))
	c.notify(ctx, notify.LevelSuccess, fmt.Sprintf("Session started for %s", student.Name))

	return &active, nil
}

// SaveProgress submits the full current state of the session. The first
// successful save of a local session adopts the id assigned by the store.
func (c *Controller) SaveProgress(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.controller.save-progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.guard(ctx, "save-progress", &err)
	span.SetAttributes(attribute.String("session", id))

	e, snapshot, err := c.beginStoreCall(id, true)
	if err != nil {
		if errors.Is(err, ErrSessionBusy) {
			c.notify(ctx, notify.LevelWarning, "Still saving this session, try again in a moment")
		}
		return err
	}
	defer c.endStoreCall(e)

	saved, err := c.store.Save(ctx, snapshot)
	if err != nil {
		log.Errorf("coach %s: save session %s: %s", c.coachID, id, err)
		c.notify(ctx, notify.LevelError, "Failed to save progress")
		return fmt.Errorf("save session %s: %w", id, err)
	}

	c.mutex.Lock()
	if !c.contains(e) {
		c.mutex.Unlock()
		log.Debugf("coach %s: late save ack for %s ignored", c.coachID, id)
		return nil
	}
	if !e.active.Persisted && saved != nil && saved.ID != "" {
		oldID := e.active.InternalID
		e.active = e.active.Adopt(saved.ID)
		if c.focusedID == oldID {
			c.focusedID = saved.ID
		}
	}
	e.busy = false
	c.mutex.Unlock()

	c.metrics.CounterSessionsSaved.Inc()
	c.notify(ctx, notify.LevelSuccess, "Progress saved")
	return nil
}

// SaveProgressAsync runs SaveProgress in the background. The result is sent
// on the returned channel, which is closed afterwards.
func (c *Controller) SaveProgressAsync(ctx context.Context, id string) <-chan error {
	result := make(chan error, 1)
	ctx = context.WithoutCancel(ctx)

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		defer close(result)
		result <- c.SaveProgress(ctx, id)
	}()

	return result
}

// Wait blocks until all background saves are done.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Finish ends the session for good. Without confirmation nothing happens.
func (c *Controller) Finish(ctx context.Context, id string, confirmed bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.controller.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.guard(ctx, "finish", &err)
	span.SetAttributes(attribute.String("session", id))

	if !confirmed {
		return ErrConfirmationRequired
	}

	e, snapshot, err := c.beginStoreCall(id, false)
	if err != nil {
		if errors.Is(err, ErrSessionBusy) {
			c.notify(ctx, notify.LevelWarning, "Still saving this session, try again in a moment")
		}
		return err
	}
	defer c.endStoreCall(e)

	if err := c.store.Finish(ctx, snapshot); err != nil {
		log.Errorf("coach %s: finish session %s: %s", c.coachID, id, err)
		c.notify(ctx, notify.LevelError, "Failed to finish session")
		return fmt.Errorf("finish session %s: %w", id, err)
	}

	c.mutex.Lock()
	studentName := e.active.Student.Name
	finishedID := e.active.InternalID
	c.finished[finishedID] = struct{}{}
	c.removeID(finishedID)
	if c.focusedID == finishedID {
		c.focusedID = ""
		if c.mode == ModeFocus {
			c.mode = ModeDashboard
		}
	}
	count := len(c.entries)
	c.mutex.Unlock()

	c.metrics.CounterSessionsFinished.Inc()
	c.metrics.GaugeActiveSessions.WithLabelValues(c.coachID).Set(float64(count))
	c.notify(ctx, notify.LevelSuccess, fmt.Sprintf("%s's session finished", studentName))
	return nil
}

// Refresh replaces the active sessions with the ones in the store. Sessions
// with a save or finish in flight keep their local entry, local sessions the
// store has not assigned an id to yet are kept, and sessions finished here are
// never brought back.
func (c *Controller) Refresh(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.controller.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.guard(ctx, "refresh", &err)

	stored, err := c.store.ListActive(ctx)
	if err != nil {
		log.Errorf("coach %s: list active sessions: %s", c.coachID, err)
		c.notify(ctx, notify.LevelError, "Failed to load active sessions")
		return fmt.Errorf("list active sessions: %w", err)
	}

	loaded := make([]session.ActiveSession, 0, len(stored))
	for _, s := range stored {
		if s.CoachID != c.coachID {
			continue
		}
		loaded = append(loaded, c.reattach(s))
	}

	c.mutex.Lock()
	count := c.merge(loaded)
	c.mutex.Unlock()

	span.SetAttributes(attribute.Int("sessions", count))
	c.metrics.GaugeActiveSessions.WithLabelValues(c.coachID).Set(float64(count))
	return nil
}

// merge expects the lock to be held.
func (c *Controller) merge(loaded []session.ActiveSession) int {
	entries := make([]*entry, 0, len(loaded)+len(c.entries))
	kept := make(map[*entry]bool)
	for _, active := range loaded {
		if _, done := c.finished[active.InternalID]; done {
			log.Debugf("coach %s: finished session %s still listed as active, skipped", c.coachID, active.InternalID)
			continue
		}
		if old := c.find(active.InternalID); old != nil && old.busy {
			entries = append(entries, old)
			kept[old] = true
			continue
		}
		entries = append(entries, &entry{active: active})
	}
	for _, old := range c.entries {
		if kept[old] {
			continue
		}
		if old.busy || !old.active.Persisted {
			entries = append(entries, old)
		}
	}
	c.entries = entries
	return len(entries)
}

func (c *Controller) AddExercise(id, exerciseID string) (_ session.ActiveSession, err error) {
	defer c.guard(context.Background(), "add-exercise", &err)

	exercise, ok := c.catalog.Exercise(exerciseID)
	if !ok {
		return session.ActiveSession{}, fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}
	return c.edit(id, func(a session.ActiveSession) (session.ActiveSession, error) {
		return a.AddExercise(exercise, c.NewID), nil
	})
}

func (c *Controller) AddSet(id, exerciseID string, seed session.SetSeed) (_ session.ActiveSession, err error) {
	defer c.guard(context.Background(), "add-set", &err)
	return c.edit(id, func(a session.ActiveSession) (session.ActiveSession, error) {
		return a.AddSet(exerciseID, seed, c.NewID, c.Now())
	})
}

func (c *Controller) UpdateSet(id, setID string, field session.SetField, value float64) (_ session.ActiveSession, err error) {
	defer c.guard(context.Background(), "update-set", &err)
	return c.edit(id, func(a session.ActiveSession) (session.ActiveSession, error) {
		return a.UpdateSet(setID, field, value)
	})
}

func (c *Controller) RemoveSet(id, exerciseID, setID string) (_ session.ActiveSession, err error) {
	defer c.guard(context.Background(), "remove-set", &err)
	return c.edit(id, func(a session.ActiveSession) (session.ActiveSession, error) {
		return a.RemoveSet(exerciseID, setID)
	})
}

func (c *Controller) SetActiveExercise(id, exerciseID string) (_ session.ActiveSession, err error) {
	defer c.guard(context.Background(), "set-active-exercise", &err)
	return c.edit(id, func(a session.ActiveSession) (session.ActiveSession, error) {
		return a.SetActiveExercise(exerciseID), nil
	})
}

func (c *Controller) edit(id string, apply func(session.ActiveSession) (session.ActiveSession, error)) (session.ActiveSession, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e := c.find(id)
	if e == nil {
		return session.ActiveSession{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	updated, err := apply(e.active)
	if err != nil {
		return session.ActiveSession{}, err
	}
	e.active = updated
	return e.view().ActiveSession, nil
}

func (c *Controller) beginStoreCall(id string, active bool) (*entry, session.Session, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e := c.find(id)
	if e == nil {
		return nil, session.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if e.busy {
		return nil, session.Session{}, fmt.Errorf("%w: %s", ErrSessionBusy, id)
	}
	e.busy = true
	return e, e.active.ToSession(active), nil
}

func (c *Controller) endStoreCall(e *entry) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	e.busy = false
}

func (c *Controller) reattach(s session.Session) session.ActiveSession {
	student, ok := c.catalog.Student(s.StudentID)
	if !ok {
		student = catalog.Person{
			ID:   s.StudentID,
			Name: UnknownStudentName,
			Role: catalog.RoleStudent,
		}
	}

	s = s.Clone()
	for i, block := range s.Exercises {
		if exercise, ok := c.catalog.Exercise(block.Exercise.ID); ok {
			s.Exercises[i].Exercise = exercise
		}
	}
	return session.FromStored(s, student)
}

func (c *Controller) transition(from, to Mode, onSuccess func()) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.mode != from {
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, c.mode)
	}
	c.mode = to
	onSuccess()
	return nil
}

func (c *Controller) setSetupError(msg string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.setupError = msg
}

// find and the other helpers below expect the lock to be held.
func (c *Controller) find(id string) *entry {
	if id == "" {
		return nil
	}
	for _, e := range c.entries {
		if e.active.InternalID == id {
			return e
		}
	}
	return nil
}

func (c *Controller) contains(target *entry) bool {
	for _, e := range c.entries {
		if e == target {
			return true
		}
	}
	return false
}

func (c *Controller) removeID(id string) {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.active.InternalID != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
}

func (e *entry) view() SessionView {
	return SessionView{
		ActiveSession: e.active.Clone(),
		Saving:        e.busy,
	}
}

func (c *Controller) notify(ctx context.Context, level notify.Level, message string) {
	c.notifier.Notify(ctx, notify.New(level, c.coachID, message))
}

// guard turns a panic inside a controller action into ErrUnexpected.
func (c *Controller) guard(ctx context.Context, action string, err *error) {
	if r := recover(); r != nil {
		log.Errorf("coach %s: %s panicked: %v\n%s", c.coachID, action, r, debug.Stack())
		c.metrics.CounterControllerPanics.Inc()
		c.notify(ctx, notify.LevelError, MsgSomethingWentWrong)
		*err = fmt.Errorf("%w: %s", ErrUnexpected, action)
	}
}
