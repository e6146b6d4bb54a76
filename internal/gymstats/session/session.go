// Package session holds the in-progress coaching session model.
//
// Every operation is value style: it returns an updated copy and leaves the
// receiver, its exercise blocks and their set slices untouched.
package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/catalog"

	"github.com/google/uuid"
)

const (
	placeholderPrefix = "temp-"
	// DefaultRPE is used for new sets when no RPE is given.
	DefaultRPE = 8
	// FreestyleLabel names sessions started without a routine.
	FreestyleLabel = "Freestyle"
	// InProgressLabel names sessions reloaded from the store.
	InProgressLabel = "In progress"
)

var (
	ErrExerciseNotFound = errors.New("exercise block not found")
	ErrSetNotFound      = errors.New("set not found")
	ErrInvalidValue     = errors.New("invalid value")
	ErrUnknownField     = errors.New("unknown set field")
)

// IDFunc generates client-side ids.
type IDFunc func() string

func NewID() string {
	return uuid.NewString()
}

func NewPlaceholderID() string {
	return placeholderPrefix + uuid.NewString()
}

type SetLog struct {
	ID          string    `json:"id"`
	Weight      float64   `json:"weight"`
	Reps        int       `json:"reps"`
	RPE         float64   `json:"rpe"`
	CompletedAt time.Time `json:"completedAt"`
}

// Done reports whether the set was actually performed.
func (s SetLog) Done() bool {
	return s.Weight > 0 || s.Reps > 0
}

type SessionExercise struct {
	ID       string           `json:"id"`
	Exercise catalog.Exercise `json:"exercise"`
	Sets     []SetLog         `json:"sets"`
	Notes    string           `json:"notes,omitempty"`
}

func (e SessionExercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Done() {
			n++
		}
	}
	return n
}

func (e SessionExercise) Volume() float64 {
	var v float64
	for _, s := range e.Sets {
		v += s.Weight * float64(s.Reps)
	}
	return v
}

func (e SessionExercise) clone() SessionExercise {
	e.Sets = append([]SetLog(nil), e.Sets...)
	return e
}

type Session struct {
	ID        string            `json:"id"`
	StudentID string            `json:"studentId"`
	CoachID   string            `json:"coachId"`
	StartedAt time.Time         `json:"startedAt"`
	Active    bool              `json:"active"`
	Exercises []SessionExercise `json:"exercises"`
}

// Clone returns a deep copy; mutating it never affects s.
func (s Session) Clone() Session {
	if s.Exercises == nil {
		return s
	}
	exercises := make([]SessionExercise, len(s.Exercises))
	for i, e := range s.Exercises {
		exercises[i] = e.clone()
	}
	s.Exercises = exercises
	return s
}

func (s Session) TotalVolume() float64 {
	var v float64
	for _, e := range s.Exercises {
		v += e.Volume()
	}
	return v
}

func (s Session) TotalSets() int {
	n := 0
	for _, e := range s.Exercises {
		n += len(e.Sets)
	}
	return n
}

// ActiveSession is a session owned by a coach's lifecycle controller.
// InternalID is a placeholder until the first successful save; Persisted is
// the only thing that decides whether the store sees an id.
type ActiveSession struct {
	InternalID       string         `json:"internalId"`
	Student          catalog.Person `json:"student"`
	RoutineName      string         `json:"routineName"`
	Session          Session        `json:"session"`
	ActiveExerciseID string         `json:"activeExerciseId"`
	Persisted        bool           `json:"persisted"`
}

// CreateFromRoutine builds a new unpersisted session for the student. Routine
// lines referring to exercises missing from the catalog are skipped. Without
// a routine the session starts empty and is labelled freestyle.
func CreateFromRoutine(
	student catalog.Person,
	coachID string,
	routine *catalog.Routine,
	exercises []catalog.Exercise,
	now time.Time,
	newID IDFunc,
) ActiveSession {
	a := ActiveSession{
		InternalID:  NewPlaceholderID(),
		Student:     student,
		RoutineName: FreestyleLabel,
		Session: Session{
			StudentID: student.ID,
			CoachID:   coachID,
			StartedAt: now,
			Active:    true,
			Exercises: []SessionExercise{},
		},
	}

	if routine != nil {
		a.RoutineName = routine.Name
		byID := make(map[string]catalog.Exercise, len(exercises))
		for _, e := range exercises {
			byID[e.ID] = e
		}

		for _, line := range routine.Exercises {
			exercise, ok := byID[line.ExerciseID]
			if !ok {
				continue
			}
			block := SessionExercise{
				ID:       newID(),
				Exercise: exercise,
				Sets:     make([]SetLog, 0, max(line.Sets, 0)),
				Notes:    fmt.Sprintf("Target: %d sets x %s reps", line.Sets, line.Reps),
			}
			for range max(line.Sets, 0) {
				block.Sets = append(block.Sets, SetLog{ID: newID(), CompletedAt: now})
			}
			a.Session.Exercises = append(a.Session.Exercises, block)
		}
	}

	if len(a.Session.Exercises) > 0 {
		a.ActiveExerciseID = a.Session.Exercises[0].ID
	}
	return a
}

// FromStored wraps a session loaded from the store.
func FromStored(s Session, student catalog.Person) ActiveSession {
	a := ActiveSession{
		InternalID:  s.ID,
		Student:     student,
		RoutineName: InProgressLabel,
		Session:     s.Clone(),
		Persisted:   true,
	}
	if len(s.Exercises) > 0 {
		a.ActiveExerciseID = s.Exercises[0].ID
	}
	return a
}

// Clone returns a deep copy of the session.
func (a ActiveSession) Clone() ActiveSession {
	a.Session = a.Session.Clone()
	return a
}

// ToSession returns the snapshot handed to the store. An unpersisted session
// never carries its placeholder id.
func (a ActiveSession) ToSession(active bool) Session {
	s := a.Session.Clone()
	s.Active = active
	if a.Persisted {
		s.ID = a.InternalID
	} else {
		s.ID = ""
	}
	return s
}

// Adopt switches the session to the server assigned id.
func (a ActiveSession) Adopt(id string) ActiveSession {
	a = a.Clone()
	a.InternalID = id
	a.Session.ID = id
	a.Persisted = true
	return a
}

// AddExercise appends an empty block and makes it the active one.
func (a ActiveSession) AddExercise(exercise catalog.Exercise, newID IDFunc) ActiveSession {
	a = a.Clone()
	block := SessionExercise{
		ID:       newID(),
		Exercise: exercise,
		Sets:     []SetLog{},
	}
	a.Session.Exercises = append(a.Session.Exercises, block)
	a.ActiveExerciseID = block.ID
	return a
}

// SetSeed carries optional values for a new set.
type SetSeed struct {
	Weight *float64 `json:"weight,omitempty"`
	Reps   *int     `json:"reps,omitempty"`
	RPE    *float64 `json:"rpe,omitempty"`
}

// AddSet appends a set to the given block. Missing weight and reps are
// copied from the previous set of the block, a missing RPE defaults to 8.
func (a ActiveSession) AddSet(exerciseID string, seed SetSeed, newID IDFunc, now time.Time) (ActiveSession, error) {
	idx := a.blockIndex(exerciseID)
	if idx < 0 {
		return a, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
	}

	set := SetLog{ID: newID(), RPE: DefaultRPE, CompletedAt: now}
	if sets := a.Session.Exercises[idx].Sets; len(sets) > 0 {
		prev := sets[len(sets)-1]
		set.Weight = prev.Weight
		set.Reps = prev.Reps
	}
	if seed.Weight != nil {
		set.Weight = *seed.Weight
	}
	if seed.Reps != nil {
		set.Reps = *seed.Reps
	}
	if seed.RPE != nil {
		set.RPE = *seed.RPE
	}
	if err := validateSet(set); err != nil {
		return a, err
	}

	a = a.Clone()
	block := &a.Session.Exercises[idx]
	block.Sets = append(block.Sets, set)
	return a, nil
}

type SetField string

// MaxReps matches the integer column the reps are stored in.
const MaxReps = math.MaxInt32

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
	FieldRPE    SetField = "rpe"
)

// UpdateSet replaces one numeric field of the set with the given id,
// searching every block of the session.
func (a ActiveSession) UpdateSet(setID string, field SetField, value float64) (ActiveSession, error) {
	if err := validateField(field, value); err != nil {
		return a, err
	}

	for i, block := range a.Session.Exercises {
		for j, set := range block.Sets {
			if set.ID != setID {
				continue
			}
			a = a.Clone()
			updated := &a.Session.Exercises[i].Sets[j]
			switch field {
			case FieldWeight:
				updated.Weight = value
			case FieldReps:
				updated.Reps = int(value)
			case FieldRPE:
				updated.RPE = value
			}
			return a, nil
		}
	}

	return a, fmt.Errorf("%w: %s", ErrSetNotFound, setID)
}

// RemoveSet removes a set by identity. Remaining sets keep their ids.
func (a ActiveSession) RemoveSet(exerciseID, setID string) (ActiveSession, error) {
	idx := a.blockIndex(exerciseID)
	if idx < 0 {
		return a, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
	}

	sets := a.Session.Exercises[idx].Sets
	kept := make([]SetLog, 0, len(sets))
	for _, s := range sets {
		if s.ID != setID {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sets) {
		return a, fmt.Errorf("%w: %s", ErrSetNotFound, setID)
	}

	a = a.Clone()
	a.Session.Exercises[idx].Sets = kept
	return a, nil
}

// SetActiveExercise stores the pointer as given, even if no block matches.
func (a ActiveSession) SetActiveExercise(exerciseID string) ActiveSession {
	a = a.Clone()
	a.ActiveExerciseID = exerciseID
	return a
}

func (a ActiveSession) ActiveExercise() (SessionExercise, bool) {
	idx := a.blockIndex(a.ActiveExerciseID)
	if idx < 0 {
		return SessionExercise{}, false
	}
	return a.Session.Exercises[idx].clone(), true
}

func (a ActiveSession) Exercise(exerciseID string) (SessionExercise, bool) {
	idx := a.blockIndex(exerciseID)
	if idx < 0 {
		return SessionExercise{}, false
	}
	return a.Session.Exercises[idx].clone(), true
}

func (a ActiveSession) blockIndex(exerciseID string) int {
	if exerciseID == "" {
		return -1
	}
	for i, e := range a.Session.Exercises {
		if e.ID == exerciseID {
			return i
		}
	}
	return -1
}

func validateField(field SetField, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidValue, field)
	}
	switch field {
	case FieldWeight:
		if value < 0 {
			return fmt.Errorf("%w: weight must not be negative", ErrInvalidValue)
		}
	case FieldReps:
		if value < 0 || value != math.Trunc(value) {
			return fmt.Errorf("%w: reps must be a non-negative integer", ErrInvalidValue)
		}
		if value > MaxReps {
			return fmt.Errorf("%w: reps must not exceed %d", ErrInvalidValue, MaxReps)
		}
	case FieldRPE:
		if value < 0 || value > 10 {
			return fmt.Errorf("%w: rpe must be between 0 and 10", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func validateSet(s SetLog) error {
	if err := validateField(FieldWeight, s.Weight); err != nil {
		return err
	}
	if err := validateField(FieldReps, float64(s.Reps)); err != nil {
		return err
	}
	return validateField(FieldRPE, s.RPE)
}
