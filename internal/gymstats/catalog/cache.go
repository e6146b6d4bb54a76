package catalog

//go:generate mockgen -source=$GOFILE -destination=cache_mocks_test.go -package=catalog_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type catalogRepo interface {
	ListStudents(ctx context.Context) ([]Person, error)
	CreateStudent(ctx context.Context, student Person) (*Person, error)
	ListExercises(ctx context.Context) ([]Exercise, error)
	SaveExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
	ListRoutines(ctx context.Context) ([]Routine, error)
	SaveRoutine(ctx context.Context, routine Routine) (*Routine, error)
}

// Cache is the shared, process-wide snapshot of reference data.
// Readers get copies; every entity type is refreshed on its own.
type Cache struct {
	repo catalogRepo

	mu        sync.RWMutex
	students  []Person
	exercises []Exercise
	routines  []Routine
}

func NewCache(repo catalogRepo) *Cache {
	return &Cache{
		repo: repo,
	}
}

func (c *Cache) RefreshStudents(ctx context.Context) error {
	students, err := c.repo.ListStudents(ctx)
	if err != nil {
		return fmt.Errorf("refresh students: %w", err)
	}
	c.mu.Lock()
	c.students = students
	c.mu.Unlock()
	return nil
}

func (c *Cache) RefreshExercises(ctx context.Context) error {
	exercises, err := c.repo.ListExercises(ctx)
	if err != nil {
		return fmt.Errorf("refresh exercises: %w", err)
	}
	c.mu.Lock()
	c.exercises = exercises
	c.mu.Unlock()
	return nil
}

func (c *Cache) RefreshRoutines(ctx context.Context) error {
	routines, err := c.repo.ListRoutines(ctx)
	if err != nil {
		return fmt.Errorf("refresh routines: %w", err)
	}
	c.mu.Lock()
	c.routines = routines
	c.mu.Unlock()
	return nil
}

// RefreshAll refreshes the three catalogs concurrently. A failing catalog
// keeps its previous snapshot while the others are still replaced.
func (c *Cache) RefreshAll(ctx context.Context) error {
	refreshers := []func(context.Context) error{
		c.RefreshStudents,
		c.RefreshExercises,
		c.RefreshRoutines,
	}

	errs := make([]error, len(refreshers))
	var wg sync.WaitGroup
	for i, refresh := range refreshers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = refresh(ctx)
		}()
	}
	wg.Wait()

	return multierr.Combine(errs...)
}

// RunRefresher refreshes everything every interval until ctx is done.
func (c *Cache) RunRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.RefreshAll(ctx); err != nil {
				log.Errorf("catalog refresher: %s", err)
			}
		}
	}
}

func (c *Cache) Students() []Person {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Person(nil), c.students...)
}

func (c *Cache) Exercises() []Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Exercise(nil), c.exercises...)
}

func (c *Cache) Routines() []Routine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	routines := make([]Routine, len(c.routines))
	for i, r := range c.routines {
		r.Exercises = append([]RoutineExercise(nil), r.Exercises...)
		routines[i] = r
	}
	return routines
}

func (c *Cache) Student(id string) (Person, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.students {
		if s.ID == id {
			return s, true
		}
	}
	return Person{}, false
}

func (c *Cache) Exercise(id string) (Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

func (c *Cache) Routine(id string) (Routine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.routines {
		if r.ID == id {
			r.Exercises = append([]RoutineExercise(nil), r.Exercises...)
			return r, true
		}
	}
	return Routine{}, false
}

func (c *Cache) CreateStudent(ctx context.Context, name, email string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: student name is empty", ErrValidation)
	}

	student, err := c.repo.CreateStudent(ctx, Person{Name: name, Email: strings.TrimSpace(email), Role: RoleStudent})
	if err != nil {
		return nil, err
	}
	if err := c.RefreshStudents(ctx); err != nil {
		log.Warnf("student %s created, but refresh failed: %s", student.ID, err)
	}
	return student, nil
}

func (c *Cache) SaveExercise(ctx context.Context, exercise Exercise) (*Exercise, error) {
	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	saved, err := c.repo.SaveExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}
	if err := c.RefreshExercises(ctx); err != nil {
		log.Warnf("exercise %s saved, but refresh failed: %s", saved.ID, err)
	}
	return saved, nil
}

func (c *Cache) DeleteExercise(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: exercise id is empty", ErrValidation)
	}
	if err := c.repo.DeleteExercise(ctx, id); err != nil {
		return err
	}
	if err := c.RefreshExercises(ctx); err != nil {
		log.Warnf("exercise %s deleted, but refresh failed: %s", id, err)
	}
	return nil
}

func (c *Cache) SaveRoutine(ctx context.Context, routine Routine) (*Routine, error) {
	if err := routine.Validate(); err != nil {
		return nil, err
	}

	saved, err := c.repo.SaveRoutine(ctx, routine)
	if err != nil {
		return nil, err
	}
	if err := c.RefreshRoutines(ctx); err != nil {
		log.Warnf("routine %s saved, but refresh failed: %s", saved.ID, err)
	}
	return saved, nil
}
