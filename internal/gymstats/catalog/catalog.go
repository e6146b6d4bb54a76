package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultRestSeconds is used for exercises stored without a rest time.
const DefaultRestSeconds = 120

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("already exists")
)

type Role string

const (
	RoleCoach   Role = "COACH"
	RoleStudent Role = "STUDENT"
)

type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

// Credentials are only ever read by the identity provider.
type Credentials struct {
	Person       Person
	PasswordHash string
}

type Exercise struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	MuscleGroup        string `json:"muscleGroup"`
	DefaultRestSeconds int    `json:"defaultRestSeconds"`
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: exercise name is empty", ErrValidation)
	}
	if e.DefaultRestSeconds < 0 {
		return fmt.Errorf("%w: negative rest seconds for exercise %s", ErrValidation, e.Name)
	}
	return nil
}

// RoutineExercise is one ordered line of a routine template.
type RoutineExercise struct {
	ExerciseID  string `json:"exerciseId"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"restSeconds"`
}

type Routine struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatorID   string            `json:"creatorId"`
	Exercises   []RoutineExercise `json:"exercises"`
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: routine name is empty", ErrValidation)
	}
	for i, line := range r.Exercises {
		if line.ExerciseID == "" {
			return fmt.Errorf("%w: routine line %d has no exercise", ErrValidation, i)
		}
		if line.Sets < 0 {
			return fmt.Errorf("%w: routine line %d has negative sets", ErrValidation, i)
		}
		if line.RestSeconds < 0 {
			return fmt.Errorf("%w: routine line %d has negative rest", ErrValidation, i)
		}
	}
	return nil
}
