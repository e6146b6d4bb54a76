package session

import (
	"math"
	"time"
)

const (
	UnknownStudent  = "Unknown student"
	UnknownExercise = "Unknown"
)

type CompletedSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	RPE    float64 `json:"rpe"`
}

type CompletedExercise struct {
	Name string         `json:"name"`
	Sets []CompletedSet `json:"sets"`
}

// CompletedSession is the denormalized history record used by the metrics.
type CompletedSession struct {
	ID            string              `json:"id"`
	StudentID     string              `json:"studentId"`
	StudentName   string              `json:"studentName"`
	Date          time.Time           `json:"date"`
	ExerciseCount int                 `json:"exerciseCount"`
	TotalSets     int                 `json:"totalSets"`
	TotalVolume   float64             `json:"totalVolume"`
	Exercises     []CompletedExercise `json:"exercises"`
}

// NewCompletedSession derives the counts and the rounded total volume and
// fills the name placeholders.
func NewCompletedSession(id, studentID, studentName string, date time.Time, exercises []CompletedExercise) CompletedSession {
	if studentName == "" {
		studentName = UnknownStudent
	}

	cs := CompletedSession{
		ID:            id,
		StudentID:     studentID,
		StudentName:   studentName,
		Date:          date,
		ExerciseCount: len(exercises),
		Exercises:     make([]CompletedExercise, 0, len(exercises)),
	}

	var volume float64
	for _, e := range exercises {
		if e.Name == "" {
			e.Name = UnknownExercise
		}
		e.Sets = append([]CompletedSet{}, e.Sets...)
		for _, s := range e.Sets {
			volume += s.Weight * float64(s.Reps)
		}
		cs.TotalSets += len(e.Sets)
		cs.Exercises = append(cs.Exercises, e)
	}
	cs.TotalVolume = math.Round(volume)

	return cs
}
