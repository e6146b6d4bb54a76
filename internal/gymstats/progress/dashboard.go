package progress

import (
	"fmt"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/session"

	log "github.com/sirupsen/logrus"
)

// Widget is one independently computed part of a student dashboard.
// A failing widget carries its Error and leaves the others intact.
type Widget[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

func (w Widget[T]) Failed() bool {
	return w.Error != ""
}

type Dashboard struct {
	Exercise     string                             `json:"exercise"`
	Stats        Widget[StudentStats]               `json:"stats"`
	TopExercises Widget[[]string]                   `json:"topExercises"`
	Progress     Widget[[]ProgressPoint]            `json:"progress"`
	History      Widget[[]session.CompletedSession] `json:"history"`
}

// BuildDashboard computes the student dashboard. With an empty exerciseName
// the progress chart follows the most frequent exercise.
func BuildDashboard(sessions []session.CompletedSession, exerciseName string, now time.Time) Dashboard {
	d := Dashboard{
		Stats: renderWidget("stats", func() StudentStats {
			return AggregateStudentStats(sessions, now)
		}),
		TopExercises: renderWidget("top-exercises", func() []string {
			return RankTopExercises(sessions, DefaultTopExercisesLimit)
		}),
		History: renderWidget("history", func() []session.CompletedSession {
			return sessions
		}),
	}

	if exerciseName == "" && len(d.TopExercises.Data) > 0 {
		exerciseName = d.TopExercises.Data[0]
	}
	d.Exercise = exerciseName
	d.Progress = renderWidget("progress", func() []ProgressPoint {
		return BuildProgressSeries(sessions, exerciseName)
	})

	return d
}

func renderWidget[T any](name string, render func() T) (w Widget[T]) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("dashboard widget %s failed: %v", name, r)
			var zero T
			w = Widget[T]{
				Data:  zero,
				Error: fmt.Sprintf("%s could not be displayed", name),
			}
		}
	}()

	return Widget[T]{Data: render()}
}
