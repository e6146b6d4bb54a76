package progress

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/session"
)

const DefaultTopExercisesLimit = 5

// ProgressPoint holds one session-day of a single exercise.
type ProgressPoint struct {
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	OneRepMax float64   `json:"oneRepMax"`
	Volume    float64   `json:"volume"`
	MaxWeight float64   `json:"maxWeight"`
	AvgRPE    float64   `json:"avgRpe"`
}

type StudentStats struct {
	TotalSessions    int        `json:"totalSessions"`
	TotalVolume      float64    `json:"totalVolume"`
	SessionsThisWeek int        `json:"sessionsThisWeek"`
	LastSessionDate  *time.Time `json:"lastSessionDate,omitempty"`
	// CurrentStreak is not computed yet and is always 0.
	CurrentStreak int `json:"currentStreak"`
}

// EstimateOneRepMax uses the Epley formula.
func EstimateOneRepMax(weight float64, reps int) float64 {
	switch {
	case reps <= 0:
		return 0
	case reps == 1:
		return weight
	}
	return math.Round(weight * (1 + float64(reps)/30))
}

// BuildProgressSeries returns one point per session (oldest first) that has
// at least one set of the named exercise. All blocks with that name in a
// session are merged into its point.
func BuildProgressSeries(sessions []session.CompletedSession, exerciseName string) []ProgressPoint {
	ordered := append([]session.CompletedSession{}, sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	points := make([]ProgressPoint, 0)
	for _, s := range ordered {
		var sets []session.CompletedSet
		for _, ex := range s.Exercises {
			if ex.Name == exerciseName {
				sets = append(sets, ex.Sets...)
			}
		}
		if len(sets) == 0 {
			continue
		}

		point := ProgressPoint{
			Date:  s.Date,
			Label: s.Date.Format("2 Jan"),
		}
		var rpeSum float64
		rpeCount := 0
		for _, set := range sets {
			point.OneRepMax = math.Max(point.OneRepMax, EstimateOneRepMax(set.Weight, set.Reps))
			point.Volume += set.Weight * float64(set.Reps)
			point.MaxWeight = math.Max(point.MaxWeight, set.Weight)
			if set.RPE > 0 {
				rpeSum += set.RPE
				rpeCount++
			}
		}
		if rpeCount > 0 {
			point.AvgRPE = math.Round(rpeSum/float64(rpeCount)*10) / 10
		}
		points = append(points, point)
	}

	return points
}

// StartOfWeek returns the most recent Sunday at midnight in t's location.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func AggregateStudentStats(sessions []session.CompletedSession, now time.Time) StudentStats {
	stats := StudentStats{
		TotalSessions: len(sessions),
	}
	if len(sessions) == 0 {
		return stats
	}

	weekStart := StartOfWeek(now)
	var last time.Time
	var volume float64
	for _, s := range sessions {
		volume += s.TotalVolume
		if !s.Date.Before(weekStart) {
			stats.SessionsThisWeek++
		}
		if s.Date.After(last) {
			last = s.Date
		}
	}
	stats.TotalVolume = math.Round(volume)
	stats.LastSessionDate = &last

	return stats
}

// RankTopExercises orders exercise names by the number of sessions they
// appear in. A name repeated within one session is counted once.
// A zero limit yields an empty list; a negative one means
// DefaultTopExercisesLimit.
func RankTopExercises(sessions []session.CompletedSession, limit int) []string {
	if limit == 0 {
		return []string{}
	}
	if limit < 0 {
		limit = DefaultTopExercisesLimit
	}

	counts := make(map[string]int)
	var names []string
	for _, s := range sessions {
		seen := make(map[string]bool, len(s.Exercises))
		for _, ex := range s.Exercises {
			if seen[ex.Name] {
				continue
			}
			seen[ex.Name] = true
			if _, ok := counts[ex.Name]; !ok {
				names = append(names, ex.Name)
			}
			counts[ex.Name]++
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	if names == nil {
		return []string{}
	}

	return names
}
