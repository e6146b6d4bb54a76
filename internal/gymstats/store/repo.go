package store

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/catalog"
	"github.com/2beens/coachtracker/internal/gymstats/session"
	"github.com/2beens/coachtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

var _ SessionStore = (*Repo)(nil)

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListActive(ctx context.Context) (_ []session.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list-active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.student_id, s.coach_id, s.started_at,
		       e.id, e.exercise_id, x.name, x.muscle_group, x.default_rest_seconds, e.notes,
		       st.id, st.weight, st.reps, st.rpe, st.completed_at
		FROM training_session s
		LEFT JOIN session_exercise e ON e.session_id = s.id
		LEFT JOIN exercise x ON x.id = e.exercise_id
		LEFT JOIN session_set st ON st.session_id = s.id AND st.block_id = e.id
		WHERE s.active
		ORDER BY s.started_at DESC, s.id, e.position, st.position
	`)
	if err != nil {
		return nil, fmt.Errorf("query active sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]session.Session, 0)
	for rows.Next() {
		var (
			s                          session.Session
			blockID, exerciseID, notes *string
			exName, muscleGroup, setID *string
			restSeconds, reps          *int
			weight, rpe                *float64
			completedAt                *time.Time
		)
		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.CoachID, &s.StartedAt,
			&blockID, &exerciseID, &exName, &muscleGroup, &restSeconds, &notes,
			&setID, &weight, &reps, &rpe, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("scan active session: %w", err)
		}
		s.Active = true

		if n := len(sessions); n == 0 || sessions[n-1].ID != s.ID {
			s.Exercises = []session.SessionExercise{}
			sessions = append(sessions, s)
		}
		current := &sessions[len(sessions)-1]
		if blockID == nil {
			continue
		}

		if n := len(current.Exercises); n == 0 || current.Exercises[n-1].ID != *blockID {
			current.Exercises = append(current.Exercises, session.SessionExercise{
				ID: *blockID,
				Exercise: catalog.Exercise{
					ID:                 deref(exerciseID, ""),
					Name:               deref(exName, ""),
					MuscleGroup:        deref(muscleGroup, ""),
					DefaultRestSeconds: deref(restSeconds, catalog.DefaultRestSeconds),
				},
				Sets:  []session.SetLog{},
				Notes: deref(notes, ""),
			})
		}
		if setID == nil {
			continue
		}

		block := &current.Exercises[len(current.Exercises)-1]
		block.Sets = append(block.Sets, session.SetLog{
			ID:          *setID,
			Weight:      deref(weight, 0),
			Reps:        deref(reps, 0),
			RPE:         deref(rpe, 0),
			CompletedAt: deref(completedAt, time.Time{}),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active sessions: %w", err)
	}

	return sessions, nil
}

// Save upserts the session header and replaces all of its blocks and sets
// in one transaction.
func (r *Repo) Save(ctx context.Context, s session.Session) (_ *session.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("id", s.ID),
		attribute.Bool("active", s.Active),
		attribute.Int("exercises", len(s.Exercises)),
	)

	s = s.Clone()
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("rollback: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if s.ID == "" {
		err = tx.QueryRow(ctx, `
			INSERT INTO training_session (student_id, coach_id, started_at, active)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, s.StudentID, s.CoachID, s.StartedAt, s.Active).Scan(&s.ID)
		if err != nil {
			return nil, fmt.Errorf("insert session: %w", err)
		}
	} else {
		tag, err := tx.Exec(ctx, `
			UPDATE training_session
			SET student_id = $2, coach_id = $3, started_at = $4, active = $5, updated_at = now()
			WHERE id = $1
		`, s.ID, s.StudentID, s.CoachID, s.StartedAt, s.Active)
		if err != nil {
			return nil, fmt.Errorf("update session %s: %w", s.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("update session %s: %w", s.ID, ErrSessionNotFound)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM session_set WHERE session_id = $1`, s.ID); err != nil {
			return nil, fmt.Errorf("delete session sets: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM session_exercise WHERE session_id = $1`, s.ID); err != nil {
			return nil, fmt.Errorf("delete session exercises: %w", err)
		}
	}

	batch := &pgx.Batch{}
	for i, e := range s.Exercises {
		batch.Queue(`
			INSERT INTO session_exercise (session_id, id, exercise_id, position, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, s.ID, e.ID, e.Exercise.ID, i, e.Notes)
		for j, set := range e.Sets {
			batch.Queue(`
				INSERT INTO session_set (session_id, block_id, id, position, weight, reps, rpe, completed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, s.ID, e.ID, set.ID, j, set.Weight, set.Reps, set.RPE, set.CompletedAt)
		}
	}
	if batch.Len() > 0 {
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("insert session exercises: %w", err)
		}
	}

	return &s, nil
}

func (r *Repo) Finish(ctx context.Context, s session.Session) error {
	s.Active = false
	_, err := r.Save(ctx, s)
	return err
}

func (r *Repo) ListCompleted(ctx context.Context, studentID string) (_ []session.CompletedSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list-completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student", studentID))

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.student_id, COALESCE(p.name, ''), s.started_at,
		       e.id, COALESCE(x.name, ''),
		       st.id, st.weight, st.reps, st.rpe
		FROM training_session s
		LEFT JOIN persona p ON p.id = s.student_id
		LEFT JOIN session_exercise e ON e.session_id = s.id
		LEFT JOIN exercise x ON x.id = e.exercise_id
		LEFT JOIN session_set st ON st.session_id = s.id AND st.block_id = e.id
		WHERE NOT s.active AND ($1 = '' OR s.student_id = $1)
		ORDER BY s.started_at DESC, s.id, e.position, st.position
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("query completed sessions: %w", err)
	}
	defer rows.Close()

	type header struct {
		id, studentID, studentName string
		date                       time.Time
		blockIDs                   []string
		blocks                     []session.CompletedExercise
	}

	var headers []*header
	for rows.Next() {
		var (
			h                      header
			blockID, exName, setID *string
			weight, rpe            *float64
			reps                   *int
		)
		if err := rows.Scan(
			&h.id, &h.studentID, &h.studentName, &h.date,
			&blockID, &exName,
			&setID, &weight, &reps, &rpe,
		); err != nil {
			return nil, fmt.Errorf("scan completed session: %w", err)
		}

		if n := len(headers); n == 0 || headers[n-1].id != h.id {
			headers = append(headers, &h)
		}
		current := headers[len(headers)-1]
		if blockID == nil {
			continue
		}

		if n := len(current.blockIDs); n == 0 || current.blockIDs[n-1] != *blockID {
			current.blockIDs = append(current.blockIDs, *blockID)
			current.blocks = append(current.blocks, session.CompletedExercise{
				Name: deref(exName, ""),
				Sets: []session.CompletedSet{},
			})
		}
		if setID == nil {
			continue
		}

		block := &current.blocks[len(current.blocks)-1]
		block.Sets = append(block.Sets, session.CompletedSet{
			Weight: deref(weight, 0),
			Reps:   deref(reps, 0),
			RPE:    deref(rpe, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed sessions: %w", err)
	}

	completed := make([]session.CompletedSession, 0, len(headers))
	for _, h := range headers {
		completed = append(completed, session.NewCompletedSession(h.id, h.studentID, h.studentName, h.date, h.blocks))
	}

	return completed, nil
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
