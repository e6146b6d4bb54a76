package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/coachtracker/internal/telemetry/tracing"
	"github.com/2beens/coachtracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListStudents(ctx context.Context) (_ []Person, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.students.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, role, COALESCE(email, '')
		FROM persona
		WHERE role = $1
		ORDER BY name
	`, RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	return rows2persons(rows)
}

func (r *Repo) GetPerson(ctx context.Context, id string) (_ *Person, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.persons.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	p := &Person{}
	err = r.db.QueryRow(ctx, `
		SELECT id, name, role, COALESCE(email, '')
		FROM persona
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Role, &p.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", id, err)
	}
	return p, nil
}

func (r *Repo) GetCredentials(ctx context.Context, email string) (_ *Credentials, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.persons.credentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c := &Credentials{}
	err = r.db.QueryRow(ctx, `
		SELECT id, name, role, COALESCE(email, ''), COALESCE(password_hash, '')
		FROM persona
		WHERE email = $1
	`, email).Scan(&c.Person.ID, &c.Person.Name, &c.Person.Role, &c.Person.Email, &c.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	return c, nil
}

func (r *Repo) CreatePerson(ctx context.Context, person Person, passwordHash string) (_ *Person, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.persons.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("role", string(person.Role)))

	var email, hash *string
	if person.Email != "" {
		email = &person.Email
	}
	if passwordHash != "" {
		hash = &passwordHash
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO persona (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, person.Name, email, person.Role, hash).Scan(&person.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, fmt.Errorf("%w: person with email %s", ErrDuplicate, person.Email)
		}
		return nil, fmt.Errorf("insert person: %w", err)
	}
	return &person, nil
}

func (r *Repo) CreateStudent(ctx context.Context, student Person) (*Person, error) {
	student.Role = RoleStudent
	return r.CreatePerson(ctx, student, "")
}

func (r *Repo) ListExercises(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, muscle_group, COALESCE(default_rest_seconds, $1)
		FROM exercise
		ORDER BY name
	`, DefaultRestSeconds)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.DefaultRestSeconds); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}

	return exercises, nil
}

// SaveExercise inserts the exercise when it has no id yet, updates it otherwise.
func (r *Repo) SaveExercise(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.DefaultRestSeconds == 0 {
		exercise.DefaultRestSeconds = DefaultRestSeconds
	}

	if exercise.ID == "" {
		err = r.db.QueryRow(ctx, `
			INSERT INTO exercise (name, muscle_group, default_rest_seconds)
			VALUES ($1, $2, $3)
			RETURNING id
		`, exercise.Name, exercise.MuscleGroup, exercise.DefaultRestSeconds).Scan(&exercise.ID)
	} else {
		err = r.db.QueryRow(ctx, `
			INSERT INTO exercise (id, name, muscle_group, default_rest_seconds)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    muscle_group = EXCLUDED.muscle_group,
			    default_rest_seconds = EXCLUDED.default_rest_seconds
			RETURNING id
		`, exercise.ID, exercise.Name, exercise.MuscleGroup, exercise.DefaultRestSeconds).Scan(&exercise.ID)
	}
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, fmt.Errorf("%w: exercise %s", ErrDuplicate, exercise.Name)
		}
		return nil, fmt.Errorf("save exercise: %w", err)
	}

	return &exercise, nil
}

func (r *Repo) DeleteExercise(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete exercise %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRoutines returns all routines with their lines in position order.
func (r *Repo) ListRoutines(ctx context.Context) (_ []Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.routines.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, r.description, COALESCE(r.creator_id, ''),
		       re.exercise_id, re.sets, re.reps, re.rest_seconds
		FROM routine r
		LEFT JOIN routine_exercise re ON re.routine_id = r.id
		ORDER BY r.name, r.id, re.position
	`)
	if err != nil {
		return nil, fmt.Errorf("query routines: %w", err)
	}
	defer rows.Close()

	var routines []Routine
	for rows.Next() {
		var (
			rt          Routine
			exerciseID  *string
			sets        *int
			reps        *string
			restSeconds *int
		)
		if err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Description, &rt.CreatorID,
			&exerciseID, &sets, &reps, &restSeconds,
		); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}

		if len(routines) == 0 || routines[len(routines)-1].ID != rt.ID {
			rt.Exercises = []RoutineExercise{}
			routines = append(routines, rt)
		}
		if exerciseID == nil {
			continue
		}

		last := &routines[len(routines)-1]
		last.Exercises = append(last.Exercises, RoutineExercise{
			ExerciseID:  *exerciseID,
			Sets:        derefOr(sets, 0),
			Reps:        derefOr(reps, ""),
			RestSeconds: derefOr(restSeconds, DefaultRestSeconds),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routines: %w", err)
	}

	return routines, nil
}

// SaveRoutine upserts the routine header and replaces all of its lines in one transaction.
func (r *Repo) SaveRoutine(ctx context.Context, routine Routine) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.routines.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("lines", len(routine.Exercises)))

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

	var creatorID *string
	if routine.CreatorID != "" {
		creatorID = &routine.CreatorID
	}

	if routine.ID == "" {
		err = tx.QueryRow(ctx, `
			INSERT INTO routine (name, description, creator_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, routine.Name, routine.Description, creatorID).Scan(&routine.ID)
	} else {
		err = tx.QueryRow(ctx, `
			INSERT INTO routine (id, name, description, creator_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    description = EXCLUDED.description
			RETURNING id
		`, routine.ID, routine.Name, routine.Description, creatorID).Scan(&routine.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert routine: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM routine_exercise WHERE routine_id = $1`, routine.ID); err != nil {
		return nil, fmt.Errorf("delete routine lines: %w", err)
	}

	for i, line := range routine.Exercises {
		if _, err = tx.Exec(ctx, `
			INSERT INTO routine_exercise (routine_id, position, exercise_id, sets, reps, rest_seconds)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, routine.ID, i, line.ExerciseID, line.Sets, line.Reps, line.RestSeconds); err != nil {
			return nil, fmt.Errorf("insert routine line %d: %w", i, err)
		}
	}

	return &routine, nil
}

func rows2persons(rows pgx.Rows) ([]Person, error) {
	var persons []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Email); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

func derefOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
