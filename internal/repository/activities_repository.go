package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/pkg/cleanup"
	"github.com/limbo/timely/pkg/entity"
)

// lockAuthorQuery serializes writers of one author so the overlap check and
// the insert/update happen atomically. The lock is released on tx end.
const lockAuthorQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0));`

const overlapCountQuery = `SELECT COUNT(*) FROM activities WHERE author_id = $1 AND start_time < $2 AND end_time > $3;`

const overlapCountExcludingQuery = `SELECT COUNT(*) FROM activities WHERE author_id = $1 AND start_time < $2 AND end_time > $3 AND id <> $4;`

type ActivitiesRepository struct {
	conn PgConnection
}

func NewActivitiesRepo(cfg DBConfig) *ActivitiesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for activitiesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activitiesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ActivitiesRepository{
		conn: pool,
	}
}

func NewActivitiesRepoWithConn(conn PgConnection) *ActivitiesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activitiesRepo: " + err.Error())
	}
	return &ActivitiesRepository{
		conn: conn,
	}
}

func (ar *ActivitiesRepository) Create(ctx context.Context, activity *entity.Activity) (uuid.UUID, error) {
	tx, err := ar.conn.Begin(ctx)
	if err != nil {
		return uuid.UUID{}, errors.New("beginning tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, lockAuthorQuery, activity.AuthorID)
	if err != nil {
		return uuid.UUID{}, errors.New("acquiring author lock error: " + err.Error())
	}
	var overlaps int
	row := tx.QueryRow(ctx, overlapCountQuery, activity.AuthorID, activity.EndTime, activity.StartTime)
	if err := row.Scan(&overlaps); err != nil {
		return uuid.UUID{}, errors.New("counting overlaps error: " + err.Error())
	}
	if overlaps > 0 {
		return uuid.UUID{}, errorvalues.ErrActivityOverlap
	}
	var id uuid.UUID
	row = tx.QueryRow(ctx, `INSERT INTO activities (author_id, category_id, start_time, end_time, mood, energy_level, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		activity.AuthorID,
		activity.CategoryID,
		activity.StartTime,
		activity.EndTime,
		activity.Mood,
		activity.EnergyLevel,
		activity.Notes,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				if pgErr.ConstraintName == "activities_category_id_fkey" {
					return uuid.UUID{}, errorvalues.ErrCategoryNotFound
				}
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating activity db error: " + err.Error())
	}
	if err := tx.Commit(ctx); err != nil {
		return uuid.UUID{}, errors.New("committing tx error: " + err.Error())
	}
	return id, nil
}

func (ar *ActivitiesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activity entity.Activity
	activity.ID = id
	row := ar.conn.QueryRow(ctx, `SELECT author_id, category_id, start_time, end_time, mood, energy_level, notes, created_at, updated_at
		FROM activities WHERE id = $1;`, id)
	err := row.Scan(
		&activity.AuthorID,
		&activity.CategoryID,
		&activity.StartTime,
		&activity.EndTime,
		&activity.Mood,
		&activity.EnergyLevel,
		&activity.Notes,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrActivityNotFound
		}
		return nil, errors.New("getting activity by id error: " + err.Error())
	}
	return &activity, nil
}

func (ar *ActivitiesRepository) GetByAuthorID(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*entity.Activity, error) {
	activities := make([]*entity.Activity, 0)
	rows, err := ar.conn.Query(ctx, `SELECT id, author_id, category_id, start_time, end_time, mood, energy_level, notes, created_at, updated_at
		FROM activities WHERE author_id = $1 ORDER BY start_time DESC LIMIT $2 OFFSET $3;`, authorID, limit, offset)
	if err != nil {
		return nil, errors.New("getting activities by author error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		a := entity.Activity{}
		err = rows.Scan(&a.ID, &a.AuthorID, &a.CategoryID, &a.StartTime, &a.EndTime, &a.Mood, &a.EnergyLevel, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling activity error: " + err.Error())
		}
		activities = append(activities, &a)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return activities, nil
}

func (ar *ActivitiesRepository) Update(ctx context.Context, activity *entity.Activity) error {
	tx, err := ar.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, lockAuthorQuery, activity.AuthorID)
	if err != nil {
		return errors.New("acquiring author lock error: " + err.Error())
	}
	var overlaps int
	row := tx.QueryRow(ctx, overlapCountExcludingQuery, activity.AuthorID, activity.EndTime, activity.StartTime, activity.ID)
	if err := row.Scan(&overlaps); err != nil {
		return errors.New("counting overlaps error: " + err.Error())
	}
	if overlaps > 0 {
		return errorvalues.ErrActivityOverlap
	}
	ct, err := tx.Exec(ctx, `UPDATE activities SET category_id = $1, start_time = $2, end_time = $3, mood = $4, energy_level = $5, notes = $6, updated_at = NOW() WHERE id = $7;`,
		activity.CategoryID,
		activity.StartTime,
		activity.EndTime,
		activity.Mood,
		activity.EnergyLevel,
		activity.Notes,
		activity.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrCategoryNotFound
			}
		}
		return errors.New("error updating activity: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrActivityNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.New("committing tx error: " + err.Error())
	}
	return nil
}

func (ar *ActivitiesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := ar.conn.Exec(ctx, `DELETE FROM activities WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting activity: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrActivityNotFound
	}
	return nil
}

func (ar *ActivitiesRepository) GetByAuthorAndInterval(ctx context.Context, authorID uuid.UUID, start, end time.Time) ([]entity.ActivitySlice, error) {
	rows, err := ar.conn.Query(ctx, `SELECT a.id, a.category_id, c.name, a.start_time, a.end_time
		FROM activities a JOIN categories c ON c.id = a.category_id
		WHERE a.author_id = $1 AND a.start_time < $2 AND a.end_time > $3;`, authorID, end, start)
	if err != nil {
		return nil, errors.New("getting activities in interval error: " + err.Error())
	}
	return scanActivitySlices(rows)
}

func (ar *ActivitiesRepository) GetByAuthorStartingIn(ctx context.Context, authorID uuid.UUID, categoryIDs []uuid.UUID, start, end time.Time) ([]entity.ActivitySlice, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(categoryIDs) > 0 {
		rows, err = ar.conn.Query(ctx, `SELECT a.id, a.category_id, c.name, a.start_time, a.end_time
			FROM activities a JOIN categories c ON c.id = a.category_id
			WHERE a.author_id = $1 AND a.category_id = ANY($2) AND a.start_time >= $3 AND a.start_time < $4;`, authorID, categoryIDs, start, end)
	} else {
		rows, err = ar.conn.Query(ctx, `SELECT a.id, a.category_id, c.name, a.start_time, a.end_time
			FROM activities a JOIN categories c ON c.id = a.category_id
			WHERE a.author_id = $1 AND a.start_time >= $2 AND a.start_time < $3;`, authorID, start, end)
	}
	if err != nil {
		return nil, errors.New("getting activities starting in interval error: " + err.Error())
	}
	return scanActivitySlices(rows)
}

func scanActivitySlices(rows pgx.Rows) ([]entity.ActivitySlice, error) {
	defer rows.Close()
	slices := make([]entity.ActivitySlice, 0)
	for rows.Next() {
		var s entity.ActivitySlice
		err := rows.Scan(&s.ID, &s.CategoryID, &s.CategoryName, &s.StartTime, &s.EndTime)
		if err != nil {
			return nil, errors.New("unmarshalling activity slice error: " + err.Error())
		}
		slices = append(slices, s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return slices, nil
}
