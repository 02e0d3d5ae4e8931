package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type ShowTimeRepository interface {
	Create(ctx context.Context, showTime *entity.ShowTime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.ShowTime, error)
	FindByIDAndMovie(ctx context.Context, id, movieID uuid.UUID) (*entity.ShowTime, error)
}

type showTimeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowTimeRepository(db database.Querier, log *zap.Logger) ShowTimeRepository {
	return &showTimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_time")),
	}
}

func (r *showTimeRepository) Create(ctx context.Context, showTime *entity.ShowTime) error {
	query := `
		INSERT INTO show_times (id, movie_id, show_time, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		showTime.ID,
		showTime.MovieID,
		toPgTime(showTime.ShowTime),
		showTime.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show time",
			zap.Error(err),
			zap.String("movie_id", showTime.MovieID.String()),
		)
		return fmt.Errorf("create show time for movie %s: %w", showTime.MovieID, err)
	}

	return nil
}

func (r *showTimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	query := `
		SELECT id, movie_id, show_time, created_at
		FROM show_times
		WHERE id = $1
	`

	showTime, err := scanShowTime(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find show time",
			zap.Error(err),
			zap.String("show_time_id", id.String()),
		)
		return nil, fmt.Errorf("find show time %s: %w", id, err)
	}

	return showTime, nil
}

// FindByIDAndMovie returns the show time only when it belongs to movieID
func (r *showTimeRepository) FindByIDAndMovie(ctx context.Context, id, movieID uuid.UUID) (*entity.ShowTime, error) {
	query := `
		SELECT id, movie_id, show_time, created_at
		FROM show_times
		WHERE id = $1 AND movie_id = $2
	`

	showTime, err := scanShowTime(r.db.QueryRow(ctx, query, id, movieID))
	if err != nil {
		r.log.Error("Failed to find show time for movie",
			zap.Error(err),
			zap.String("show_time_id", id.String()),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find show time %s for movie %s: %w", id, movieID, err)
	}

	return showTime, nil
}

func (r *showTimeRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.ShowTime, error) {
	query := `
		SELECT id, movie_id, show_time, created_at
		FROM show_times
		WHERE movie_id = $1
		ORDER BY show_time
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find show times by movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find show times for movie %s: %w", movieID, err)
	}
	defer rows.Close()

	var showTimes []*entity.ShowTime
	for rows.Next() {
		showTime, err := scanShowTime(rows)
		if err != nil {
			r.log.Error("Failed to scan show time row", zap.Error(err))
			return nil, fmt.Errorf("scan show time: %w", err)
		}
		showTimes = append(showTimes, showTime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show times: %w", err)
	}

	return showTimes, nil
}

func scanShowTime(row pgx.Row) (*entity.ShowTime, error) {
	var (
		showTime entity.ShowTime
		clock    pgtype.Time
	)
	err := row.Scan(
		&showTime.ID,
		&showTime.MovieID,
		&clock,
		&showTime.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	showTime.ShowTime = fromPgTime(clock)
	return &showTime, nil
}

// Postgres TIME is microseconds since midnight; entities keep it on the zero date.
func toPgTime(t time.Time) pgtype.Time {
	micros := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
		int64(t.Minute())*int64(time.Minute/time.Microsecond) +
		int64(t.Second())*int64(time.Second/time.Microsecond) +
		int64(t.Nanosecond())/int64(time.Microsecond)
	return pgtype.Time{Microseconds: micros, Valid: true}
}

func fromPgTime(t pgtype.Time) time.Time {
	return time.Time{}.Add(time.Duration(t.Microseconds) * time.Microsecond)
}
