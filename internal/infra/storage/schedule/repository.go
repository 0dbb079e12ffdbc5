package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	sqltypes "github.com/jmoiron/sqlx/types"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

const dateLayout = "2006-01-02"

// Repository репозиторий расписания: недельный график, исключения по датам и блокировки времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekly получает расписание ресурса на день недели
func (r *Repository) GetWeekly(ctx context.Context, resourceID uuid.UUID, day time.Weekday) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "resource_id", "day_of_week", "start_time", "end_time", "breaks").
		From("schedules").
		Where(squirrel.Eq{"resource_id": resourceID, "day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanWeekly(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - scan schedule: %v", ErrScanRow, err)
	}

	return s, nil
}

// UpsertWeekly создает или заменяет расписание на день недели
func (r *Repository) UpsertWeekly(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breaks, err := json.Marshal(nonNilBreaks(s.Breaks))
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - marshal breaks: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("id", "resource_id", "day_of_week", "start_time", "end_time", "breaks").
		Values(s.ID, s.ResourceID, int(s.DayOfWeek), s.StartTime, s.EndTime, sqltypes.JSONText(breaks)).
		Suffix(`ON CONFLICT (resource_id, day_of_week) DO UPDATE
			SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, breaks = EXCLUDED.breaks
			RETURNING id, resource_id, day_of_week, start_time, end_time, breaks`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanWeekly(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - execute upsert: %v", ErrExecQuery, err)
	}

	return saved, nil
}

// GetException получает исключение на календарную дату
func (r *Repository) GetException(ctx context.Context, date time.Time) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "is_closed", "start_time", "end_time", "notes").
		From("schedule_exceptions").
		Where(squirrel.Eq{"date": date.Format(dateLayout)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetException - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetException - scan exception: %v", ErrScanRow, err)
	}

	return e, nil
}

// UpsertException создает или заменяет исключение на дату (одно исключение на дату)
func (r *Repository) UpsertException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns("id", "date", "is_closed", "start_time", "end_time", "notes").
		Values(e.ID, e.Date.Format(dateLayout), e.IsClosed, e.StartTime, e.EndTime, e.Notes).
		Suffix(`ON CONFLICT (date) DO UPDATE
			SET is_closed = EXCLUDED.is_closed, start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time, notes = EXCLUDED.notes
			RETURNING id, date, is_closed, start_time, end_time, notes`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - execute upsert: %v", ErrExecQuery, err)
	}

	return saved, nil
}

// DeleteException удаляет исключение на дату
func (r *Repository) DeleteException(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"date": date.Format(dateLayout)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "DeleteException", query, args, ErrExceptionNotFound)
}

// ListBlockedInRange возвращает блокировки ресурса, пересекающиеся с [from, to)
func (r *Repository) ListBlockedInRange(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "resource_id", "start_at", "end_at", "reason", "created_at").
		From("blocked_times").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make([]*domain.BlockedTime, 0)
	for rows.Next() {
		var b domain.BlockedTime
		if err := rows.Scan(&b.ID, &b.ResourceID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedInRange - scan blocked time: %v", ErrScanRow, err)
		}
		blocked = append(blocked, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedInRange - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// CreateBlocked создает блокировку времени
func (r *Repository) CreateBlocked(ctx context.Context, b *domain.BlockedTime) (*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_times").
		Columns("id", "resource_id", "start_at", "end_at", "reason").
		Values(b.ID, b.ResourceID, b.StartAt, b.EndAt, b.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlocked - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlocked - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// DeleteBlocked удаляет блокировку времени
func (r *Repository) DeleteBlocked(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "DeleteBlocked", query, args, ErrBlockedTimeNotFound)
}

func execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWeekly(row rowScanner) (*domain.WeeklySchedule, error) {
	var (
		s      domain.WeeklySchedule
		day    int
		breaks sqltypes.JSONText
	)

	if err := row.Scan(&s.ID, &s.ResourceID, &day, &s.StartTime, &s.EndTime, &breaks); err != nil {
		return nil, err
	}

	s.DayOfWeek = time.Weekday(day)
	if err := breaks.Unmarshal(&s.Breaks); err != nil {
		return nil, fmt.Errorf("unmarshal breaks: %w", err)
	}

	return &s, nil
}

func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var (
		e          domain.ScheduleException
		start, end sql.NullString
	)

	if err := row.Scan(&e.ID, &e.Date, &e.IsClosed, &start, &end, &e.Notes); err != nil {
		return nil, err
	}

	var err error
	if e.StartTime, err = optionalTime(start); err != nil {
		return nil, err
	}
	if e.EndTime, err = optionalTime(end); err != nil {
		return nil, err
	}

	return &e, nil
}

func optionalTime(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nonNilBreaks(breaks []domain.Break) []domain.Break {
	if breaks == nil {
		return []domain.Break{}
	}
	return breaks
}
