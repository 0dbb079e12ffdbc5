package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	sqltypes "github.com/jmoiron/sqlx/types"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

// Repository очередь уведомлений notification_outbox
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет записи в статусе pending
func (r *Repository) Enqueue(ctx context.Context, entries ...*domain.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("notification_outbox").
		Columns("id", "booking_id", "channel", "recipient", "template", "payload", "status", "attempts", "run_at")

	for _, e := range entries {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("%w: Enqueue - marshal payload: %v", ErrBuildQuery, err)
		}
		insertBuilder = insertBuilder.Values(
			e.ID, e.BookingID, e.Channel, e.Recipient, e.Template,
			sqltypes.JSONText(payload), domain.OutboxPending, 0, e.RunAt,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// EnqueueUnique добавляет запись, только если для (booking_id, template, channel) её ещё нет
// Уникальность обеспечивает индекс ux_outbox_reminder, вставка и проверка выполняются одним запросом
func (r *Repository) EnqueueUnique(ctx context.Context, e *domain.OutboxEntry) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return false, fmt.Errorf("%w: EnqueueUnique - marshal payload: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("notification_outbox").
		Columns("id", "booking_id", "channel", "recipient", "template", "payload", "status", "attempts", "run_at").
		Values(e.ID, e.BookingID, e.Channel, e.Recipient, e.Template, sqltypes.JSONText(payload), domain.OutboxPending, 0, e.RunAt).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: EnqueueUnique - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: EnqueueUnique - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: EnqueueUnique - get rows affected: %v", ErrExecQuery, err)
	}

	return inserted == 1, nil
}

// ListDue возвращает до limit записей, готовых к отправке, старые первыми
func (r *Repository) ListDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*domain.OutboxEntry, error) {
	query, args, err := psqlbuilder.Select(outboxColumns...).
		From("notification_outbox").
		Where(squirrel.Eq{"status": domain.OutboxPending}).
		Where(squirrel.LtOrEq{"run_at": now}).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		OrderBy("run_at ASC", "created_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListDue", query, args)
}

// Claim переводит запись pending -> processing и увеличивает attempts
// Условие status = 'pending' в том же UPDATE гарантирует, что запись захватит только один обработчик
func (r *Repository) Claim(ctx context.Context, id uuid.UUID, now time.Time) (*domain.OutboxEntry, bool, error) {
	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.OutboxProcessing).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("claimed_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.OutboxPending}).
		Suffix("RETURNING " + strings.Join(outboxColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	entries, err := r.query(ctx, "Claim", query, args)
	if err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		return nil, false, nil
	}

	return entries[0], true, nil
}

// MarkSent фиксирует успешную отправку
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, now time.Time) error {
	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.OutboxSent).
		Set("provider_message_id", providerMessageID).
		Set("last_error", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.OutboxProcessing}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkSent", query, args)
}

// MarkRetry возвращает запись в pending с отложенным run_at
func (r *Repository) MarkRetry(ctx context.Context, id uuid.UUID, runAt time.Time, lastError string, now time.Time) error {
	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.OutboxPending).
		Set("run_at", runAt).
		Set("last_error", lastError).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.OutboxProcessing}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRetry - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkRetry", query, args)
}

// MarkFailed переводит запись в терминальный failed, run_at не меняется
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error {
	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.OutboxFailed).
		Set("last_error", lastError).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.OutboxProcessing}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkFailed", query, args)
}

// ReclaimStale возвращает зависшие в processing записи (claimed_at раньше staleBefore) в очередь
// Записи, исчерпавшие попытки, переводятся в failed
func (r *Repository) ReclaimStale(ctx context.Context, staleBefore time.Time, maxAttempts int, now time.Time) (domain.ReclaimResult, error) {
	var result domain.ReclaimResult

	stale := squirrel.And{
		squirrel.Eq{"status": domain.OutboxProcessing},
		squirrel.Lt{"claimed_at": staleBefore},
	}

	failQuery, failArgs, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.OutboxFailed).
		Set("last_error", "processing timed out").
		Set("updated_at", now).
		Where(stale).
		Where(squirrel.GtOrEq{"attempts": maxAttempts}).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("%w: ReclaimStale - build fail query: %v", ErrBuildQuery, err)
	}

	requeueQuery, requeueArgs, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.OutboxPending).
		Set("claimed_at", nil).
		Set("updated_at", now).
		Where(stale).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("%w: ReclaimStale - build requeue query: %v", ErrBuildQuery, err)
	}

	if result.Failed, err = r.exec(ctx, "ReclaimStale", failQuery, failArgs); err != nil {
		return result, err
	}
	if result.Requeued, err = r.exec(ctx, "ReclaimStale", requeueQuery, requeueArgs); err != nil {
		return result, err
	}

	return result, nil
}

// ListFailed возвращает последние терминально неотправленные записи
func (r *Repository) ListFailed(ctx context.Context, limit int) ([]*domain.OutboxEntry, error) {
	query, args, err := psqlbuilder.Select(outboxColumns...).
		From("notification_outbox").
		Where(squirrel.Eq{"status": domain.OutboxFailed}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFailed - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListFailed", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.OutboxEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var scanned []entryRow
	if err := sqlx.StructScan(rows, &scanned); err != nil {
		return nil, fmt.Errorf("%w: %s - scan entries: %v", ErrScanRow, op, err)
	}

	entries := make([]*domain.OutboxEntry, 0, len(scanned))
	for i := range scanned {
		e, err := scanned[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - decode payload: %v", ErrScanRow, op, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *Repository) exec(ctx context.Context, op, query string, args []interface{}) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return int(affected), nil
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	affected, err := r.exec(ctx, op, query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
