package audit

import (
	"context"
	"encoding/json"
	"fmt"

	sqltypes "github.com/jmoiron/sqlx/types"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

// Repository журнал действий администратора (только добавление)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("%w: Create - marshal payload: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("audit_log").
		Columns("id", "admin_id", "action", "target_table", "target_id", "payload").
		Values(entry.ID, entry.AdminID, entry.Action, entry.TargetTable, entry.TargetID, sqltypes.JSONText(payload)).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
