package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

var customerColumns = []string{
	"id",
	"name",
	"phone",
	"phone_normalized",
	"email",
	"admin_notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return r.findOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// FindByNormalizedPhone ищет самого раннего клиента с таким нормализованным номером
func (r *Repository) FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.findOne(ctx, "FindByNormalizedPhone", squirrel.Eq{"phone_normalized": phone})
}

// FindByPhone ищет самого раннего клиента с таким исходным номером
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.findOne(ctx, "FindByPhone", squirrel.Eq{"phone": phone})
}

// Create создает клиента
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "name", "phone", "phone_normalized", "email").
		Values(c.ID, c.Name, c.Phone, c.PhoneNormalized, c.Email).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// UpdateContact обновляет имя, телефоны и email клиента
// Email перезаписывается только если передан
func (r *Repository) UpdateContact(ctx context.Context, id uuid.UUID, contact domain.ContactDetails) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("customers").
		Set("name", contact.Name).
		Set("phone", contact.Phone).
		Set("phone_normalized", contact.PhoneNormalized).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if contact.Email != nil {
		updateBuilder = updateBuilder.Set("email", *contact.Email)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + joinColumns()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateContact - build update query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateContact - execute update: %v", ErrExecQuery, err)
	}

	return c, nil
}

// UpdateNotes обновляет заметки администратора
func (r *Repository) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("admin_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateNotes - execute update: %v", ErrExecQuery, err)
	}

	return c, nil
}

func (r *Repository) findOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %v", ErrScanRow, op, err)
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.PhoneNormalized,
		&c.Email,
		&c.AdminNotes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func joinColumns() string {
	return strings.Join(customerColumns, ", ")
}
