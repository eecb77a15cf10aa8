package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с клиентами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreate находит клиента по (tenant, нормализованный телефон) или создает нового.
// Повторное бронирование с тем же телефоном возвращает существующего клиента,
// имя при этом не перезаписывается.
//
// Phone должен быть уже нормализован вызывающей стороной (pkg/phone).
func (r *Repository) FindOrCreate(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// ON CONFLICT DO UPDATE с no-op присваиванием, чтобы RETURNING отдал
	// существующую строку (DO NOTHING не возвращает строк)
	query, args, err := psqlbuilder.Insert("clients").
		Columns("tenant_id", "name", "phone", "email", "notes").
		Values(c.TenantID, c.Name, c.Phone, c.Email, c.Notes).
		Suffix(`ON CONFLICT (tenant_id, phone) DO UPDATE SET phone = EXCLUDED.phone
			RETURNING id, name, email, notes, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreate - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает клиента по ID в рамках тенанта, с производными агрегатами
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Client, error) {
	clients, err := r.list(ctx, tenantID, squirrel.Eq{"c.id": id}, "GetByID")
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, ErrClientNotFound
	}
	return clients[0], nil
}

// ListByTenant получает клиентов тенанта с производными агрегатами
// (количество визитов и дата последнего визита считаются по завершённым записям).
// search фильтрует по подстроке имени или телефона.
func (r *Repository) ListByTenant(ctx context.Context, tenantID int64, search string) ([]*domain.Client, error) {
	var extra squirrel.Sqlizer
	if search != "" {
		pattern := "%" + search + "%"
		extra = squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.Like{"c.phone": pattern},
		}
	}
	return r.list(ctx, tenantID, extra, "ListByTenant")
}

func (r *Repository) list(ctx context.Context, tenantID int64, extra squirrel.Sqlizer, op string) ([]*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"c.id",
		"c.tenant_id",
		"c.name",
		"c.phone",
		"c.email",
		"c.notes",
		"COUNT(a.id) AS visit_count",
		"MAX(a.appointment_date) AS last_visit",
		"c.created_at",
		"c.updated_at",
	).
		From("clients c").
		LeftJoin("appointments a ON a.client_id = c.id AND a.status = ?", domain.StatusCompleted).
		Where(squirrel.Eq{"c.tenant_id": tenantID}).
		GroupBy("c.id").
		OrderBy("c.name ASC")

	if extra != nil {
		selectBuilder = selectBuilder.Where(extra)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		var c domain.Client
		var lastVisit sql.NullTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.Name,
			&c.Phone,
			&c.Email,
			&c.Notes,
			&c.VisitCount,
			&lastVisit,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		if lastVisit.Valid {
			c.LastVisit = &lastVisit.Time
		}
		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time

		clients = append(clients, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return clients, nil
}

// UpdateNotes обновляет внутренние заметки о клиенте
func (r *Repository) UpdateNotes(ctx context.Context, tenantID, id int64, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}
