package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository репозиторий расписания: рабочие часы и блокировки дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours получает недельное расписание тенанта
// Конфигурация читается из БД при каждом вызове, без кэширования:
// генератор слотов всегда работает с актуальными рабочими часами
func (r *Repository) GetWorkingHours(ctx context.Context, tenantID int64) (domain.WorkingHoursWeek, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("tenant_id", "weekday", "enabled", "start_time", "end_time", "breaks").
		From("working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make(domain.WorkingHoursWeek, 0, 7)
	for rows.Next() {
		var entry domain.WorkingHoursEntry
		var start, end sql.NullString
		var breaksRaw []byte

		if err := rows.Scan(&entry.TenantID, &entry.Weekday, &entry.Enabled, &start, &end, &breaksRaw); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
		}

		if start.Valid {
			ts, err := types.NewTimeStringFromString(start.String)
			if err != nil {
				return nil, fmt.Errorf("%w: GetWorkingHours - start_time: %v", ErrScanRow, err)
			}
			entry.Start = ts
		}
		if end.Valid {
			ts, err := types.NewTimeStringFromString(end.String)
			if err != nil {
				return nil, fmt.Errorf("%w: GetWorkingHours - end_time: %v", ErrScanRow, err)
			}
			entry.End = ts
		}

		if len(breaksRaw) > 0 {
			if err := json.Unmarshal(breaksRaw, &entry.Breaks); err != nil {
				return nil, fmt.Errorf("%w: GetWorkingHours - unmarshal breaks: %v", ErrScanRow, err)
			}
		}

		// Некорректная запись отбрасывается на границе хранилища,
		// чтобы не тащить неопределенное поведение в генерацию слотов
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - malformed entry for weekday %d: %v", ErrScanRow, entry.Weekday, err)
		}

		week = append(week, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

// UpsertWorkingHours сохраняет недельное расписание тенанта
// Запись на каждый день недели вставляется или обновляется по (tenant_id, weekday)
func (r *Repository) UpsertWorkingHours(ctx context.Context, tenantID int64, week domain.WorkingHoursWeek) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, entry := range week {
		breaksJSON, err := json.Marshal(entry.Breaks)
		if err != nil {
			return fmt.Errorf("%w: UpsertWorkingHours - marshal breaks: %v", ErrBuildQuery, err)
		}

		query, args, err := psqlbuilder.Insert("working_hours").
			Columns("tenant_id", "weekday", "enabled", "start_time", "end_time", "breaks").
			Values(tenantID, entry.Weekday, entry.Enabled, nullableTime(entry.Start), nullableTime(entry.End), breaksJSON).
			Suffix(`ON CONFLICT (tenant_id, weekday) DO UPDATE
				SET enabled = EXCLUDED.enabled,
				    start_time = EXCLUDED.start_time,
				    end_time = EXCLUDED.end_time,
				    breaks = EXCLUDED.breaks`).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: UpsertWorkingHours - build upsert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpsertWorkingHours - execute upsert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// GetBlockedDates получает все блокировки дат тенанта
func (r *Repository) GetBlockedDates(ctx context.Context, tenantID int64) ([]*domain.BlockedDate, error) {
	return r.getBlocked(ctx, squirrel.Eq{"tenant_id": tenantID}, "GetBlockedDates")
}

// GetBlockedDatesForDate получает блокировки тенанта на конкретную дату
func (r *Repository) GetBlockedDatesForDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedDate, error) {
	where := squirrel.Eq{"tenant_id": tenantID, "block_date": date}
	return r.getBlocked(ctx, where, "GetBlockedDatesForDate")
}

func (r *Repository) getBlocked(ctx context.Context, where squirrel.Eq, op string) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "block_date", "professional_id", "reason").
		From("blocked_dates").
		Where(where).
		OrderBy("block_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blocked := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var b domain.BlockedDate
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Date, &b.ProfessionalID, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		blocked = append(blocked, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return blocked, nil
}

// ReplaceBlockedDates заменяет список блокировок тенанта целиком
// Используется административным обновлением конфигурации (PUT семантика)
func (r *Repository) ReplaceBlockedDates(ctx context.Context, tenantID int64, blocked []*domain.BlockedDate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlockedDates - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlockedDates - execute delete: %v", ErrExecQuery, err)
	}

	if len(blocked) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("blocked_dates").
		Columns("tenant_id", "block_date", "professional_id", "reason")
	for _, b := range blocked {
		insert = insert.Values(tenantID, b.Date, b.ProfessionalID, b.Reason)
	}

	insQuery, insArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlockedDates - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlockedDates - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func nullableTime(ts types.TimeString) interface{} {
	if ts.IsZero() {
		return nil
	}
	return ts.String()
}
