package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var columns = []string{
	"id",
	"reference_number",
	"branch_id",
	"date",
	"time_slot",
	"first_name",
	"middle_name",
	"last_name",
	"email",
	"contact_number",
	"gender",
	"farmer_type_id",
	"volume",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на доставку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявку.
// Если номер заявки уже занят, ничего не вставляет и возвращает ErrDuplicateReference,
// не ломая текущую транзакцию (ON CONFLICT DO NOTHING вместо ошибки уникальности).
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var gender *string
	if a.Gender != nil {
		g := string(*a.Gender)
		gender = &g
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"reference_number",
			"branch_id",
			"date",
			"time_slot",
			"first_name",
			"middle_name",
			"last_name",
			"email",
			"contact_number",
			"gender",
			"farmer_type_id",
			"volume",
			"status",
		).
		Values(
			a.ReferenceNumber,
			a.BranchID,
			domain.DateKey(a.Date),
			string(a.Slot),
			a.FirstName,
			a.MiddleName,
			a.LastName,
			a.Email,
			a.ContactNumber,
			gender,
			a.FarmerTypeID,
			a.Volume,
			string(a.Status),
		).
		Suffix("ON CONFLICT ON CONSTRAINT appointments_reference_number_key DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// CountActive считает неотмененные заявки на филиал, дату и слот
func (r *Repository) CountActive(ctx context.Context, branchID int64, date time.Time, slot domain.Slot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"branch_id": branchID,
			"date":      domain.DateKey(date),
			"time_slot": string(slot),
		}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// CountActiveByRange одним запросом считает неотмененные заявки по дням и слотам.
// Ключ результата - дата в формате YYYY-MM-DD, дни без заявок отсутствуют.
func (r *Repository) CountActiveByRange(ctx context.Context, branchID int64, start, end time.Time) (map[string]domain.SlotCounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "time_slot", "COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.GtOrEq{"date": domain.DateKey(start)}).
		Where(squirrel.LtOrEq{"date": domain.DateKey(end)}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		GroupBy("date", "time_slot").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]domain.SlotCounts)
	for rows.Next() {
		var (
			date  time.Time
			slot  string
			count int
		)
		if err := rows.Scan(&date, &slot, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByRange - scan row: %v", ErrScanRow, err)
		}
		key := domain.DateKey(date)
		c := counts[key]
		c.Add(domain.Slot(slot), count)
		counts[key] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByRange - rows iteration: %w", ErrScanRow, err)
	}

	return counts, nil
}

// GetByReference получает заявку по номеру (без учета регистра)
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"reference_number": strings.ToUpper(reference)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan appointment: %w", ErrScanRow, err)
	}
	return a, nil
}

// UpdateStatus меняет статус, только если текущий статус равен from.
// Объем при отмене не возвращается в склад.
func (r *Repository) UpdateStatus(ctx context.Context, reference string, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"reference_number": strings.ToUpper(reference),
			"status":           string(from),
		}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}
	return a, nil
}

func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var (
		a      domain.Appointment
		slot   string
		status string
		gender sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.ReferenceNumber,
		&a.BranchID,
		&a.Date,
		&slot,
		&a.FirstName,
		&a.MiddleName,
		&a.LastName,
		&a.Email,
		&a.ContactNumber,
		&gender,
		&a.FarmerTypeID,
		&a.Volume,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Slot = domain.Slot(slot)
	a.Status = domain.AppointmentStatus(status)
	a.Date = domain.NormalizeDate(a.Date)
	if gender.Valid {
		g := domain.Gender(gender.String)
		a.Gender = &g
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
