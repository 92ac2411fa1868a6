package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/psqlbuilder"
)

const checkViolation = "23514"

// Repository репозиторий вместимости филиалов: объем склада и слоты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вместимости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetVolumeCapacity получает объем склада филиала без блокировки
func (r *Repository) GetVolumeCapacity(ctx context.Context, branchID int64) (*domain.VolumeCapacity, error) {
	return r.getVolumeCapacity(ctx, branchID, false)
}

// GetVolumeCapacityForUpdate получает объем склада филиала.
// Внутри транзакции блокирует строку (FOR UPDATE), чем сериализует все бронирования филиала.
func (r *Repository) GetVolumeCapacityForUpdate(ctx context.Context, branchID int64) (*domain.VolumeCapacity, error) {
	return r.getVolumeCapacity(ctx, branchID, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getVolumeCapacity(ctx context.Context, branchID int64, forUpdate bool) (*domain.VolumeCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("branch_id", "warehouse_capacity", "inventory", "updated_at").
		From("volume_capacity").
		Where(squirrel.Eq{"branch_id": branchID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVolumeCapacity - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.VolumeCapacity
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.BranchID,
		&v.WarehouseCapacity,
		&v.Inventory,
		&v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVolumeCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVolumeCapacity - scan: %w", ErrScanRow, err)
	}
	return &v, nil
}

// ReserveVolume атомарно увеличивает inventory на volume,
// если после этого он не превысит warehouse_capacity
func (r *Repository) ReserveVolume(ctx context.Context, branchID int64, volume decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("volume_capacity").
		Set("inventory", squirrel.Expr("inventory + ?", volume)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Expr("inventory + ? <= warehouse_capacity", volume)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReserveVolume - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveVolume - execute update: %w", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveVolume - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrVolumeExceeded
	}
	return nil
}

// UpsertWarehouseCapacity задает вместимость склада, inventory новой записи равен нулю
func (r *Repository) UpsertWarehouseCapacity(ctx context.Context, branchID int64, warehouseCapacity decimal.Decimal) (*domain.VolumeCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("volume_capacity").
		Columns("branch_id", "warehouse_capacity", "inventory").
		Values(branchID, warehouseCapacity, decimal.Zero).
		Suffix("ON CONFLICT (branch_id) DO UPDATE SET warehouse_capacity = EXCLUDED.warehouse_capacity, updated_at = NOW() " +
			"RETURNING branch_id, warehouse_capacity, inventory, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWarehouseCapacity - build insert query: %v", ErrBuildQuery, err)
	}

	return r.scanVolume(executor.QueryRowContext(ctx, query, args...), "UpsertWarehouseCapacity")
}

// SetInventory административная корректировка принятого объема
func (r *Repository) SetInventory(ctx context.Context, branchID int64, inventory decimal.Decimal) (*domain.VolumeCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("volume_capacity").
		Set("inventory", inventory).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"branch_id": branchID}).
		Suffix("RETURNING branch_id, warehouse_capacity, inventory, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetInventory - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanVolume(executor.QueryRowContext(ctx, query, args...), "SetInventory")
}

func (r *Repository) scanVolume(row *sql.Row, method string) (*domain.VolumeCapacity, error) {
	var v domain.VolumeCapacity
	err := row.Scan(&v.BranchID, &v.WarehouseCapacity, &v.Inventory, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVolumeCapacityNotFound
	}
	if isCheckViolation(err) {
		return nil, ErrCapacityBelowInventory
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, method, err)
	}
	return &v, nil
}

// GetSlotCapacity получает вместимость слотов с учетом иерархии:
// 1. Настройка на конкретную дату
// 2. Настройка филиала по умолчанию (date IS NULL)
//
// Если нет ни одной, возвращает ErrSlotCapacityNotFound
func (r *Repository) GetSlotCapacity(ctx context.Context, branchID int64, date time.Time) (*domain.SlotCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "branch_id", "date", "capacity_am", "capacity_pm").
		From("branch_slot_capacity").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Or{
			squirrel.Eq{"date": domain.DateKey(date)},
			squirrel.Eq{"date": nil},
		}).
		OrderBy("date NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotCapacity - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanSlotCapacity(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotCapacity - scan: %w", ErrScanRow, err)
	}
	return c, nil
}

// GetDefaultSlotCapacity получает вместимость слотов филиала по умолчанию
func (r *Repository) GetDefaultSlotCapacity(ctx context.Context, branchID int64) (*domain.SlotCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "branch_id", "date", "capacity_am", "capacity_pm").
		From("branch_slot_capacity").
		Where(squirrel.Eq{"branch_id": branchID, "date": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaultSlotCapacity - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanSlotCapacity(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaultSlotCapacity - scan: %w", ErrScanRow, err)
	}
	return c, nil
}

// ListSlotCapacities возвращает настройку по умолчанию и переопределения дат внутри диапазона
func (r *Repository) ListSlotCapacities(ctx context.Context, branchID int64, start, end time.Time) ([]domain.SlotCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "branch_id", "date", "capacity_am", "capacity_pm").
		From("branch_slot_capacity").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Or{
			squirrel.Eq{"date": nil},
			squirrel.And{
				squirrel.GtOrEq{"date": domain.DateKey(start)},
				squirrel.LtOrEq{"date": domain.DateKey(end)},
			},
		}).
		OrderBy("date NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotCapacities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotCapacities - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.SlotCapacity, 0)
	for rows.Next() {
		c, err := scanSlotCapacity(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSlotCapacities - scan row: %v", ErrScanRow, err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlotCapacities - rows iteration: %w", ErrScanRow, err)
	}
	return result, nil
}

// UpsertSlotCapacity создает или обновляет настройку слотов (по умолчанию, если Date == nil)
func (r *Repository) UpsertSlotCapacity(ctx context.Context, c domain.SlotCapacity) (*domain.SlotCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var date interface{}
	conflict := "ON CONFLICT (branch_id) WHERE date IS NULL"
	if c.Date != nil {
		date = domain.DateKey(*c.Date)
		conflict = "ON CONFLICT (branch_id, date) WHERE date IS NOT NULL"
	}

	query, args, err := psqlbuilder.Insert("branch_slot_capacity").
		Columns("branch_id", "date", "capacity_am", "capacity_pm").
		Values(c.BranchID, date, c.CapacityAM, c.CapacityPM).
		Suffix(conflict + " DO UPDATE SET capacity_am = EXCLUDED.capacity_am, capacity_pm = EXCLUDED.capacity_pm, updated_at = NOW() " +
			"RETURNING id, branch_id, date, capacity_am, capacity_pm").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSlotCapacity - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanSlotCapacity(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSlotCapacity - execute insert: %w", ErrExecQuery, err)
	}
	return saved, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlotCapacity(row rowScanner) (*domain.SlotCapacity, error) {
	var (
		c    domain.SlotCapacity
		date sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.BranchID, &date, &c.CapacityAM, &c.CapacityPM); err != nil {
		return nil, err
	}
	if date.Valid {
		d := domain.NormalizeDate(date.Time)
		c.Date = &d
	}
	return &c, nil
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == checkViolation
}
