package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/psqlbuilder"
)

// Repository репозиторий праздничных дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория праздников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListInRange возвращает праздники филиала и общие праздники (branch_id IS NULL) в диапазоне дат
func (r *Repository) ListInRange(ctx context.Context, branchID int64, start, end time.Time) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "branch_id", "date", "name").
		From("holidays").
		Where(squirrel.Or{
			squirrel.Eq{"branch_id": branchID},
			squirrel.Eq{"branch_id": nil},
		}).
		Where(squirrel.GtOrEq{"date": domain.DateKey(start)}).
		Where(squirrel.LtOrEq{"date": domain.DateKey(end)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.BranchID, &h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("%w: ListInRange - scan row: %v", ErrScanRow, err)
		}
		h.Date = domain.NormalizeDate(h.Date)
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInRange - rows iteration: %w", ErrScanRow, err)
	}

	return holidays, nil
}

// Create добавляет праздник, branchID == nil делает его общим для всех филиалов
func (r *Repository) Create(ctx context.Context, h domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("branch_id", "date", "name").
		Values(h.BranchID, domain.DateKey(h.Date), h.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	h.Date = domain.NormalizeDate(h.Date)
	return &h, nil
}
