package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/psqlbuilder"
)

// Repository справочники: регионы, филиалы, типы фермеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBranch получает филиал по ID
func (r *Repository) GetBranch(ctx context.Context, branchID int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "region_id", "name").
		From("branches").
		Where(squirrel.Eq{"id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Branch
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.RegionID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch - scan branch: %w", ErrScanRow, err)
	}
	return &b, nil
}

// GetRegion получает регион по ID
func (r *Repository) GetRegion(ctx context.Context, regionID int64) (*domain.Region, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("regions").
		Where(squirrel.Eq{"id": regionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRegion - build select query: %v", ErrBuildQuery, err)
	}

	var reg domain.Region
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reg.ID, &reg.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRegion - scan region: %w", ErrScanRow, err)
	}
	return &reg, nil
}

// ListRegions возвращает все регионы по алфавиту
func (r *Repository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("regions").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRegions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRegions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	regions := make([]domain.Region, 0)
	for rows.Next() {
		var reg domain.Region
		if err := rows.Scan(&reg.ID, &reg.Name); err != nil {
			return nil, fmt.Errorf("%w: ListRegions - scan row: %v", ErrScanRow, err)
		}
		regions = append(regions, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRegions - rows iteration: %w", ErrScanRow, err)
	}
	return regions, nil
}

// ListBranchesByRegion возвращает филиалы региона по алфавиту
func (r *Repository) ListBranchesByRegion(ctx context.Context, regionID int64) ([]domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "region_id", "name").
		From("branches").
		Where(squirrel.Eq{"region_id": regionID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBranchesByRegion - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBranchesByRegion - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.RegionID, &b.Name); err != nil {
			return nil, fmt.Errorf("%w: ListBranchesByRegion - scan row: %v", ErrScanRow, err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBranchesByRegion - rows iteration: %w", ErrScanRow, err)
	}
	return branches, nil
}

// ListFarmerTypes возвращает типы фермеров в порядке ID
func (r *Repository) ListFarmerTypes(ctx context.Context) ([]domain.FarmerType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("farmer_types").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFarmerTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFarmerTypes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]domain.FarmerType, 0)
	for rows.Next() {
		var ft domain.FarmerType
		if err := rows.Scan(&ft.ID, &ft.Name); err != nil {
			return nil, fmt.Errorf("%w: ListFarmerTypes - scan row: %v", ErrScanRow, err)
		}
		types = append(types, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFarmerTypes - rows iteration: %w", ErrScanRow, err)
	}
	return types, nil
}
