package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var businessColumns = []string{
	"id",
	"slug",
	"name",
	"is_active",
	"cancellation_hours",
	"require_phone",
	"require_deposit",
}

var serviceColumns = []string{
	"id",
	"business_id",
	"name",
	"duration_minutes",
	"capacity",
	"requires_staff",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"price",
	"is_active",
}

var staffColumns = []string{
	"s.id",
	"s.business_id",
	"s.name",
	"s.is_active",
}

// Repository читает бизнесы, услуги и сотрудников.
// Справочники ведутся в другом месте, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessByID получает бизнес по ID
func (r *Repository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getBusiness(ctx, "GetBusinessByID", squirrel.Eq{"id": id})
}

// GetBusinessBySlug получает бизнес по slug
func (r *Repository) GetBusinessBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.getBusiness(ctx, "GetBusinessBySlug", squirrel.Eq{"slug": slug})
}

func (r *Repository) getBusiness(ctx context.Context, op string, where squirrel.Eq) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var business domain.Business
	var cancellationHours sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Slug,
		&business.Name,
		&business.IsActive,
		&cancellationHours,
		&business.RequirePhone,
		&business.RequireDeposit,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	if cancellationHours.Valid {
		hours := int(cancellationHours.Int64)
		business.CancellationHours = &hours
	}

	return &business, nil
}

// GetServiceByID получает услугу по ID (принадлежность бизнесу проверяет вызывающий)
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.Capacity,
		&service.RequiresStaff,
		&service.BufferBeforeMinutes,
		&service.BufferAfterMinutes,
		&service.Price,
		&service.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// GetStaffByID получает сотрудника по ID
func (r *Repository) GetStaffByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff s").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.StaffMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.BusinessID,
		&staff.Name,
		&staff.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - scan staff: %v", ErrScanRow, err)
	}

	return &staff, nil
}

// ListStaffForService возвращает сотрудников, умеющих выполнять услугу.
// Неактивные сотрудники тоже возвращаются, фильтрует вызывающий.
func (r *Repository) ListStaffForService(ctx context.Context, serviceID int64) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff s").
		Join("staff_services ss ON ss.staff_id = s.id").
		Where(squirrel.Eq{"ss.service_id": serviceID}).
		OrderBy("s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	for rows.Next() {
		var member domain.StaffMember
		if err := rows.Scan(&member.ID, &member.BusinessID, &member.Name, &member.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListStaffForService - scan staff: %v", ErrScanRow, err)
		}
		staff = append(staff, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffForService - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// StaffCanPerform проверяет, входит ли услуга в навыки сотрудника
func (r *Repository) StaffCanPerform(ctx context.Context, staffID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("staff_services").
		Where(squirrel.Eq{"staff_id": staffID, "service_id": serviceID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: StaffCanPerform - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: StaffCanPerform - scan: %v", ErrScanRow, err)
	}

	return true, nil
}
