package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий правил доступности (еженедельные окна и исключения по датам)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWeeklyRules возвращает активные еженедельные правила области на день недели.
// Время отдается как есть: корректность формата проверяет вызывающий.
func (r *Repository) ListWeeklyRules(ctx context.Context, scope domain.Scope, weekday int) ([]*domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := weeklyRulesQuery(scope, weekday)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WeeklyRule, 0)
	for rows.Next() {
		var rule domain.WeeklyRule
		err := rows.Scan(
			&rule.ID,
			&rule.BusinessID,
			&rule.StaffID,
			&rule.Weekday,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWeeklyRules - scan rule: %v", ErrScanRow, err)
		}
		result = append(result, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRules - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListDateOverrides возвращает исключения области на дату
func (r *Repository) ListDateOverrides(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := dateOverridesQuery(scope, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDateOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDateOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.DateOverride, 0)
	for rows.Next() {
		var override domain.DateOverride
		err := rows.Scan(
			&override.ID,
			&override.BusinessID,
			&override.StaffID,
			&override.Date,
			&override.StartTime,
			&override.EndTime,
			&override.IsAvailable,
			&override.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDateOverrides - scan override: %v", ErrScanRow, err)
		}
		result = append(result, &override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDateOverrides - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func weeklyRulesQuery(scope domain.Scope, weekday int) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"staff_id",
		"weekday",
		"start_time",
		"end_time",
		"is_active",
	).
		From("weekly_availability_rules").
		Where(scopeCondition(scope)).
		Where(squirrel.Eq{"weekday": weekday, "is_active": true}).
		OrderBy("start_time ASC").
		ToSql()
}

func dateOverridesQuery(scope domain.Scope, date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"staff_id",
		"override_date",
		"start_time",
		"end_time",
		"is_available",
		"reason",
	).
		From("date_override_rules").
		Where(scopeCondition(scope)).
		Where(squirrel.Eq{"override_date": date}).
		OrderBy("id ASC").
		ToSql()
}

// scopeCondition правила бизнеса хранятся с staff_id IS NULL
func scopeCondition(scope domain.Scope) squirrel.Eq {
	if scope.StaffID != nil {
		return squirrel.Eq{"business_id": scope.BusinessID, "staff_id": *scope.StaffID}
	}
	return squirrel.Eq{"business_id": scope.BusinessID, "staff_id": nil}
}
