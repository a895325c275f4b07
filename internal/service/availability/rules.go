package availability

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Resolver вычисляет открытые интервалы области на дату
type Resolver struct {
	rules RulesRepository
}

// NewResolver создает новый экземпляр резолвера правил
func NewResolver(rules RulesRepository) *Resolver {
	return &Resolver{rules: rules}
}

// ResolveOpenIntervals собирает еженедельные правила дня недели (0 = воскресенье)
// и вычитает закрывающие исключения на дату. Пересекающиеся правила не сливаются:
// каждое дает свою сетку слотов, дубликаты убирает sortAndDedupe.
// Результат отсортирован по началу. Нет правил - пустой результат.
// Некорректное время в правиле - ErrMalformedRule.
func (r *Resolver) ResolveOpenIntervals(ctx context.Context, scope domain.Scope, date time.Time) ([]domain.Interval, error) {
	weekday := int(date.Weekday())

	// 1. Еженедельные правила
	weekly, err := r.rules.ListWeeklyRules(ctx, scope, weekday)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list weekly rules: %v", ErrInternal, err)
	}

	open := make([]domain.Interval, 0, len(weekly))
	for _, rule := range weekly {
		if !rule.IsActive {
			continue
		}
		iv, err := parseWindow(rule.StartTime, rule.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: weekly rule id=%d: %v", ErrMalformedRule, rule.ID, err)
		}
		open = append(open, iv)
	}

	if len(open) == 0 {
		return []domain.Interval{}, nil
	}

	sortIntervals(open)

	// 2. Исключения на дату
	overrides, err := r.rules.ListDateOverrides(ctx, scope, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list date overrides: %v", ErrInternal, err)
	}

	for _, override := range overrides {
		// is_available=true ничего не добавляет
		if override.IsAvailable {
			continue
		}
		if override.IsWholeDay() {
			return []domain.Interval{}, nil
		}
		closed, err := parseWindow(*override.StartTime, *override.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: date override id=%d: %v", ErrMalformedRule, override.ID, err)
		}
		open = subtract(open, closed)
	}

	return open, nil
}

func parseWindow(start, end types.TimeString) (domain.Interval, error) {
	s, err := start.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	e, err := end.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	if s >= e {
		return domain.Interval{}, fmt.Errorf("start %s is not before end %s", start, end)
	}
	return domain.Interval{Start: s, End: e}, nil
}

func sortIntervals(intervals []domain.Interval) {
	slices.SortFunc(intervals, func(a, b domain.Interval) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

// union сливает пересекающиеся и соприкасающиеся интервалы
func union(intervals []domain.Interval) []domain.Interval {
	sorted := slices.Clone(intervals)
	sortIntervals(sorted)

	merged := make([]domain.Interval, 0, len(sorted))
	for _, iv := range sorted {
		last := len(merged) - 1
		if last >= 0 && iv.Start <= merged[last].End {
			merged[last].End = max(merged[last].End, iv.End)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtract вырезает closed из каждого интервала, при необходимости разбивая его на два
func subtract(intervals []domain.Interval, closed domain.Interval) []domain.Interval {
	result := make([]domain.Interval, 0, len(intervals)+1)
	for _, iv := range intervals {
		if !iv.Overlaps(closed) {
			result = append(result, iv)
			continue
		}
		if iv.Start < closed.Start {
			result = append(result, domain.Interval{Start: iv.Start, End: closed.Start})
		}
		if closed.End < iv.End {
			result = append(result, domain.Interval{Start: closed.End, End: iv.End})
		}
	}
	return result
}
