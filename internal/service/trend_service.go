package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/timely/internal/repository"
	"github.com/limbo/timely/pkg/entity"
	"github.com/limbo/timely/pkg/timeutil"
)

const (
	TrendDaily   = "daily"
	TrendWeekly  = "weekly"
	TrendMonthly = "monthly"
)

// trendSpec fixes everything a granularity decides: how far the lookback
// window reaches, how an activity's local start date maps to a bucket label,
// and the full x axis. Selected once per request.
type trendSpec struct {
	name        string
	windowStart func(anchor time.Time) time.Time
	label       func(t time.Time) string
	axis        func(anchor time.Time) []string
}

var dailySpec = trendSpec{
	name: TrendDaily,
	windowStart: func(anchor time.Time) time.Time {
		return anchor.AddDate(0, 0, -6)
	},
	label: timeutil.DateLabel,
	axis: func(anchor time.Time) []string {
		labels := make([]string, 0, 7)
		for i := 6; i >= 0; i-- {
			labels = append(labels, timeutil.DateLabel(anchor.AddDate(0, 0, -i)))
		}
		return labels
	},
}

var weeklySpec = trendSpec{
	name: TrendWeekly,
	windowStart: func(anchor time.Time) time.Time {
		return timeutil.StartOfISOWeek(anchor).AddDate(0, 0, -7*7)
	},
	label: timeutil.ISOWeekLabel,
	axis: func(anchor time.Time) []string {
		monday := timeutil.StartOfISOWeek(anchor)
		labels := make([]string, 0, 8)
		for i := 7; i >= 0; i-- {
			labels = append(labels, timeutil.ISOWeekLabel(monday.AddDate(0, 0, -7*i)))
		}
		return labels
	},
}

var monthlySpec = trendSpec{
	name: TrendMonthly,
	windowStart: func(anchor time.Time) time.Time {
		return timeutil.StartOfMonth(anchor).AddDate(0, -11, 0)
	},
	label: timeutil.MonthLabel,
	axis: func(anchor time.Time) []string {
		first := timeutil.StartOfMonth(anchor)
		labels := make([]string, 0, 12)
		for i := 11; i >= 0; i-- {
			labels = append(labels, timeutil.MonthLabel(first.AddDate(0, -i, 0)))
		}
		return labels
	},
}

func specFor(trendType string) trendSpec {
	switch trendType {
	case TrendWeekly:
		return weeklySpec
	case TrendMonthly:
		return monthlySpec
	default:
		return dailySpec
	}
}

type TrendService struct {
	repo           repository.ActivitiesRepositoryI
	categoriesRepo repository.CategoriesRepositoryI
}

func NewTrendService(activitiesRepo repository.ActivitiesRepositoryI, categoriesRepo repository.CategoriesRepositoryI) *TrendService {
	if activitiesRepo == nil || categoriesRepo == nil {
		log.Fatal("on trend service provided nil repos")
	}
	return &TrendService{
		repo:           activitiesRepo,
		categoriesRepo: categoriesRepo,
	}
}

func (ts *TrendService) CategoryTrend(ctx context.Context, uid uuid.UUID, req *TrendRequest) (*entity.CategoryTrend, error) {
	loc, err := timeutil.LoadLocation(req.Timezone)
	if err != nil {
		return nil, err
	}
	var anchor time.Time
	if req.Date == "" {
		anchor = time.Now().In(loc)
	} else {
		anchor, err = timeutil.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
	}
	// buckets are derived from local calendar dates in the caller's tz
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)

	spec := specFor(req.Type)
	windowStart := spec.windowStart(anchor)
	windowEnd := anchor.AddDate(0, 0, 1)
	axis := spec.axis(anchor)

	categories, err := ts.scopedCategories(ctx, uid, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	trend := &entity.CategoryTrend{
		Type:  spec.name,
		Start: timeutil.DateLabel(windowStart),
		End:   timeutil.DateLabel(anchor),
		Data:  make([]entity.CategoryTrendSeries, 0, len(categories)),
	}
	if len(categories) == 0 {
		return trend, nil
	}

	activities, err := ts.repo.GetByAuthorStartingIn(ctx, uid, req.CategoryIDs, windowStart.UTC(), windowEnd.UTC())
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}

	// {category id: {bucket label: hours}}
	buckets := make(map[uuid.UUID]map[string]float64)
	for _, act := range activities {
		label := spec.label(act.StartTime.In(loc))
		if buckets[act.CategoryID] == nil {
			buckets[act.CategoryID] = make(map[string]float64)
		}
		buckets[act.CategoryID][label] += act.EndTime.Sub(act.StartTime).Hours()
	}

	// categories with no activity still get a full zero series
	for _, category := range categories {
		points := make([]entity.TrendPoint, 0, len(axis))
		for _, label := range axis {
			points = append(points, entity.TrendPoint{
				Label: label,
				Hours: round2(buckets[category.ID][label]),
			})
		}
		trend.Data = append(trend.Data, entity.CategoryTrendSeries{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Trend:        points,
		})
	}
	return trend, nil
}

// scopedCategories narrows the visible set to the requested ids, silently
// dropping ids the user can't see.
func (ts *TrendService) scopedCategories(ctx context.Context, uid uuid.UUID, categoryIDs []uuid.UUID) ([]*entity.Category, error) {
	visible, err := ts.categoriesRepo.GetVisible(ctx, uid)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	if len(categoryIDs) == 0 {
		return visible, nil
	}
	requested := make(map[uuid.UUID]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		requested[id] = true
	}
	scoped := make([]*entity.Category, 0, len(categoryIDs))
	for _, category := range visible {
		if requested[category.ID] {
			scoped = append(scoped, category)
		}
	}
	return scoped, nil
}
