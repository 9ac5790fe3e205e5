package service

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/timely/internal/repository"
	"github.com/limbo/timely/pkg/entity"
)

// UndefinedCategory labels window time no activity covers.
const UndefinedCategory = "undefined"

type ReportService struct {
	repo repository.ActivitiesRepositoryI
}

func NewReportService(activitiesRepo repository.ActivitiesRepositoryI) *ReportService {
	if activitiesRepo == nil {
		log.Fatal("provided nil activitiesRepo")
	}
	return &ReportService{
		repo: activitiesRepo,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func (rs *ReportService) Generate(ctx context.Context, uid uuid.UUID, utcStart, utcEnd time.Time, periodLabel string) (*entity.Report, error) {
	activities, err := rs.repo.GetByAuthorAndInterval(ctx, uid, utcStart, utcEnd)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}

	summary := make(map[string]float64)
	var recorded float64
	for _, act := range activities {
		// activities straddling the window edge only count the part inside
		start, end := act.StartTime, act.EndTime
		if start.Before(utcStart) {
			start = utcStart
		}
		if end.After(utcEnd) {
			end = utcEnd
		}
		hours := end.Sub(start).Hours()
		summary[act.CategoryName] += hours
		recorded += hours
	}

	windowHours := utcEnd.Sub(utcStart).Hours()
	if remainder := windowHours - recorded; remainder > 0 {
		summary[UndefinedCategory] = remainder
	}

	entries := make([]entity.ReportEntry, 0, len(summary))
	for name, hours := range summary {
		percentage := 0.0
		if windowHours > 0 {
			percentage = round2(hours / windowHours * 100)
		}
		entries = append(entries, entity.ReportEntry{
			Name:       name,
			Hours:      round2(hours),
			Percentage: percentage,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return &entity.Report{
		Period:     periodLabel,
		TotalHours: round2(recorded),
		Activities: entries,
	}, nil
}
