package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/timely/internal/service"
	"github.com/limbo/timely/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestGenerateReport(t *testing.T) {
	mock := &activityRepoMock{state: stateSuccess}
	s := service.NewReportService(mock)
	ctx := context.Background()
	windowStart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	t.Run("single activity leaves the rest undefined", func(t *testing.T) {
		mock.slices = []entity.ActivitySlice{
			{
				ID:           uuid.New(),
				CategoryID:   categoryID,
				CategoryName: "Work",
				StartTime:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			},
		}
		report, err := s.Generate(ctx, userID, windowStart, windowEnd, "2024-06-01")
		assert.NoError(t, err)
		assert.Equal(t, "2024-06-01", report.Period)
		assert.Equal(t, 1.0, report.TotalHours)
		assert.Equal(t, []entity.ReportEntry{
			{Name: "Work", Hours: 1, Percentage: 4.17},
			{Name: service.UndefinedCategory, Hours: 23, Percentage: 95.83},
		}, report.Activities)
	})
	t.Run("straddling activities are clamped to the window", func(t *testing.T) {
		mock.slices = []entity.ActivitySlice{
			{
				ID:           uuid.New(),
				CategoryID:   categoryID,
				CategoryName: "Sleep",
				StartTime:    time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
			},
			{
				ID:           uuid.New(),
				CategoryID:   categoryID,
				CategoryName: "Sleep",
				StartTime:    time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC),
			},
		}
		report, err := s.Generate(ctx, userID, windowStart, windowEnd, "2024-06-01")
		assert.NoError(t, err)
		// 7h of the first night and 1h of the second fall inside
		assert.Equal(t, 8.0, report.TotalHours)
		assert.Equal(t, []entity.ReportEntry{
			{Name: "Sleep", Hours: 8, Percentage: 33.33},
			{Name: service.UndefinedCategory, Hours: 16, Percentage: 66.67},
		}, report.Activities)
	})
	t.Run("categories are summed and sorted by name", func(t *testing.T) {
		mock.slices = []entity.ActivitySlice{
			{
				CategoryName: "Work",
				StartTime:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				CategoryName: "Exercise",
				StartTime:    time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
			},
			{
				CategoryName: "Work",
				StartTime:    time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
			},
		}
		report, err := s.Generate(ctx, userID, windowStart, windowEnd, "2024-06-01")
		assert.NoError(t, err)
		assert.Equal(t, 7.0, report.TotalHours)
		assert.Equal(t, "Exercise", report.Activities[0].Name)
		assert.Equal(t, service.UndefinedCategory, report.Activities[1].Name)
		assert.Equal(t, "Work", report.Activities[2].Name)
		assert.Equal(t, 6.0, report.Activities[2].Hours)
	})
	t.Run("empty window is fully undefined", func(t *testing.T) {
		mock.slices = nil
		report, err := s.Generate(ctx, userID, windowStart, windowEnd, "2024-06-01")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, report.TotalHours)
		assert.Equal(t, []entity.ReportEntry{
			{Name: service.UndefinedCategory, Hours: 24, Percentage: 100},
		}, report.Activities)
	})
	t.Run("fully covered window has no undefined entry", func(t *testing.T) {
		mock.slices = []entity.ActivitySlice{
			{
				CategoryName: "Sleep",
				StartTime:    windowStart,
				EndTime:      windowEnd,
			},
		}
		report, err := s.Generate(ctx, userID, windowStart, windowEnd, "2024-06-01")
		assert.NoError(t, err)
		assert.Equal(t, []entity.ReportEntry{
			{Name: "Sleep", Hours: 24, Percentage: 100},
		}, report.Activities)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.Generate(ctx, userID, windowStart, windowEnd, "2024-06-01")
		assert.Error(t, err)
	})
}
