package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type Category struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Color     string        `json:"color"`
	UserID    uuid.NullUUID `json:"user_id"`
	IsDefault bool          `json:"is_default"`
}

type Activity struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Mood        string    `json:"mood"`
	EnergyLevel int       `json:"energy_level"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivitySlice is the reduced row shape the aggregators work with:
// interval plus category reference, with the category name already joined in.
type ActivitySlice struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	StartTime    time.Time
	EndTime      time.Time
}

type Report struct {
	Period     string        `json:"period"`
	TotalHours float64       `json:"total_hours"`
	Activities []ReportEntry `json:"activities"`
}

type ReportEntry struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

type CategoryTrend struct {
	Type  string                `json:"type"`
	Start string                `json:"start"`
	End   string                `json:"end"`
	Data  []CategoryTrendSeries `json:"data"`
}

type CategoryTrendSeries struct {
	CategoryID   uuid.UUID    `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Trend        []TrendPoint `json:"trend"`
}

type TrendPoint struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}
