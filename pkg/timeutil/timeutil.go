package timeutil

import (
	"fmt"
	"time"

	errorvalues "github.com/limbo/timely/internal/error_values"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. The returned time carries no
// meaningful clock or zone, only the date components matter.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errorvalues.ErrInvalidDate
	}
	return d, nil
}

// LoadLocation resolves an IANA timezone name. Empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errorvalues.ErrInvalidTimezone
	}
	return loc, nil
}

// LocalRangeToUTC converts a local calendar date range into an absolute UTC
// half-open interval. With empty endDate the range is the whole local day of
// startDate: local midnight up to local midnight of the next day. With endDate
// given, the range ends at local midnight of endDate (exclusive).
func LocalRangeToUTC(startDate, endDate, tzName string) (time.Time, time.Time, error) {
	loc, err := LoadLocation(tzName)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	sd, err := ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(sd.Year(), sd.Month(), sd.Day(), 0, 0, 0, 0, loc)
	var end time.Time
	if endDate == "" {
		end = start.AddDate(0, 0, 1)
	} else {
		ed, err := ParseDate(endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = time.Date(ed.Year(), ed.Month(), ed.Day(), 0, 0, 0, 0, loc)
	}
	return start.UTC(), end.UTC(), nil
}

// StartOfISOWeek returns the Monday of t's ISO week, keeping t's location
// and truncating the clock to midnight.
func StartOfISOWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := t.AddDate(0, 0, 1-wd)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of t's month at midnight in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DateLabel(t time.Time) string {
	return t.Format(dateLayout)
}

func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%d", year, week)
}

func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}
