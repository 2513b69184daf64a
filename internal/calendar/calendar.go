// Package calendar converts date inputs into ordered day sequences and the day offsets
// used to index per-day synthetic series.
package calendar

import (
	"time"

	"github.com/irfndi/wearsynth/internal/utils"
)

const (
	// DayLayout is the vendor date format used for dateTime and dateOfSleep fields.
	DayLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used by intraday datasets.
	ClockLayout = "15:04:05"
	// TimestampLayout is the local timestamp format used for sleep and SpO2 records.
	TimestampLayout = "2006-01-02T15:04:05"
	// MillisLayout is the local timestamp format used by intraday HRV minutes.
	MillisLayout = "2006-01-02T15:04:05.000"

	day = 24 * time.Hour
)

// date-time layouts accepted for query bounds, tried in order
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	MillisLayout,
	TimestampLayout,
	DayLayout,
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, utils.NewParseError(s, DayLayout, err)
	}
	return t, nil
}

// ParseDateTime accepts either a calendar day or a date-time and returns it in UTC.
func ParseDateTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, utils.NewParseError(s, "date or RFC3339 date-time", lastErr)
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Truncate returns midnight of the calendar day containing t, in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Days returns every calendar day in [start, end], both ends inclusive.
func Days(start, end time.Time) ([]time.Time, error) {
	start, end = Truncate(start), Truncate(end)
	if end.Before(start) {
		return nil, utils.NewValidationErrorf("end date %s is before start date %s", FormatDay(end), FormatDay(start))
	}

	n := OffsetDays(start, end) + 1
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days, nil
}

// DayStrings is Days rendered with FormatDay.
func DayStrings(start, end time.Time) ([]string, error) {
	days, err := Days(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = FormatDay(d)
	}
	return out, nil
}

// OffsetDays returns the whole number of days from reference to target, rounded toward
// negative infinity, so a target earlier in the same day as reference yields -1.
func OffsetDays(reference, target time.Time) int {
	diff := target.Sub(reference)
	n := int(diff / day)
	if diff < 0 && diff%day != 0 {
		n--
	}
	return n
}
