// Package slicer maps a [start, end) query window onto series generated for a synthetic span.
// Daily series are sliced by day offsets from the span start; high frequency series are
// sliced by binary search over their timestamps.
package slicer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/utils"
)

// ErrOutOfSpan is returned when a query window reaches outside the synthetic span.
var ErrOutOfSpan = errors.New("query window outside synthetic span")

// Span is the inclusive range of days a dataset was generated for.
type Span struct {
	Start time.Time
	End   time.Time
}

// NewSpan validates and truncates the span bounds to whole days.
func NewSpan(start, end time.Time) (Span, error) {
	start, end = calendar.Truncate(start), calendar.Truncate(end)
	if end.Before(start) {
		return Span{}, utils.NewValidationErrorf("synthetic end %s is before start %s", calendar.FormatDay(end), calendar.FormatDay(start))
	}
	return Span{Start: start, End: end}, nil
}

// Days returns the number of days in the span.
func (s Span) Days() int {
	return calendar.OffsetDays(s.Start, s.End) + 1
}

// Offsets converts a query window into the [from, to) day indices of the span. The window end
// is exclusive: querying the whole span means end = span end + 1 day, and any later end is
// rejected rather than truncated.
func (s Span) Offsets(start, end time.Time) (from, to int, err error) {
	if end.Before(start) {
		return 0, 0, utils.NewValidationErrorf("query end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	from = calendar.OffsetDays(s.Start, start)
	to = calendar.OffsetDays(s.Start, end)
	if from < 0 || end.After(s.End.AddDate(0, 0, 1)) {
		return 0, 0, fmt.Errorf("%w: [%s, %s) not within [%s, %s]", ErrOutOfSpan,
			calendar.FormatDay(start), calendar.FormatDay(end), calendar.FormatDay(s.Start), calendar.FormatDay(s.End))
	}
	return from, to, nil
}

// Daily returns the records of a per-day series that fall into [start, end).
func Daily[T any](span Span, records []T, start, end time.Time) ([]T, error) {
	from, to, err := span.Offsets(start, end)
	if err != nil {
		return nil, err
	}
	if to > len(records) {
		return nil, fmt.Errorf("%w: series holds %d days, window needs %d", ErrOutOfSpan, len(records), to)
	}
	return records[from:to], nil
}

// ByTimestamp returns the records whose timestamp lies in [start, end). Records must be in
// strictly ascending timestamp order.
func ByTimestamp[T any](records []T, timestamp func(T) time.Time, start, end time.Time) []T {
	left, right := SearchRange(len(records), func(i int) time.Time { return timestamp(records[i]) }, start, end)
	return records[left:right]
}

// SearchRange returns [left, right) where left is the first index with a timestamp at or
// after start and right the first index at or after end.
func SearchRange(n int, at func(int) time.Time, start, end time.Time) (left, right int) {
	left = sort.Search(n, func(i int) bool { return !at(i).Before(start) })
	right = sort.Search(n, func(i int) bool { return !at(i).Before(end) })
	if right < left {
		right = left
	}
	return left, right
}
