package synth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/models"
)

// ErrInvariant reports a generated day that breaks one of the record invariants.
var ErrInvariant = errors.New("generated record violates invariant")

// GenerateDay runs every generator for day in a fixed order: the nightly window, activity,
// per-second heart rate, sleep, per-minute heart rate, daily HRV, distance, SpO2, intraday
// HRV, the two zone-minute records derived from the per-second heart rate, and breathing
// rate. The order is part of the output: changing it changes every value after the first
// reordered draw.
func GenerateDay(src *Source, day time.Time) (models.DayRecords, error) {
	day = calendar.Truncate(day)
	date := calendar.FormatDay(day)

	window := GenerateNightlyWindow(src)
	activity := GenerateActivity(src, date)
	intradayHR := GenerateHeartRate(src, date, time.Second)
	sleep := GenerateSleep(src, day)
	heartRate := GenerateHeartRate(src, date, time.Minute)
	hrv := GenerateHRV(src, date)
	distance := GenerateDistanceDay(src, date)
	spo2 := GenerateIntradaySpO2(src, day, window)
	intradayHRV := GenerateIntradayHRV(src, day, window)

	means := MinuteMeans(intradayHR.Series())
	intradayActivity := ZoneMinutes(date, means)
	intradayAZM := ZoneMinutes(date, means)

	records := models.DayRecords{
		Date:                     date,
		Sleep:                    sleep,
		Activity:                 activity,
		HeartRate:                heartRate,
		IntradayHeartRate:        intradayHR,
		HRV:                      hrv,
		IntradayHRV:              intradayHRV,
		IntradaySpO2:             spo2,
		IntradayBreathRate:       GenerateBreathingRate(src, date),
		IntradayActivity:         intradayActivity,
		IntradayActiveZoneMinute: intradayAZM,
		ActiveZoneMinute:         DailyActiveZoneMinutes(intradayAZM),
		DistanceDay:              distance,
	}

	if err := ValidateDay(records); err != nil {
		return models.DayRecords{}, err
	}
	return records, nil
}

// ValidateDay checks the invariants every generated day must hold.
func ValidateDay(day models.DayRecords) error {
	if total := day.Activity.TotalMinutes(); total != minutesPerDay {
		return fmt.Errorf("%w: %s activity minutes sum to %d, want %d", ErrInvariant, day.Date, total, minutesPerDay)
	}

	sleep := day.Sleep
	if total := sleep.Levels.Summary.TotalMinutes(); total != sleep.TimeInBed {
		return fmt.Errorf("%w: %s sleep stages sum to %d minutes, timeInBed is %d", ErrInvariant, day.Date, total, sleep.TimeInBed)
	}
	var seconds int
	for _, entry := range sleep.Levels.Data {
		seconds += entry.Seconds
	}
	if int64(seconds)*1000 != sleep.Duration {
		return fmt.Errorf("%w: %s sleep levels cover %ds of a %dms sleep", ErrInvariant, day.Date, seconds, sleep.Duration)
	}

	for _, record := range []models.HeartRateRecord{day.HeartRate, day.IntradayHeartRate} {
		for _, v := range record.Series().Values {
			if v < MinHeartRate || v > MaxHeartRate || math.IsNaN(v) {
				return fmt.Errorf("%w: %s heart rate %v outside [%d, %d]", ErrInvariant, day.Date, v, MinHeartRate, MaxHeartRate)
			}
		}
	}

	for _, m := range day.IntradaySpO2.Minutes {
		if m.Value < minSpO2 || m.Value > maxSpO2 {
			return fmt.Errorf("%w: %s SpO2 %v outside [%d, %d]", ErrInvariant, day.Date, m.Value, minSpO2, maxSpO2)
		}
	}

	return nil
}

// GenerateSpan generates every day of [start, end] from a single source seeded once with
// seed. The same seed and span always produce identical datasets. Any failing day aborts the
// run and no partial dataset is returned.
func GenerateSpan(ctx context.Context, seed int64, start, end time.Time) (*models.SyntheticDataset, error) {
	days, err := calendar.Days(start, end)
	if err != nil {
		return nil, err
	}

	src := NewSource(seed)
	dataset := models.NewSyntheticDataset(seed, calendar.FormatDay(start), calendar.FormatDay(end), len(days))
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled at %s: %w", calendar.FormatDay(day), err)
		}

		records, err := GenerateDay(src, day)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", calendar.FormatDay(day), err)
		}
		dataset.Append(records)
	}
	return dataset, nil
}
