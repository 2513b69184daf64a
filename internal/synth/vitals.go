package synth

import (
	"time"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/models"
)

const (
	minDailyRmssd = 13
	maxDailyRmssd = 48

	minSpO2 = 95
	maxSpO2 = 100
)

var nightlyStartHours = []int{21, 22, 23, 0, 1, 2}

// NightlyWindow is the overnight period covered by intraday HRV and SpO2 of a day. It starts
// at Hour:Minute:Second of the day itself (early hours included) and lasts Duration minutes.
type NightlyWindow struct {
	Hour     int
	Minute   int
	Second   int
	Duration int
}

// Start returns the first timestamp of the window on day.
func (w NightlyWindow) Start(day time.Time) time.Time {
	return day.Add(time.Duration(w.Hour)*time.Hour +
		time.Duration(w.Minute)*time.Minute +
		time.Duration(w.Second)*time.Second)
}

// GenerateNightlyWindow draws a start hour from {21, 22, 23, 0, 1, 2}, minute and second in
// [0, 59] and a length of [360, 540] minutes.
func GenerateNightlyWindow(src *Source) NightlyWindow {
	return NightlyWindow{
		Hour:     Choice(src, nightlyStartHours),
		Minute:   src.IntRange(0, 60),
		Second:   src.IntRange(0, 60),
		Duration: src.IntRange(360, 541),
	}
}

// GenerateBreathingRate draws per-stage breathing rates; the full-night rate is their mean.
func GenerateBreathingRate(src *Source, date string) models.BreathingRateRecord {
	deep := src.Normal(12, 1.5)
	rem := src.Normal(16, 1.5)
	light := src.Normal(18, 2)

	return models.BreathingRateRecord{BR: []models.BreathingRateDay{{
		Value: models.BreathingRateValue{
			DeepSleepSummary:  models.BreathingRateSummary{BreathingRate: deep},
			RemSleepSummary:   models.BreathingRateSummary{BreathingRate: rem},
			LightSleepSummary: models.BreathingRateSummary{BreathingRate: light},
			FullSleepSummary:  models.BreathingRateSummary{BreathingRate: (deep + rem + light) / 3},
		},
		DateTime: date,
	}}}
}

// GenerateHRV draws the daily and deep-sleep RMSSD from [13, 48).
func GenerateHRV(src *Source, date string) models.HRVRecord {
	daily := src.IntRange(minDailyRmssd, maxDailyRmssd)
	deep := src.IntRange(minDailyRmssd, maxDailyRmssd)

	return models.HRVRecord{HRV: []models.HRVDailyGroup{{
		HRV: []models.HRVDailyEntry{{
			Value:    models.HRVDailyValue{DailyRmssd: daily, DeepRmssd: deep},
			DateTime: date,
		}},
	}}}
}

// GenerateIntradayHRV produces one reading per minute of the nightly window. All values are
// rounded to three decimals. lf is drawn between max(100, 0.2 hf) and min(hf, 0.4 hf); for
// hf below 250 those bounds invert and lf lands in [0.4 hf, 100], which still keeps
// 0.2 hf <= lf <= hf.
func GenerateIntradayHRV(src *Source, day time.Time, window NightlyWindow) models.IntradayHRVRecord {
	date := calendar.FormatDay(day)
	start := window.Start(day)

	minutes := make([]models.HRVMinute, window.Duration)
	for i := range minutes {
		hf := round(src.Uniform(100, 1000), 3)
		rmssd := round(src.Uniform(20, 80), 3)
		coverage := round(src.Uniform(0.9, 0.99), 3)
		lf := round(src.Uniform(max(100, 0.2*hf), min(hf, 0.4*hf)), 3)

		minutes[i] = models.HRVMinute{
			Minute: start.Add(time.Duration(i) * time.Minute).Format(calendar.MillisLayout),
			Value: models.HRVMinuteValue{
				Rmssd:    rmssd,
				Coverage: coverage,
				Hf:       hf,
				Lf:       lf,
			},
		}
	}

	return models.IntradayHRVRecord{HRV: []models.HRVIntradayDay{{
		Minutes:  minutes,
		DateTime: date,
	}}}
}

// GenerateIntradaySpO2 walks blood oxygen through the nightly window: a N(97.5, 3) baseline
// rounded to 0.1, then each minute adds a change from [-0.5, 0.5] rounded to 0.1. The value
// is clipped to [95, 100] at the baseline and after every step.
func GenerateIntradaySpO2(src *Source, day time.Time, window NightlyWindow) models.SpO2Record {
	start := window.Start(day)

	value := clamp(round(src.Normal(97.5, 3), 1), minSpO2, maxSpO2)
	minutes := make([]models.SpO2Minute, window.Duration)
	for i := range minutes {
		change := round(src.Uniform(-0.5, 0.5), 1)
		value = clamp(round(value+change, 1), minSpO2, maxSpO2)
		minutes[i] = models.SpO2Minute{
			Value:  value,
			Minute: start.Add(time.Duration(i) * time.Minute).Format(calendar.TimestampLayout),
		}
	}

	return models.SpO2Record{DateTime: calendar.FormatDay(day), Minutes: minutes}
}
