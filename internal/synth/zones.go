package synth

import (
	"time"

	"github.com/cinar/indicator/v2/helper"

	"github.com/irfndi/wearsynth/internal/models"
)

// Active zone thresholds applied to a minute's mean heart rate.
const (
	PeakThreshold    = 111
	CardioThreshold  = 98
	FatBurnThreshold = 87
)

// MinuteMeans averages a heart rate series over consecutive one-minute windows and returns
// 1440 means. A trailing window that is only partially covered averages the samples it has;
// minutes past the end of the series repeat the last sample.
func MinuteMeans(series models.IntradaySeries) []float64 {
	means := make([]float64, minutesPerDay)
	if series.Len() == 0 || series.Interval <= 0 {
		return means
	}

	perMinute := int(time.Minute / series.Interval)
	if perMinute < 1 {
		perMinute = 1
	}

	full := 0
	if perMinute > 1 {
		full = min(series.Len()/perMinute, minutesPerDay)
	}
	windows := make([][]float64, full)
	for i := range windows {
		windows[i] = series.Values[i*perMinute : (i+1)*perMinute]
	}
	fullMeans := helper.ChanToSlice(helper.Map(helper.SliceToChan(windows), mean))

	for i := range means {
		first := i * perMinute
		switch {
		case first >= series.Len():
			means[i] = series.Last()
		case perMinute == 1:
			means[i] = series.Values[first]
		case i < len(fullMeans):
			means[i] = fullMeans[i]
		default:
			means[i] = mean(series.Values[first:])
		}
	}
	return means
}

// ClassifyZone returns the per-minute zone flags for a mean heart rate.
func ClassifyZone(bpm float64) models.ActiveZoneMinutesValue {
	switch {
	case bpm > PeakThreshold:
		return models.ActiveZoneMinutesValue{ActiveZoneMinutes: 1, PeakActiveZoneMinutes: 1}
	case bpm > CardioThreshold:
		return models.ActiveZoneMinutesValue{ActiveZoneMinutes: 1, CardioActiveZoneMinutes: 1}
	case bpm > FatBurnThreshold:
		return models.ActiveZoneMinutesValue{ActiveZoneMinutes: 1, FatBurnActiveZoneMinutes: 1}
	default:
		return models.ActiveZoneMinutesValue{}
	}
}

// ZoneMinutes builds the per-minute active zone record of a day from its minute means.
// Each call allocates a new record, so intraday activity and active zone minutes never share
// backing arrays.
func ZoneMinutes(date string, means []float64) models.ActiveZoneMinutesRecord {
	slots := make([]models.ActiveZoneMinuteSlot, len(means))
	clock := models.IntradaySeries{Interval: time.Minute, Values: means}
	for i, m := range means {
		slots[i] = models.ActiveZoneMinuteSlot{
			Minute: clock.Clock(i),
			Value:  ClassifyZone(m),
		}
	}
	return models.ActiveZoneMinutesRecord{Intraday: []models.ActiveZoneMinutesDay{{
		DateTime: date,
		Minutes:  slots,
	}}}
}

// DailyActiveZoneMinutes sums an intraday record into the daily summary.
func DailyActiveZoneMinutes(record models.ActiveZoneMinutesRecord) models.ActiveZoneMinutesDailyRecord {
	var total models.ActiveZoneMinutesValue
	for _, slot := range record.Minutes() {
		total.Add(slot.Value)
	}

	date := ""
	if len(record.Intraday) > 0 {
		date = record.Intraday[0].DateTime
	}
	return models.ActiveZoneMinutesDailyRecord{Days: []models.ActiveZoneMinutesTotal{{
		DateTime: date,
		Value:    total,
	}}}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
