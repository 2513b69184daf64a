package synth

import (
	"time"

	"github.com/irfndi/wearsynth/internal/models"
)

const (
	// MinHeartRate and MaxHeartRate bound every generated heart rate sample.
	MinHeartRate = 50
	MaxHeartRate = 195

	heartRateMean = 75
	heartRateStd  = 15

	restingHeartRate = 58
)

// heartRateZone is a row of the vendor zone table before minutes and calories accumulate.
type heartRateZone struct {
	name         string
	min, max     int
	baseCalories float64
}

var heartRateZones = []heartRateZone{
	{name: "Out of Range", min: 30, max: 110, baseCalories: 2877.06579},
	{name: "Fat Burn", min: 110, max: 136},
	{name: "Cardio", min: 136, max: 169},
	{name: "Peak", min: 169, max: 220},
}

// GenerateHeartRate builds one day of heart rate sampled every interval (time.Minute for the
// daily record, time.Second for the intraday one).
//
// The series is a random walk from a N(75, 15) baseline taking steps of -1, 0 or +1 and
// clipped to [50, 195] after every step. Every sample is credited to the zone of its hour of
// day: its duration in minutes and 2*(zone+0.5) calories per minute.
func GenerateHeartRate(src *Source, date string, interval time.Duration) models.HeartRateRecord {
	ticks := int(24 * time.Hour / interval)
	values := make([]float64, ticks)

	bpm := clamp(src.Normal(heartRateMean, heartRateStd), MinHeartRate, MaxHeartRate)
	for i := range values {
		bpm = clamp(bpm+float64(src.IntRange(-1, 2)), MinHeartRate, MaxHeartRate)
		values[i] = bpm
	}

	var ticksPerZone [4]int
	for i := range values {
		hour := int(time.Duration(i) * interval / time.Hour)
		ticksPerZone[zoneIndex(hour)]++
	}

	zones := make([]models.HeartRateZone, len(heartRateZones))
	for i, z := range heartRateZones {
		minutes := int(time.Duration(ticksPerZone[i]) * interval / time.Minute)
		zones[i] = models.HeartRateZone{
			CaloriesOut: z.baseCalories + float64(minutes)*2*(float64(i)+0.5),
			Max:         z.max,
			Min:         z.min,
			Minutes:     minutes,
			Name:        z.name,
		}
	}

	return models.HeartRateRecord{HeartRateDay: []models.HeartRateDay{{
		ActivitiesHeart: []models.HeartActivity{{
			DateTime: date,
			Value: models.HeartActivityValue{
				CustomHeartRateZones: []models.HeartRateZone{},
				HeartRateZones:       zones,
				RestingHeartRate:     restingHeartRate,
			},
		}},
		ActivitiesHeartIntraday: models.NewIntradayDataset(interval, values),
	}}}
}

// zoneIndex maps an hour of day to its heart rate zone: night (<6, >=22) is out of range,
// morning 6-9 fat burn, daytime 10-17 cardio and evening 18-21 peak.
func zoneIndex(hour int) int {
	switch {
	case hour < 6 || hour >= 22:
		return 0
	case hour < 10:
		return 1
	case hour < 18:
		return 2
	default:
		return 3
	}
}
