package synth

import (
	"time"

	"github.com/irfndi/wearsynth/internal/models"
)

const (
	// movementProbability is the share of minutes with movement (weights 0.3 of 0.9).
	movementProbability = 1.0 / 3
	maxMinuteDistance   = 0.1
)

// GenerateDistanceDay builds the per-minute distance of a day. Each minute either has no
// movement or a distance drawn from [0, 0.1); the day total is the sum of the minutes.
func GenerateDistanceDay(src *Source, date string) models.DistanceDayRecord {
	values := make([]float64, minutesPerDay)
	var total float64
	for i := range values {
		if src.Float64() < movementProbability {
			values[i] = src.Uniform(0, maxMinuteDistance)
			total += values[i]
		}
	}

	return models.DistanceDayRecord{DistanceDay: []models.DistanceDay{{
		ActivitiesDistance:         []models.DailyValue[float64]{{DateTime: date, Value: total}},
		ActivitiesDistanceIntraday: models.NewIntradayDataset(time.Minute, values),
	}}}
}
