package synth

import "github.com/irfndi/wearsynth/internal/models"

const (
	minutesPerDay = 1440

	maxActiveMinutes = 240

	stepsPerVeryActiveMinute    = 50
	stepsPerFairlyActiveMinute  = 25
	stepsPerLightlyActiveMinute = 10

	// steps per distance unit used to derive distance from steps
	stepsPerDistanceUnit = 1326
)

// GenerateActivity draws the three intensity minute counts uniformly from [0, 240) and
// derives the remaining activity fields with ActivityFromMinutes.
func GenerateActivity(src *Source, date string) models.ActivityRecord {
	veryActive := src.IntRange(0, maxActiveMinutes)
	fairlyActive := src.IntRange(0, maxActiveMinutes)
	lightlyActive := src.IntRange(0, maxActiveMinutes)

	return ActivityFromMinutes(date, veryActive, fairlyActive, lightlyActive)
}

// ActivityFromMinutes derives steps, distance and sedentary minutes from the intensity
// minutes of a day. Sedentary minutes are 1440 minus the intensity minutes and are not
// clipped: when the intensity minutes exceed 1440 the sedentary value goes negative, which
// keeps the four minute fields summing to 1440. Generated days never reach that case since
// the intensity minutes total at most 717.
func ActivityFromMinutes(date string, veryActive, fairlyActive, lightlyActive int) models.ActivityRecord {
	steps := veryActive*stepsPerVeryActiveMinute +
		fairlyActive*stepsPerFairlyActiveMinute +
		lightlyActive*stepsPerLightlyActiveMinute

	return models.ActivityRecord{
		Steps:                models.DailyValue[int]{DateTime: date, Value: steps},
		MinutesVeryActive:    models.DailyValue[int]{DateTime: date, Value: veryActive},
		MinutesFairlyActive:  models.DailyValue[int]{DateTime: date, Value: fairlyActive},
		MinutesLightlyActive: models.DailyValue[int]{DateTime: date, Value: lightlyActive},
		Distance:             models.DailyValue[float64]{DateTime: date, Value: float64(steps) / stepsPerDistanceUnit},
		MinutesSedentary:     models.DailyValue[int]{DateTime: date, Value: minutesPerDay - (veryActive + fairlyActive + lightlyActive)},
	}
}
