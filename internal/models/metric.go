package models

// Metric names exposed by devices. They double as the keys of the synthetic dataset.
const (
	MetricSleep                    = "sleep"
	MetricSteps                    = "steps"
	MetricMinutesVeryActive        = "minutesVeryActive"
	MetricMinutesFairlyActive      = "minutesFairlyActive"
	MetricMinutesLightlyActive     = "minutesLightlyActive"
	MetricDistance                 = "distance"
	MetricMinutesSedentary         = "minutesSedentary"
	MetricHeartRate                = "heart_rate"
	MetricIntradayHeartRate        = "intraday_heart_rate"
	MetricHRV                      = "hrv"
	MetricIntradayHRV              = "intraday_hrv"
	MetricIntradaySpO2             = "intraday_spo2"
	MetricIntradayBreathRate       = "intraday_breath_rate"
	MetricIntradayActivity         = "intraday_activity"
	MetricIntradayActiveZoneMinute = "intraday_active_zone_minute"
	MetricActiveZoneMinute         = "active_zone_minute"
	MetricDistanceDay              = "distance_day"

	// MetricHeartRateTimeline is the per-second heart rate flattened across days with
	// absolute timestamps. It is the only metric sliced by timestamp instead of by day.
	MetricHeartRateTimeline = "heart_rate_timeline"
)

// DailyMetrics lists every metric stored as one record per day, in dataset order.
var DailyMetrics = []string{
	MetricSleep,
	MetricSteps,
	MetricMinutesVeryActive,
	MetricMinutesFairlyActive,
	MetricMinutesLightlyActive,
	MetricDistance,
	MetricMinutesSedentary,
	MetricHeartRate,
	MetricIntradayHeartRate,
	MetricHRV,
	MetricIntradayHRV,
	MetricIntradaySpO2,
	MetricIntradayBreathRate,
	MetricIntradayActivity,
	MetricIntradayActiveZoneMinute,
	MetricActiveZoneMinute,
	MetricDistanceDay,
}

// DailyValue is the {dateTime, value} pair used by the activity time series endpoints.
type DailyValue[T int | float64] struct {
	DateTime string `json:"dateTime"`
	Value    T      `json:"value"`
}

// ActivityRecord groups the six activity series generated for one day.
type ActivityRecord struct {
	Steps                DailyValue[int]
	MinutesVeryActive    DailyValue[int]
	MinutesFairlyActive  DailyValue[int]
	MinutesLightlyActive DailyValue[int]
	Distance             DailyValue[float64]
	MinutesSedentary     DailyValue[int]
}

// TotalMinutes is the sum of the four activity minute fields.
func (a ActivityRecord) TotalMinutes() int {
	return a.MinutesVeryActive.Value + a.MinutesFairlyActive.Value + a.MinutesLightlyActive.Value + a.MinutesSedentary.Value
}
