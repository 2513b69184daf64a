package models

// HRVRecord is the daily heart rate variability summary.
type HRVRecord struct {
	HRV []HRVDailyGroup `json:"hrv"`
}

// HRVDailyGroup wraps the per-day entries as returned by the vendor API.
type HRVDailyGroup struct {
	HRV []HRVDailyEntry `json:"hrv"`
}

// HRVDailyEntry is one day of RMSSD values.
type HRVDailyEntry struct {
	Value    HRVDailyValue `json:"value"`
	DateTime string        `json:"dateTime"`
}

// HRVDailyValue holds daily and deep-sleep RMSSD in milliseconds.
type HRVDailyValue struct {
	DailyRmssd int `json:"dailyRmssd"`
	DeepRmssd  int `json:"deepRmssd"`
}

// IntradayHRVRecord is one night of per-minute heart rate variability.
type IntradayHRVRecord struct {
	HRV []HRVIntradayDay `json:"hrv"`
}

// HRVIntradayDay lists the minutes recorded during the nightly window.
type HRVIntradayDay struct {
	Minutes  []HRVMinute `json:"minutes"`
	DateTime string      `json:"dateTime"`
}

// HRVMinute is one minute of HRV readings.
type HRVMinute struct {
	Minute string         `json:"minute"`
	Value  HRVMinuteValue `json:"value"`
}

// HRVMinuteValue carries the spectral and time-domain HRV readings of a minute.
type HRVMinuteValue struct {
	Rmssd    float64 `json:"rmssd"`
	Coverage float64 `json:"coverage"`
	Hf       float64 `json:"hf"`
	Lf       float64 `json:"lf"`
}

// Minutes returns the minutes of the record's night.
func (r IntradayHRVRecord) Minutes() []HRVMinute {
	if len(r.HRV) == 0 {
		return nil
	}
	return r.HRV[0].Minutes
}

// SpO2Record is one night of per-minute blood oxygen saturation.
type SpO2Record struct {
	DateTime string       `json:"dateTime"`
	Minutes  []SpO2Minute `json:"minutes"`
}

// SpO2Minute is one SpO2 reading in percent.
type SpO2Minute struct {
	Value  float64 `json:"value"`
	Minute string  `json:"minute"`
}

// BreathingRateRecord is one night of breathing rate per sleep stage.
type BreathingRateRecord struct {
	BR []BreathingRateDay `json:"br"`
}

// BreathingRateDay carries the per-stage summaries of a night.
type BreathingRateDay struct {
	Value    BreathingRateValue `json:"value"`
	DateTime string             `json:"dateTime"`
}

// BreathingRateValue holds breaths per minute by stage and for the whole night.
type BreathingRateValue struct {
	DeepSleepSummary  BreathingRateSummary `json:"deepSleepSummary"`
	RemSleepSummary   BreathingRateSummary `json:"remSleepSummary"`
	LightSleepSummary BreathingRateSummary `json:"lightSleepSummary"`
	FullSleepSummary  BreathingRateSummary `json:"fullSleepSummary"`
}

// BreathingRateSummary is a single breathing rate reading.
type BreathingRateSummary struct {
	BreathingRate float64 `json:"breathingRate"`
}

// DistanceDayRecord is one day of distance: the daily total plus a per-minute dataset.
type DistanceDayRecord struct {
	DistanceDay []DistanceDay `json:"distance_day"`
}

// DistanceDay pairs the daily total with the intraday dataset.
type DistanceDay struct {
	ActivitiesDistance         []DailyValue[float64] `json:"activities-distance"`
	ActivitiesDistanceIntraday IntradayDataset       `json:"activities-distance-intraday"`
}
