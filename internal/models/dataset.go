package models

// DayRecords is everything generated for a single calendar day.
type DayRecords struct {
	Date                     string
	Sleep                    SleepRecord
	Activity                 ActivityRecord
	HeartRate                HeartRateRecord
	IntradayHeartRate        HeartRateRecord
	HRV                      HRVRecord
	IntradayHRV              IntradayHRVRecord
	IntradaySpO2             SpO2Record
	IntradayBreathRate       BreathingRateRecord
	IntradayActivity         ActiveZoneMinutesRecord
	IntradayActiveZoneMinute ActiveZoneMinutesRecord
	ActiveZoneMinute         ActiveZoneMinutesDailyRecord
	DistanceDay              DistanceDayRecord
}

// SyntheticDataset holds every metric for a synthetic span, one entry per day in
// chronological order. Index i of every slice belongs to Dates[i].
type SyntheticDataset struct {
	Seed      int64    `json:"seed"`
	StartDate string   `json:"synthetic_start_date"`
	EndDate   string   `json:"synthetic_end_date"`
	Dates     []string `json:"dates"`

	Sleep                    []SleepRecord                  `json:"sleep"`
	Steps                    []DailyValue[int]              `json:"steps"`
	MinutesVeryActive        []DailyValue[int]              `json:"minutesVeryActive"`
	MinutesFairlyActive      []DailyValue[int]              `json:"minutesFairlyActive"`
	MinutesLightlyActive     []DailyValue[int]              `json:"minutesLightlyActive"`
	Distance                 []DailyValue[float64]          `json:"distance"`
	MinutesSedentary         []DailyValue[int]              `json:"minutesSedentary"`
	HeartRate                []HeartRateRecord              `json:"heart_rate"`
	IntradayHeartRate        []HeartRateRecord              `json:"intraday_heart_rate"`
	HRV                      []HRVRecord                    `json:"hrv"`
	IntradayHRV              []IntradayHRVRecord            `json:"intraday_hrv"`
	IntradaySpO2             []SpO2Record                   `json:"intraday_spo2"`
	IntradayBreathRate       []BreathingRateRecord          `json:"intraday_breath_rate"`
	IntradayActivity         []ActiveZoneMinutesRecord      `json:"intraday_activity"`
	IntradayActiveZoneMinute []ActiveZoneMinutesRecord      `json:"intraday_active_zone_minute"`
	ActiveZoneMinute         []ActiveZoneMinutesDailyRecord `json:"active_zone_minute"`
	DistanceDay              []DistanceDayRecord            `json:"distance_day"`
}

// NewSyntheticDataset allocates a dataset sized for days entries.
func NewSyntheticDataset(seed int64, startDate, endDate string, days int) *SyntheticDataset {
	return &SyntheticDataset{
		Seed:                     seed,
		StartDate:                startDate,
		EndDate:                  endDate,
		Dates:                    make([]string, 0, days),
		Sleep:                    make([]SleepRecord, 0, days),
		Steps:                    make([]DailyValue[int], 0, days),
		MinutesVeryActive:        make([]DailyValue[int], 0, days),
		MinutesFairlyActive:      make([]DailyValue[int], 0, days),
		MinutesLightlyActive:     make([]DailyValue[int], 0, days),
		Distance:                 make([]DailyValue[float64], 0, days),
		MinutesSedentary:         make([]DailyValue[int], 0, days),
		HeartRate:                make([]HeartRateRecord, 0, days),
		IntradayHeartRate:        make([]HeartRateRecord, 0, days),
		HRV:                      make([]HRVRecord, 0, days),
		IntradayHRV:              make([]IntradayHRVRecord, 0, days),
		IntradaySpO2:             make([]SpO2Record, 0, days),
		IntradayBreathRate:       make([]BreathingRateRecord, 0, days),
		IntradayActivity:         make([]ActiveZoneMinutesRecord, 0, days),
		IntradayActiveZoneMinute: make([]ActiveZoneMinutesRecord, 0, days),
		ActiveZoneMinute:         make([]ActiveZoneMinutesDailyRecord, 0, days),
		DistanceDay:              make([]DistanceDayRecord, 0, days),
	}
}

// Append adds one day to the end of every series.
func (d *SyntheticDataset) Append(day DayRecords) {
	d.Dates = append(d.Dates, day.Date)
	d.Sleep = append(d.Sleep, day.Sleep)
	d.Steps = append(d.Steps, day.Activity.Steps)
	d.MinutesVeryActive = append(d.MinutesVeryActive, day.Activity.MinutesVeryActive)
	d.MinutesFairlyActive = append(d.MinutesFairlyActive, day.Activity.MinutesFairlyActive)
	d.MinutesLightlyActive = append(d.MinutesLightlyActive, day.Activity.MinutesLightlyActive)
	d.Distance = append(d.Distance, day.Activity.Distance)
	d.MinutesSedentary = append(d.MinutesSedentary, day.Activity.MinutesSedentary)
	d.HeartRate = append(d.HeartRate, day.HeartRate)
	d.IntradayHeartRate = append(d.IntradayHeartRate, day.IntradayHeartRate)
	d.HRV = append(d.HRV, day.HRV)
	d.IntradayHRV = append(d.IntradayHRV, day.IntradayHRV)
	d.IntradaySpO2 = append(d.IntradaySpO2, day.IntradaySpO2)
	d.IntradayBreathRate = append(d.IntradayBreathRate, day.IntradayBreathRate)
	d.IntradayActivity = append(d.IntradayActivity, day.IntradayActivity)
	d.IntradayActiveZoneMinute = append(d.IntradayActiveZoneMinute, day.IntradayActiveZoneMinute)
	d.ActiveZoneMinute = append(d.ActiveZoneMinute, day.ActiveZoneMinute)
	d.DistanceDay = append(d.DistanceDay, day.DistanceDay)
}

// Len returns the number of days in the dataset.
func (d *SyntheticDataset) Len() int {
	return len(d.Dates)
}
