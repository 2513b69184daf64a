package models

// Sleep level labels used in SleepLevelEntry.Level.
const (
	SleepLevelWake  = "wake"
	SleepLevelLight = "light"
	SleepLevelDeep  = "deep"
	SleepLevelRem   = "rem"
)

// SleepRecord is one main sleep log in the vendor "stages" shape.
type SleepRecord struct {
	DateOfSleep         string      `json:"dateOfSleep"`
	Duration            int64       `json:"duration"` // milliseconds
	Efficiency          int         `json:"efficiency"`
	EndTime             string      `json:"endTime"`
	InfoCode            int         `json:"infoCode"`
	IsMainSleep         bool        `json:"isMainSleep"`
	LogID               int64       `json:"logId"`
	LogType             string      `json:"logType"`
	MinutesAfterWakeup  int         `json:"minutesAfterWakeup"`
	MinutesAsleep       int         `json:"minutesAsleep"`
	MinutesAwake        int         `json:"minutesAwake"`
	MinutesToFallAsleep int         `json:"minutesToFallAsleep"`
	StartTime           string      `json:"startTime"`
	TimeInBed           int         `json:"timeInBed"`
	Levels              SleepLevels `json:"levels"`
	Type                string      `json:"type"`
}

// SleepLevels holds the chronological stage segments and the per-stage summary.
type SleepLevels struct {
	Data      []SleepLevelEntry `json:"data"`
	ShortData []SleepLevelEntry `json:"shortData"`
	Summary   SleepSummary      `json:"summary"`
}

// SleepLevelEntry is one contiguous segment at a single level.
type SleepLevelEntry struct {
	DateTime string `json:"dateTime"`
	Level    string `json:"level"`
	Seconds  int    `json:"seconds"`
}

// SleepSummary aggregates segment counts and minutes per level.
type SleepSummary struct {
	Deep  SleepStageSummary `json:"deep"`
	Light SleepStageSummary `json:"light"`
	Rem   SleepStageSummary `json:"rem"`
	Wake  SleepStageSummary `json:"wake"`
}

// SleepStageSummary is the count and total minutes of one level.
type SleepStageSummary struct {
	Count   int `json:"count"`
	Minutes int `json:"minutes"`
}

// Stage returns a pointer to the summary for level, or nil for an unknown level.
func (s *SleepSummary) Stage(level string) *SleepStageSummary {
	switch level {
	case SleepLevelDeep:
		return &s.Deep
	case SleepLevelLight:
		return &s.Light
	case SleepLevelRem:
		return &s.Rem
	case SleepLevelWake:
		return &s.Wake
	default:
		return nil
	}
}

// TotalMinutes sums the minutes of all four levels.
func (s SleepSummary) TotalMinutes() int {
	return s.Deep.Minutes + s.Light.Minutes + s.Rem.Minutes + s.Wake.Minutes
}
