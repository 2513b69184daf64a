package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntradaySeries_MarshalJSON(t *testing.T) {
	series := IntradaySeries{Interval: time.Minute, Values: []float64{75, 76.5, 77}}

	data, err := json.Marshal(series)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"time":"00:00:00","value":75},
		{"time":"00:01:00","value":76.5},
		{"time":"00:02:00","value":77}
	]`, string(data))
}

func TestIntradaySeries_Empty(t *testing.T) {
	data, err := json.Marshal(IntradaySeries{Interval: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, 0.0, IntradaySeries{}.Last())
}

func TestIntradaySeries_Clock(t *testing.T) {
	perSecond := IntradaySeries{Interval: time.Second, Values: make([]float64, 86400)}
	assert.Equal(t, "00:00:00", perSecond.Clock(0))
	assert.Equal(t, "00:01:01", perSecond.Clock(61))
	assert.Equal(t, "23:59:59", perSecond.Clock(86399))

	perMinute := IntradaySeries{Interval: time.Minute, Values: make([]float64, 1440)}
	assert.Equal(t, "23:59:00", perMinute.Clock(1439))
}

func TestNewIntradayDataset(t *testing.T) {
	seconds := NewIntradayDataset(time.Second, []float64{1})
	assert.Equal(t, DatasetTypeSecond, seconds.DatasetType)
	assert.Equal(t, 1, seconds.DatasetInterval)

	minutes := NewIntradayDataset(time.Minute, []float64{1})
	assert.Equal(t, DatasetTypeMinute, minutes.DatasetType)
}

func TestHeartRateRecord_VendorShape(t *testing.T) {
	record := HeartRateRecord{HeartRateDay: []HeartRateDay{{
		ActivitiesHeart: []HeartActivity{{
			DateTime: "2022-03-01",
			Value: HeartActivityValue{
				CustomHeartRateZones: []HeartRateZone{},
				HeartRateZones:       []HeartRateZone{{CaloriesOut: 1.5, Max: 110, Min: 30, Minutes: 2, Name: "Out of Range"}},
				RestingHeartRate:     58,
			},
		}},
		ActivitiesHeartIntraday: NewIntradayDataset(time.Minute, []float64{70}),
	}}}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"heart_rate_day":[{
		"activities-heart":[{"dateTime":"2022-03-01","value":{
			"customHeartRateZones":[],
			"heartRateZones":[{"caloriesOut":1.5,"max":110,"min":30,"minutes":2,"name":"Out of Range"}],
			"restingHeartRate":58}}],
		"activities-heart-intraday":{"dataset":[{"time":"00:00:00","value":70}],"datasetInterval":1,"datasetType":"minute"}
	}]}`, string(data))

	assert.Equal(t, "2022-03-01", record.DateTime())
	assert.Equal(t, 1, record.Series().Len())
	assert.Equal(t, "", HeartRateRecord{}.DateTime())
}

func TestActiveZoneMinutesValue_OmitsEmptyZones(t *testing.T) {
	data, err := json.Marshal(ActiveZoneMinutesValue{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"activeZoneMinutes":0}`, string(data))

	data, err = json.Marshal(ActiveZoneMinutesValue{ActiveZoneMinutes: 1, PeakActiveZoneMinutes: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"activeZoneMinutes":1,"peakActiveZoneMinutes":1}`, string(data))
}

func TestActiveZoneMinutesValue_Add(t *testing.T) {
	total := ActiveZoneMinutesValue{}
	total.Add(ActiveZoneMinutesValue{ActiveZoneMinutes: 1, CardioActiveZoneMinutes: 1})
	total.Add(ActiveZoneMinutesValue{ActiveZoneMinutes: 1, FatBurnActiveZoneMinutes: 1})

	assert.Equal(t, ActiveZoneMinutesValue{ActiveZoneMinutes: 2, FatBurnActiveZoneMinutes: 1, CardioActiveZoneMinutes: 1}, total)
}

func TestSleepSummary_Stage(t *testing.T) {
	summary := SleepSummary{}
	summary.Stage(SleepLevelDeep).Minutes += 30
	summary.Stage(SleepLevelRem).Count++
	summary.Stage(SleepLevelWake).Minutes += 5

	assert.Equal(t, 30, summary.Deep.Minutes)
	assert.Equal(t, 1, summary.Rem.Count)
	assert.Equal(t, 35, summary.TotalMinutes())
	assert.Nil(t, summary.Stage("nap"))
}

func TestSyntheticDataset_Append(t *testing.T) {
	ds := NewSyntheticDataset(0, "2022-03-01", "2022-03-02", 2)
	for _, date := range []string{"2022-03-01", "2022-03-02"} {
		ds.Append(DayRecords{
			Date:  date,
			Sleep: SleepRecord{DateOfSleep: date},
			Activity: ActivityRecord{
				Steps:            DailyValue[int]{DateTime: date, Value: 100},
				MinutesSedentary: DailyValue[int]{DateTime: date, Value: 1440},
			},
		})
	}

	assert.Equal(t, 2, ds.Len())
	assert.Len(t, ds.Sleep, 2)
	assert.Len(t, ds.DistanceDay, 2)
	assert.Equal(t, "2022-03-02", ds.Steps[1].DateTime)
	assert.Equal(t, 1440, ActivityRecord{MinutesSedentary: ds.MinutesSedentary[0]}.TotalMinutes())
}
