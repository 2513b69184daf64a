package models

import "time"

// HeartRateRecord is one day of heart rate in the vendor "heart_rate_day" envelope.
type HeartRateRecord struct {
	HeartRateDay []HeartRateDay `json:"heart_rate_day"`
}

// HeartRateDay pairs the daily zone summary with the intraday dataset.
type HeartRateDay struct {
	ActivitiesHeart         []HeartActivity `json:"activities-heart"`
	ActivitiesHeartIntraday IntradayDataset `json:"activities-heart-intraday"`
}

// HeartActivity is the daily summary entry of activities-heart.
type HeartActivity struct {
	DateTime string             `json:"dateTime"`
	Value    HeartActivityValue `json:"value"`
}

// HeartActivityValue carries the zone table and resting heart rate.
type HeartActivityValue struct {
	CustomHeartRateZones []HeartRateZone `json:"customHeartRateZones"`
	HeartRateZones       []HeartRateZone `json:"heartRateZones"`
	RestingHeartRate     int             `json:"restingHeartRate"`
}

// HeartRateZone is one heart rate zone with accumulated minutes and calories.
type HeartRateZone struct {
	CaloriesOut float64 `json:"caloriesOut"`
	Max         int     `json:"max"`
	Min         int     `json:"min"`
	Minutes     int     `json:"minutes"`
	Name        string  `json:"name"`
}

// Day returns the single day held by the record.
func (r HeartRateRecord) Day() HeartRateDay {
	if len(r.HeartRateDay) == 0 {
		return HeartRateDay{}
	}
	return r.HeartRateDay[0]
}

// Series returns the intraday samples of the record.
func (r HeartRateRecord) Series() IntradaySeries {
	return r.Day().ActivitiesHeartIntraday.Dataset
}

// DateTime returns the record's calendar day.
func (r HeartRateRecord) DateTime() string {
	day := r.Day()
	if len(day.ActivitiesHeart) == 0 {
		return ""
	}
	return day.ActivitiesHeart[0].DateTime
}

// HeartRateSample is one point of the flattened per-second heart rate timeline.
type HeartRateSample struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}
