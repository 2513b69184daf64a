package models

// ActiveZoneMinutesRecord is one day of per-minute active zone minutes.
type ActiveZoneMinutesRecord struct {
	Intraday []ActiveZoneMinutesDay `json:"activities-active-zone-minutes-intraday"`
}

// ActiveZoneMinutesDay lists the minutes of a single day.
type ActiveZoneMinutesDay struct {
	DateTime string                 `json:"dateTime"`
	Minutes  []ActiveZoneMinuteSlot `json:"minutes"`
}

// ActiveZoneMinuteSlot is one minute of the day with its zone flags.
type ActiveZoneMinuteSlot struct {
	Minute string                 `json:"minute"`
	Value  ActiveZoneMinutesValue `json:"value"`
}

// ActiveZoneMinutesValue holds the zone flags (intraday) or totals (daily). Zone fields are
// omitted when zero, matching the vendor payload.
type ActiveZoneMinutesValue struct {
	ActiveZoneMinutes        int `json:"activeZoneMinutes"`
	FatBurnActiveZoneMinutes int `json:"fatBurnActiveZoneMinutes,omitempty"`
	CardioActiveZoneMinutes  int `json:"cardioActiveZoneMinutes,omitempty"`
	PeakActiveZoneMinutes    int `json:"peakActiveZoneMinutes,omitempty"`
}

// Add accumulates other into v.
func (v *ActiveZoneMinutesValue) Add(other ActiveZoneMinutesValue) {
	v.ActiveZoneMinutes += other.ActiveZoneMinutes
	v.FatBurnActiveZoneMinutes += other.FatBurnActiveZoneMinutes
	v.CardioActiveZoneMinutes += other.CardioActiveZoneMinutes
	v.PeakActiveZoneMinutes += other.PeakActiveZoneMinutes
}

// Minutes returns the per-minute slots of the record's day.
func (r ActiveZoneMinutesRecord) Minutes() []ActiveZoneMinuteSlot {
	if len(r.Intraday) == 0 {
		return nil
	}
	return r.Intraday[0].Minutes
}

// ActiveZoneMinutesDailyRecord is the daily active zone minutes summary.
type ActiveZoneMinutesDailyRecord struct {
	Days []ActiveZoneMinutesTotal `json:"activities-active-zone-minutes"`
}

// ActiveZoneMinutesTotal is one day of summed zone minutes.
type ActiveZoneMinutesTotal struct {
	DateTime string                 `json:"dateTime"`
	Value    ActiveZoneMinutesValue `json:"value"`
}
