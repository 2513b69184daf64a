package synth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/models"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestSource_SameSeedSameDraws(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
		assert.Equal(t, a.Normal(0, 1), b.Normal(0, 1))
	}

	fresh := a.Fresh()
	assert.Equal(t, int64(42), fresh.Seed())
	assert.Equal(t, NewSource(42).Float64(), fresh.Float64())
}

func TestSource_IntRange(t *testing.T) {
	src := NewSource(1)
	for i := 0; i < 1000; i++ {
		v := src.IntRange(-1, 2)
		assert.GreaterOrEqual(t, v, -1)
		assert.Less(t, v, 2)
	}
	assert.Equal(t, 5, src.IntRange(5, 5))
	assert.Equal(t, 0, src.IntN(0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 97.5, round(97.45, 1))
	assert.Equal(t, -0.3, round(-0.25, 1))
	assert.Equal(t, 0.123, round(0.1234, 3))
}

func TestSplitDuration(t *testing.T) {
	src := NewSource(7)

	assert.Empty(t, SplitDuration(src, 0))
	assert.Empty(t, SplitDuration(src, 1))
	assert.Equal(t, []int{2}, SplitDuration(src, 2))

	for _, total := range []int{3, 11, 12, 13, 100, 500} {
		parts := SplitDuration(src, total)
		sum := 0
		for _, p := range parts {
			assert.Positive(t, p)
			sum += p
		}
		assert.Equal(t, total, sum, "total %d", total)
	}
}

func TestSpreadWake(t *testing.T) {
	assert.Nil(t, spreadWake(5, 0))
	assert.Equal(t, []int{0, 0, 0}, spreadWake(0, 3))

	out := spreadWake(7, 3)
	assert.Equal(t, 7, out[0]+out[1]+out[2])

	sparse := spreadWake(2, 10)
	sum := 0
	for _, v := range sparse {
		sum += v
	}
	assert.Equal(t, 2, sum)
}

func TestGenerateSleep_StagesSumToTimeInBed(t *testing.T) {
	src := NewSource(0)
	day := mustDay(t, "2022-03-01")

	for i := 0; i < 200; i++ {
		sleep := GenerateSleep(src, day.AddDate(0, 0, i))

		assert.Equal(t, sleep.TimeInBed, sleep.Levels.Summary.TotalMinutes())
		assert.Equal(t, sleep.TimeInBed,
			sleep.MinutesAsleep+sleep.MinutesAwake+sleep.MinutesAfterWakeup+sleep.MinutesToFallAsleep)
		assert.GreaterOrEqual(t, sleep.Duration, int64(minSleepSeconds*1000))
		assert.Less(t, sleep.Duration, int64(maxSleepSeconds*1000))
		assert.GreaterOrEqual(t, sleep.Efficiency, 90)
		assert.Less(t, sleep.Efficiency, 99)
	}
}

func TestGenerateSleep_LevelsPartitionTheNight(t *testing.T) {
	src := NewSource(3)
	day := mustDay(t, "2022-04-24")

	for i := 0; i < 50; i++ {
		sleep := GenerateSleep(src, day)
		require.NotEmpty(t, sleep.Levels.Data)

		cursor, err := time.Parse(calendar.TimestampLayout, sleep.StartTime)
		require.NoError(t, err)
		windowOpen := day.Add(21 * time.Hour)
		assert.False(t, cursor.Before(windowOpen))
		assert.True(t, cursor.Before(windowOpen.Add(sleepWindowSeconds*time.Second)))

		for _, entry := range sleep.Levels.Data {
			at, err := time.Parse(calendar.TimestampLayout, entry.DateTime)
			require.NoError(t, err)
			assert.True(t, cursor.Equal(at), "gap before %s", entry.DateTime)
			assert.Positive(t, entry.Seconds)
			cursor = at.Add(time.Duration(entry.Seconds) * time.Second)
		}

		end, err := time.Parse(calendar.TimestampLayout, sleep.EndTime)
		require.NoError(t, err)
		assert.True(t, end.Equal(cursor))

		for _, short := range sleep.Levels.ShortData {
			assert.Equal(t, models.SleepLevelWake, short.Level)
		}
	}
}

func TestGenerateActivity_MinutesSumToDay(t *testing.T) {
	src := NewSource(0)
	for i := 0; i < 500; i++ {
		a := GenerateActivity(src, "2022-03-01")
		assert.Equal(t, minutesPerDay, a.TotalMinutes())
		assert.Less(t, a.MinutesVeryActive.Value, maxActiveMinutes)
		assert.GreaterOrEqual(t, a.MinutesSedentary.Value, 0)
	}
}

func TestActivityFromMinutes(t *testing.T) {
	nominal := ActivityFromMinutes("2022-03-01", 10, 20, 30)
	assert.Equal(t, 500+500+300, nominal.Steps.Value)
	assert.InDelta(t, 1300.0/1326, nominal.Distance.Value, 1e-12)
	assert.Equal(t, 1380, nominal.MinutesSedentary.Value)
	assert.Equal(t, "2022-03-01", nominal.Distance.DateTime)

	boundary := ActivityFromMinutes("2022-03-01", 480, 480, 480)
	assert.Equal(t, 0, boundary.MinutesSedentary.Value)
	assert.Equal(t, minutesPerDay, boundary.TotalMinutes())

	over := ActivityFromMinutes("2022-03-01", 600, 600, 600)
	assert.Equal(t, -360, over.MinutesSedentary.Value)
	assert.Equal(t, minutesPerDay, over.TotalMinutes())
}

func TestGenerateHeartRate(t *testing.T) {
	src := NewSource(0)

	perMinute := GenerateHeartRate(src, "2022-03-01", time.Minute)
	assert.Equal(t, 1440, perMinute.Series().Len())
	assert.Equal(t, models.DatasetTypeMinute, perMinute.Day().ActivitiesHeartIntraday.DatasetType)

	perSecond := GenerateHeartRate(src, "2022-03-01", time.Second)
	assert.Equal(t, 86400, perSecond.Series().Len())
	assert.Equal(t, models.DatasetTypeSecond, perSecond.Day().ActivitiesHeartIntraday.DatasetType)

	for _, record := range []models.HeartRateRecord{perMinute, perSecond} {
		values := record.Series().Values
		for i, v := range values {
			require.GreaterOrEqual(t, v, float64(MinHeartRate))
			require.LessOrEqual(t, v, float64(MaxHeartRate))
			if i > 0 {
				require.LessOrEqual(t, v-values[i-1], 1.0)
				require.GreaterOrEqual(t, v-values[i-1], -1.0)
			}
		}

		zones := record.Day().ActivitiesHeart[0].Value.HeartRateZones
		require.Len(t, zones, 4)
		total := 0
		for _, z := range zones {
			total += z.Minutes
		}
		assert.Equal(t, 1440, total)
		assert.Equal(t, 480, zones[0].Minutes)
		assert.Equal(t, 240, zones[1].Minutes)
		assert.Equal(t, 480, zones[2].Minutes)
		assert.Equal(t, 240, zones[3].Minutes)
		assert.InDelta(t, 2877.06579+480, zones[0].CaloriesOut, 1e-9)
		assert.InDelta(t, 240*2*3.5, zones[3].CaloriesOut, 1e-9)
		assert.Equal(t, "Fat Burn", zones[1].Name)
		assert.Equal(t, 58, record.Day().ActivitiesHeart[0].Value.RestingHeartRate)
	}
}

func TestZoneIndex(t *testing.T) {
	cases := map[int]int{0: 0, 5: 0, 6: 1, 9: 1, 10: 2, 17: 2, 18: 3, 21: 3, 22: 0, 23: 0}
	for hour, want := range cases {
		assert.Equal(t, want, zoneIndex(hour), "hour %d", hour)
	}
}

func TestMinuteMeans(t *testing.T) {
	values := make([]float64, 86400)
	for i := range values {
		values[i] = 90
	}
	for i := 60; i < 120; i++ {
		values[i] = float64(100 + i%2*2) // mean 101
	}

	means := MinuteMeans(models.IntradaySeries{Interval: time.Second, Values: values})
	require.Len(t, means, 1440)
	assert.InDelta(t, 90, means[0], 1e-9)
	assert.InDelta(t, 101, means[1], 1e-9)
	assert.InDelta(t, 90, means[1439], 1e-9)
}

func TestMinuteMeans_PartialTrailingWindow(t *testing.T) {
	values := make([]float64, 90)
	for i := range values {
		values[i] = 80
	}
	for i := 60; i < 90; i++ {
		values[i] = 120
	}

	means := MinuteMeans(models.IntradaySeries{Interval: time.Second, Values: values})
	assert.InDelta(t, 80, means[0], 1e-9)
	assert.InDelta(t, 120, means[1], 1e-9)
	assert.Equal(t, 120.0, means[2])
	assert.Equal(t, 120.0, means[1439])
}

func TestMinuteMeans_MatchesTumblingMean(t *testing.T) {
	src := NewSource(3)
	values := make([]float64, 86400)
	for i := range values {
		values[i] = src.Uniform(60, 140)
	}

	means := MinuteMeans(models.IntradaySeries{Interval: time.Second, Values: values})
	require.Len(t, means, 1440)
	for i, got := range means {
		assert.InDelta(t, mean(values[i*60:(i+1)*60]), got, 1e-9, "minute %d", i)
	}
}

func TestMinuteMeans_PerMinuteSeries(t *testing.T) {
	values := []float64{70, 80, 90}
	means := MinuteMeans(models.IntradaySeries{Interval: time.Minute, Values: values})
	assert.Equal(t, []float64{70, 80, 90}, means[:3])
	assert.Equal(t, 90.0, means[1439])
}

func BenchmarkMinuteMeans(b *testing.B) {
	src := NewSource(0)
	values := make([]float64, 86400)
	for i := range values {
		values[i] = src.Uniform(60, 140)
	}
	series := models.IntradaySeries{Interval: time.Second, Values: values}

	for b.Loop() {
		MinuteMeans(series)
	}
}

func BenchmarkGenerateDay(b *testing.B) {
	src := NewSource(0)
	day := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	for b.Loop() {
		if _, err := GenerateDay(src, day); err != nil {
			b.Fatal(err)
		}
	}
}

func TestClassifyZone(t *testing.T) {
	assert.Equal(t, models.ActiveZoneMinutesValue{}, ClassifyZone(87))
	assert.Equal(t, 1, ClassifyZone(87.5).FatBurnActiveZoneMinutes)
	assert.Equal(t, 1, ClassifyZone(98).FatBurnActiveZoneMinutes)
	assert.Equal(t, 1, ClassifyZone(99).CardioActiveZoneMinutes)
	assert.Equal(t, 1, ClassifyZone(111).CardioActiveZoneMinutes)
	assert.Equal(t, 1, ClassifyZone(112).PeakActiveZoneMinutes)
	assert.Equal(t, 1, ClassifyZone(150).ActiveZoneMinutes)
}

func TestZoneMinutes_AndDailyTotal(t *testing.T) {
	means := make([]float64, 1440)
	means[0], means[1], means[2] = 90, 100, 120

	record := ZoneMinutes("2022-03-01", means)
	slots := record.Minutes()
	require.Len(t, slots, 1440)
	assert.Equal(t, "00:02:00", slots[2].Minute)
	assert.Equal(t, "23:59:00", slots[1439].Minute)

	daily := DailyActiveZoneMinutes(record)
	require.Len(t, daily.Days, 1)
	assert.Equal(t, "2022-03-01", daily.Days[0].DateTime)
	assert.Equal(t, models.ActiveZoneMinutesValue{
		ActiveZoneMinutes:        3,
		FatBurnActiveZoneMinutes: 1,
		CardioActiveZoneMinutes:  1,
		PeakActiveZoneMinutes:    1,
	}, daily.Days[0].Value)

	other := ZoneMinutes("2022-03-01", means)
	other.Intraday[0].Minutes[0].Value = models.ActiveZoneMinutesValue{}
	assert.Equal(t, 1, record.Minutes()[0].Value.ActiveZoneMinutes)
}

func TestGenerateNightlyWindow(t *testing.T) {
	src := NewSource(9)
	for i := 0; i < 500; i++ {
		w := GenerateNightlyWindow(src)
		assert.Contains(t, nightlyStartHours, w.Hour)
		assert.GreaterOrEqual(t, w.Minute, 0)
		assert.LessOrEqual(t, w.Minute, 59)
		assert.LessOrEqual(t, w.Second, 59)
		assert.GreaterOrEqual(t, w.Duration, 360)
		assert.LessOrEqual(t, w.Duration, 540)
	}
}

func TestGenerateIntradayHRV_Bounds(t *testing.T) {
	src := NewSource(0)
	day := mustDay(t, "2022-03-01")
	window := NightlyWindow{Hour: 23, Minute: 30, Second: 15, Duration: 540}

	record := GenerateIntradayHRV(src, day, window)
	minutes := record.Minutes()
	require.Len(t, minutes, 540)
	assert.Equal(t, "2022-03-01T23:30:15.000", minutes[0].Minute)
	assert.Equal(t, "2022-03-02T00:00:15.000", minutes[30].Minute)

	for _, m := range minutes {
		v := m.Value
		assert.LessOrEqual(t, v.Lf, v.Hf)
		assert.True(t, v.Lf >= 100 || v.Lf >= 0.2*v.Hf, "lf %v hf %v", v.Lf, v.Hf)
		assert.GreaterOrEqual(t, v.Hf, 100.0)
		assert.LessOrEqual(t, v.Hf, 1000.0)
		assert.GreaterOrEqual(t, v.Coverage, 0.9)
		assert.LessOrEqual(t, v.Coverage, 0.99)
		assert.GreaterOrEqual(t, v.Rmssd, 20.0)
		assert.LessOrEqual(t, v.Rmssd, 80.0)
	}
}

func TestGenerateIntradaySpO2_Bounds(t *testing.T) {
	src := NewSource(0)
	day := mustDay(t, "2022-03-01")

	for i := 0; i < 20; i++ {
		window := GenerateNightlyWindow(src)
		record := GenerateIntradaySpO2(src, day, window)
		require.Len(t, record.Minutes, window.Duration)
		assert.Equal(t, "2022-03-01", record.DateTime)

		for j, m := range record.Minutes {
			require.GreaterOrEqual(t, m.Value, 95.0)
			require.LessOrEqual(t, m.Value, 100.0)
			if j > 0 {
				assert.InDelta(t, record.Minutes[j-1].Value, m.Value, 0.5+1e-9)
			}
		}
	}
}

func TestGenerateBreathingRate(t *testing.T) {
	record := GenerateBreathingRate(NewSource(0), "2022-03-01")
	require.Len(t, record.BR, 1)

	v := record.BR[0].Value
	want := (v.DeepSleepSummary.BreathingRate + v.RemSleepSummary.BreathingRate + v.LightSleepSummary.BreathingRate) / 3
	assert.InDelta(t, want, v.FullSleepSummary.BreathingRate, 1e-12)
}

func TestGenerateHRV(t *testing.T) {
	src := NewSource(0)
	for i := 0; i < 100; i++ {
		v := GenerateHRV(src, "2022-03-01").HRV[0].HRV[0].Value
		assert.GreaterOrEqual(t, v.DailyRmssd, 13)
		assert.Less(t, v.DailyRmssd, 48)
		assert.GreaterOrEqual(t, v.DeepRmssd, 13)
		assert.Less(t, v.DeepRmssd, 48)
	}
}

func TestGenerateDistanceDay(t *testing.T) {
	record := GenerateDistanceDay(NewSource(0), "2022-03-01")
	day := record.DistanceDay[0]
	values := day.ActivitiesDistanceIntraday.Dataset.Values
	require.Len(t, values, 1440)

	var sum float64
	moving := 0
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 0.1)
		if v > 0 {
			moving++
		}
		sum += v
	}
	assert.InDelta(t, sum, day.ActivitiesDistance[0].Value, 1e-9)
	// roughly a third of the minutes move
	assert.Greater(t, moving, 300)
	assert.Less(t, moving, 700)
}

func TestValidateDay_RejectsBrokenActivity(t *testing.T) {
	day, err := GenerateDay(NewSource(0), mustDay(t, "2022-03-01"))
	require.NoError(t, err)

	day.Activity.MinutesSedentary.Value++
	err = ValidateDay(day)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestGenerateSpan_ThreeDays(t *testing.T) {
	ds, err := GenerateSpan(context.Background(), 0, mustDay(t, "2022-03-01"), mustDay(t, "2022-03-03"))
	require.NoError(t, err)

	assert.Equal(t, []string{"2022-03-01", "2022-03-02", "2022-03-03"}, ds.Dates)
	assert.Len(t, ds.Sleep, 3)
	assert.Len(t, ds.Steps, 3)
	assert.Len(t, ds.MinutesSedentary, 3)
	require.Len(t, ds.HeartRate, 3)
	for i, hr := range ds.HeartRate {
		assert.Equal(t, 1440, hr.Series().Len())
		assert.Equal(t, ds.Dates[i], hr.DateTime())
		assert.Equal(t, 86400, ds.IntradayHeartRate[i].Series().Len())
		assert.Equal(t, ds.Dates[i], ds.Sleep[i].DateOfSleep)
		assert.Equal(t, ds.Dates[i], ds.Steps[i].DateTime)
		assert.Equal(t, 1440, len(ds.IntradayActivity[i].Minutes()))
	}
}

func TestGenerateSpan_Deterministic(t *testing.T) {
	start, end := mustDay(t, "2022-03-01"), mustDay(t, "2022-03-02")

	first, err := GenerateSpan(context.Background(), 11, start, end)
	require.NoError(t, err)
	second, err := GenerateSpan(context.Background(), 11, start, end)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.True(t, string(a) == string(b), "same seed must produce identical output")

	other, err := GenerateSpan(context.Background(), 12, start, end)
	require.NoError(t, err)
	assert.NotEqual(t, first.Steps, other.Steps)
}

func TestGenerateSpan_Errors(t *testing.T) {
	_, err := GenerateSpan(context.Background(), 0, mustDay(t, "2022-03-03"), mustDay(t, "2022-03-01"))
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = GenerateSpan(ctx, 0, mustDay(t, "2022-03-01"), mustDay(t, "2022-03-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateDay_NightlyWindowShared(t *testing.T) {
	src := NewSource(0)
	start := mustDay(t, "2022-03-01")

	for i := 0; i < 5; i++ {
		day := start.AddDate(0, 0, i)
		records, err := GenerateDay(src, day)
		require.NoError(t, err)

		hrv := records.IntradayHRV.Minutes()
		spo2 := records.IntradaySpO2.Minutes
		require.NotEmpty(t, hrv, records.Date)
		require.Len(t, spo2, len(hrv), records.Date)
		assert.Equal(t, strings.TrimSuffix(hrv[0].Minute, ".000"), spo2[0].Minute, records.Date)
		assert.Equal(t, strings.TrimSuffix(hrv[len(hrv)-1].Minute, ".000"), spo2[len(spo2)-1].Minute, records.Date)

		means := MinuteMeans(records.IntradayHeartRate.Series())
		assert.Equal(t, ZoneMinutes(records.Date, means), records.IntradayActivity, records.Date)
		assert.Equal(t, records.IntradayActivity, records.IntradayActiveZoneMinute, records.Date)
	}
}
