package synth

import (
	"math"
	"time"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/models"
)

const (
	minSleepSeconds = 14400
	maxSleepSeconds = 36000

	// sleep starts at a random second in [21:00, 23:58)
	sleepWindowOpen    = 21 * time.Hour
	sleepWindowSeconds = 2*3600 + 58*60

	baseSleepEfficiency = 90
	maxSleepEfficiency  = 99
)

var sleepStages = []string{models.SleepLevelDeep, models.SleepLevelRem, models.SleepLevelLight}

// GenerateSleep builds the main sleep log starting on the evening of day.
//
// Minutes in bed are the whole minutes of the drawn duration. Awake, after-wakeup and
// to-fall-asleep minutes are percentages of that; the rest is asleep and is partitioned into
// deep/rem/light segments with SplitDuration. levels.data is a chronological partition of
// [startTime, endTime): a leading wake segment (falling asleep), stage segments separated by
// short wake interruptions that carry the awake minutes, and a trailing wake segment (after
// wakeup) that also absorbs the sub-minute remainder of the duration. The per-level summary
// minutes therefore always add up to timeInBed.
func GenerateSleep(src *Source, day time.Time) models.SleepRecord {
	duration := src.IntRange(minSleepSeconds, maxSleepSeconds)
	awakePct := float64(src.IntRange(2, 9))
	afterWakePct := float64(src.IntRange(0, 200)) / 100
	toFallPct := float64(src.IntRange(0, 200)) / 100

	timeInBed := duration / 60
	minutesAwake := percentOf(timeInBed, awakePct)
	minutesAfterWakeup := percentOf(timeInBed, afterWakePct)
	minutesToFallAsleep := percentOf(timeInBed, toFallPct)
	minutesAsleep := timeInBed - minutesAwake - minutesAfterWakeup - minutesToFallAsleep

	start := day.Add(sleepWindowOpen).Add(time.Duration(src.IntN(sleepWindowSeconds)) * time.Second)
	end := start.Add(time.Duration(duration) * time.Second)

	record := models.SleepRecord{
		DateOfSleep:         calendar.FormatDay(day),
		Duration:            int64(duration) * 1000,
		Efficiency:          src.IntRange(baseSleepEfficiency, maxSleepEfficiency),
		EndTime:             end.Format(calendar.TimestampLayout),
		InfoCode:            0,
		IsMainSleep:         true,
		LogID:               int64(src.IntN(1_000_000_000)),
		LogType:             "auto_detected",
		MinutesAfterWakeup:  minutesAfterWakeup,
		MinutesAsleep:       minutesAsleep,
		MinutesAwake:        minutesAwake,
		MinutesToFallAsleep: minutesToFallAsleep,
		StartTime:           start.Format(calendar.TimestampLayout),
		TimeInBed:           timeInBed,
		Type:                "stages",
	}

	segments := SplitDuration(src, minutesAsleep)
	labels := make([]string, len(segments))
	for i := range segments {
		labels[i] = Choice(src, sleepStages)
	}

	b := newLevelBuilder(start)
	leadingWake := minutesToFallAsleep
	if len(segments) == 0 {
		// too short to partition: count it as time awake in bed
		leadingWake += minutesAsleep
	}
	interruptions := spreadWake(minutesAwake, len(segments)-1)
	if len(segments) <= 1 {
		leadingWake += minutesAwake
	}

	b.wake(leadingWake*60, leadingWake, false)
	for i, minutes := range segments {
		if i > 0 {
			b.wake(interruptions[i-1]*60, interruptions[i-1], true)
		}
		b.stage(labels[i], minutes)
	}
	b.wake(minutesAfterWakeup*60+duration%60, minutesAfterWakeup, false)

	record.Levels = b.levels
	return record
}

// SplitDuration partitions total into consecutive positive parts by repeated random
// splitting. Each part is drawn from [1, round(total/12)), capped by what remains, and a
// final remainder of 1 is folded into the last part, so the parts always sum to total.
// A total of 0 or 1 yields no parts.
func SplitDuration(src *Source, total int) []int {
	if total <= 1 {
		return nil
	}

	maxPart := int(math.Round(float64(total) / 12))
	if maxPart < 2 {
		maxPart = 2
	}

	var parts []int
	remaining := total
	for remaining > 1 {
		n := src.IntRange(1, maxPart)
		if n > remaining {
			n = remaining
		}
		parts = append(parts, n)
		remaining -= n
	}
	if remaining == 1 {
		parts[len(parts)-1]++
	}
	return parts
}

// spreadWake distributes minutes over gaps interruptions as evenly as possible. Only the
// first min(gaps, minutes) gaps receive wake time.
func spreadWake(minutes, gaps int) []int {
	if gaps <= 0 {
		return nil
	}
	out := make([]int, gaps)
	if minutes <= 0 {
		return out
	}

	used := min(gaps, minutes)
	for j := 0; j < used; j++ {
		// spread the interruptions across the night instead of bunching them at the start
		gap := j * gaps / used
		out[gap] = minutes / used
		if j < minutes%used {
			out[gap]++
		}
	}
	return out
}

func percentOf(total int, pct float64) int {
	return int(math.Round(float64(total) * pct / 100))
}

type levelBuilder struct {
	cursor time.Time
	levels models.SleepLevels
}

func newLevelBuilder(start time.Time) *levelBuilder {
	return &levelBuilder{
		cursor: start,
		levels: models.SleepLevels{
			Data:      []models.SleepLevelEntry{},
			ShortData: []models.SleepLevelEntry{},
		},
	}
}

func (b *levelBuilder) wake(seconds, minutes int, short bool) {
	b.levels.Summary.Wake.Minutes += minutes
	entry, ok := b.emit(models.SleepLevelWake, seconds)
	if !ok {
		return
	}
	b.levels.Summary.Wake.Count++
	if short {
		b.levels.ShortData = append(b.levels.ShortData, entry)
	}
}

func (b *levelBuilder) stage(level string, minutes int) {
	if _, ok := b.emit(level, minutes*60); !ok {
		return
	}
	summary := b.levels.Summary.Stage(level)
	summary.Count++
	summary.Minutes += minutes
}

func (b *levelBuilder) emit(level string, seconds int) (models.SleepLevelEntry, bool) {
	if seconds <= 0 {
		return models.SleepLevelEntry{}, false
	}
	entry := models.SleepLevelEntry{
		DateTime: b.cursor.Format(calendar.TimestampLayout),
		Level:    level,
		Seconds:  seconds,
	}
	b.levels.Data = append(b.levels.Data, entry)
	b.cursor = b.cursor.Add(time.Duration(seconds) * time.Second)
	return entry, true
}
