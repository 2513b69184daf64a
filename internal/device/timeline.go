package device

import (
	"time"

	"github.com/irfndi/wearsynth/internal/models"
	"github.com/irfndi/wearsynth/internal/slicer"
)

// HeartRateTimeline returns the per-second heart rate samples with timestamps in
// [start, end). Only the days the window touches are expanded.
func HeartRateTimeline(span slicer.Span, ds *models.SyntheticDataset, start, end time.Time) ([]models.HeartRateSample, error) {
	from, to, err := span.Offsets(start, end)
	if err != nil {
		return nil, err
	}
	last := min(to, len(ds.IntradayHeartRate)-1)

	var samples []models.HeartRateSample
	for i := from; i <= last; i++ {
		series := ds.IntradayHeartRate[i].Series()
		midnight := span.Start.AddDate(0, 0, i)
		if samples == nil {
			samples = make([]models.HeartRateSample, 0, series.Len()*(last-from+1))
		}
		for j, v := range series.Values {
			samples = append(samples, models.HeartRateSample{Time: midnight.Add(series.Offset(j)), Value: v})
		}
	}

	window := slicer.ByTimestamp(samples, func(s models.HeartRateSample) time.Time { return s.Time }, start, end)
	if window == nil {
		window = []models.HeartRateSample{}
	}
	return window, nil
}
