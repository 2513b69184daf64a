package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// IntradaySeries is a fixed-interval series starting at midnight. Only the values are held
// in memory; the "time" labels of the vendor dataset are produced when marshaling.
type IntradaySeries struct {
	Interval time.Duration
	Values   []float64
}

// Len returns the number of samples.
func (s IntradaySeries) Len() int {
	return len(s.Values)
}

// Offset returns the time since midnight of sample i.
func (s IntradaySeries) Offset(i int) time.Duration {
	return time.Duration(i) * s.Interval
}

// Clock returns the HH:MM:SS label of sample i.
func (s IntradaySeries) Clock(i int) string {
	off := s.Offset(i)
	h := int(off / time.Hour)
	m := int(off % time.Hour / time.Minute)
	sec := int(off % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// Last returns the final sample, or zero for an empty series.
func (s IntradaySeries) Last() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// MarshalJSON renders the series as [{"time":"HH:MM:SS","value":v}, ...].
func (s IntradaySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(s.Values) * 32)
	buf.WriteByte('[')
	scratch := make([]byte, 0, 32)
	for i, v := range s.Values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"time":"`)
		buf.WriteString(s.Clock(i))
		buf.WriteString(`","value":`)
		scratch = strconv.AppendFloat(scratch[:0], v, 'f', -1, 64)
		buf.Write(scratch)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// IntradayDataset is the vendor "activities-*-intraday" block.
type IntradayDataset struct {
	Dataset         IntradaySeries `json:"dataset"`
	DatasetInterval int            `json:"datasetInterval"`
	DatasetType     string         `json:"datasetType"`
}

// Dataset types reported in IntradayDataset.DatasetType.
const (
	DatasetTypeMinute = "minute"
	DatasetTypeSecond = "second"
)

// NewIntradayDataset wraps values sampled every interval.
func NewIntradayDataset(interval time.Duration, values []float64) IntradayDataset {
	datasetType := DatasetTypeMinute
	if interval < time.Minute {
		datasetType = DatasetTypeSecond
	}
	return IntradayDataset{
		Dataset:         IntradaySeries{Interval: interval, Values: values},
		DatasetInterval: 1,
		DatasetType:     datasetType,
	}
}
