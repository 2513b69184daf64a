package device

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/irfndi/wearsynth/internal/models"
	"github.com/irfndi/wearsynth/internal/slicer"
)

// Device names served by FitbitCharge4.
const (
	NameFitbitCharge4 = "fitbit_charge_4"
	NameFitbitSense   = "fitbit_sense"
)

// FitbitCharge4 is a Fitbit tracker. In synthetic mode the whole span is generated on the
// first Get and kept for the lifetime of the device; every later Get only slices it.
type FitbitCharge4 struct {
	name         string
	params       Params
	span         slicer.Span
	defaultQuery Query
	generator    SpanGenerator
	logger       *logrus.Logger
	now          func() time.Time

	mu        sync.Mutex
	dataset   *models.SyntheticDataset
	synthetic bool
	fetcher   RealFetcher
	session   *Session
}

// NewFitbitCharge4 creates a synthetic device named name.
func NewFitbitCharge4(name string, params Params, generator SpanGenerator, logger *logrus.Logger) (*FitbitCharge4, error) {
	span, err := slicer.NewSpan(params.SyntheticStart, params.SyntheticEnd)
	if err != nil {
		return nil, err
	}
	if generator == nil {
		return nil, fmt.Errorf("device %s: generator is required", name)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FitbitCharge4{
		name:         name,
		params:       params,
		span:         span,
		defaultQuery: DefaultQuery(),
		generator:    generator,
		logger:       logger,
		now:          time.Now,
		synthetic:    true,
	}, nil
}

// Name returns the device name.
func (d *FitbitCharge4) Name() string {
	return d.name
}

// Metrics lists the daily metrics followed by heart_rate_timeline.
func (d *FitbitCharge4) Metrics() []string {
	return append(slices.Clone(models.DailyMetrics), models.MetricHeartRateTimeline)
}

// Supports reports whether metric is served by the device.
func (d *FitbitCharge4) Supports(metric string) bool {
	return metric == models.MetricHeartRateTimeline || slices.Contains(models.DailyMetrics, metric)
}

// DefaultQuery returns the window used for zero queries.
func (d *FitbitCharge4) DefaultQuery() Query {
	return d.defaultQuery
}

// SetDefaultQuery overrides the window used for zero queries.
func (d *FitbitCharge4) SetDefaultQuery(q Query) {
	d.defaultQuery = q
}

// Span returns the synthetic span.
func (d *FitbitCharge4) Span() slicer.Span {
	return d.span
}

// Params returns the synthetic parameters.
func (d *FitbitCharge4) Params() Params {
	return d.params
}

// UseRealData switches the device to the vendor API path.
func (d *FitbitCharge4) UseRealData(fetcher RealFetcher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fetcher = fetcher
	d.synthetic = false
}

// UseSyntheticData switches the device back to the synthetic path.
func (d *FitbitCharge4) UseSyntheticData() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.synthetic = true
}

// Authenticate obtains a vendor session through auth.
func (d *FitbitCharge4) Authenticate(ctx context.Context, auth Authenticator, credentials map[string]string) error {
	session, err := auth.Authenticate(ctx, credentials)
	if err != nil {
		return fmt.Errorf("device %s: authentication failed: %w", d.name, err)
	}
	if !session.Valid(d.now()) {
		return fmt.Errorf("device %s: %w: authenticator returned an unusable session", d.name, ErrNotAuthenticated)
	}

	d.mu.Lock()
	d.session = session
	d.mu.Unlock()
	d.logger.WithFields(logrus.Fields{"device": d.name, "user_id": session.UserID}).Info("Device authenticated")
	return nil
}

// Get returns metric sliced to query, or to the default query when query is zero.
func (d *FitbitCharge4) Get(ctx context.Context, metric string, query Query) (any, error) {
	if !d.Supports(metric) {
		return nil, fmt.Errorf("%w: %q is not served by %s", ErrUnknownMetric, metric, d.name)
	}
	if query.IsZero() {
		query = d.defaultQuery
	}

	d.mu.Lock()
	synthetic, fetcher, session := d.synthetic, d.fetcher, d.session
	d.mu.Unlock()

	if !synthetic {
		if !session.Valid(d.now()) {
			return nil, fmt.Errorf("device %s: %w", d.name, ErrNotAuthenticated)
		}
		if fetcher == nil {
			return nil, fmt.Errorf("device %s: no vendor fetcher configured", d.name)
		}
		return fetcher.Fetch(ctx, session, metric, query.Start, query.End)
	}

	dataset, err := d.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return Slice(d.span, dataset, metric, query)
}

// Dataset returns the synthetic dataset, generating it on first use. Concurrent callers
// wait for the single generation run.
func (d *FitbitCharge4) Dataset(ctx context.Context) (*models.SyntheticDataset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dataset != nil {
		return d.dataset, nil
	}
	dataset, err := d.generator.Generate(ctx, d.name, d.params.Seed, d.span.Start, d.span.End)
	if err != nil {
		return nil, err
	}
	d.dataset = dataset
	return dataset, nil
}

// Slice cuts metric out of dataset for the query window.
func Slice(span slicer.Span, ds *models.SyntheticDataset, metric string, q Query) (any, error) {
	switch metric {
	case models.MetricSleep:
		return slicer.Daily(span, ds.Sleep, q.Start, q.End)
	case models.MetricSteps:
		return slicer.Daily(span, ds.Steps, q.Start, q.End)
	case models.MetricMinutesVeryActive:
		return slicer.Daily(span, ds.MinutesVeryActive, q.Start, q.End)
	case models.MetricMinutesFairlyActive:
		return slicer.Daily(span, ds.MinutesFairlyActive, q.Start, q.End)
	case models.MetricMinutesLightlyActive:
		return slicer.Daily(span, ds.MinutesLightlyActive, q.Start, q.End)
	case models.MetricDistance:
		return slicer.Daily(span, ds.Distance, q.Start, q.End)
	case models.MetricMinutesSedentary:
		return slicer.Daily(span, ds.MinutesSedentary, q.Start, q.End)
	case models.MetricHeartRate:
		return slicer.Daily(span, ds.HeartRate, q.Start, q.End)
	case models.MetricIntradayHeartRate:
		return slicer.Daily(span, ds.IntradayHeartRate, q.Start, q.End)
	case models.MetricHRV:
		return slicer.Daily(span, ds.HRV, q.Start, q.End)
	case models.MetricIntradayHRV:
		return slicer.Daily(span, ds.IntradayHRV, q.Start, q.End)
	case models.MetricIntradaySpO2:
		return slicer.Daily(span, ds.IntradaySpO2, q.Start, q.End)
	case models.MetricIntradayBreathRate:
		return slicer.Daily(span, ds.IntradayBreathRate, q.Start, q.End)
	case models.MetricIntradayActivity:
		return slicer.Daily(span, ds.IntradayActivity, q.Start, q.End)
	case models.MetricIntradayActiveZoneMinute:
		return slicer.Daily(span, ds.IntradayActiveZoneMinute, q.Start, q.End)
	case models.MetricActiveZoneMinute:
		return slicer.Daily(span, ds.ActiveZoneMinute, q.Start, q.End)
	case models.MetricDistanceDay:
		return slicer.Daily(span, ds.DistanceDay, q.Start, q.End)
	case models.MetricHeartRateTimeline:
		return HeartRateTimeline(span, ds, q.Start, q.End)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
}
