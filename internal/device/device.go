// Package device exposes wearables behind one contract: a device either fetches a metric
// from the vendor API with an authenticated session or serves the synthetic equivalent,
// and in both cases returns it sliced to the caller's [start, end) window.
package device

import (
	"context"
	"errors"
	"time"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/models"
)

var (
	// ErrUnknownMetric is returned for a metric the device does not support.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrUnknownDevice is returned when a registry has no device with the requested name.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrNotAuthenticated is returned when real data is requested without a session.
	ErrNotAuthenticated = errors.New("device not authenticated")
)

// Default synthetic span and query window.
const (
	DefaultSyntheticStart = "2022-03-01"
	DefaultSyntheticEnd   = "2022-06-17"
	DefaultQueryStart     = "2022-04-24"
	DefaultQueryEnd       = "2022-04-28"
)

// Params configures the synthetic span of a device.
type Params struct {
	Seed           int64
	SyntheticStart time.Time
	SyntheticEnd   time.Time
}

// DefaultParams returns seed 0 over the default synthetic span.
func DefaultParams() Params {
	start, _ := calendar.ParseDay(DefaultSyntheticStart)
	end, _ := calendar.ParseDay(DefaultSyntheticEnd)
	return Params{SyntheticStart: start, SyntheticEnd: end}
}

// Query is a [Start, End) window. A zero Query selects the device default.
type Query struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether neither bound is set.
func (q Query) IsZero() bool {
	return q.Start.IsZero() && q.End.IsZero()
}

// DefaultQuery returns the default query window.
func DefaultQuery() Query {
	start, _ := calendar.ParseDay(DefaultQueryStart)
	end, _ := calendar.ParseDay(DefaultQueryEnd)
	return Query{Start: start, End: end}
}

// Device is a wearable that serves metrics for a query window.
type Device interface {
	// Name returns the registry name of the device.
	Name() string
	// Metrics lists the supported metric names.
	Metrics() []string
	// DefaultQuery is used by Get when the query is zero.
	DefaultQuery() Query
	// Get returns metric sliced to the query window.
	Get(ctx context.Context, metric string, query Query) (any, error)
}

// Session is an authenticated vendor API session.
type Session struct {
	AccessToken string
	UserID      string
	ExpiresAt   time.Time
}

// Valid reports whether the session carries a token that has not expired at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Authenticator produces vendor sessions from credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials map[string]string) (*Session, error)
}

// RealFetcher retrieves one metric for [start, end) from the vendor API.
type RealFetcher interface {
	Fetch(ctx context.Context, session *Session, metric string, start, end time.Time) (any, error)
}

// SpanGenerator builds the synthetic dataset of an inclusive day span.
type SpanGenerator interface {
	Generate(ctx context.Context, device string, seed int64, start, end time.Time) (*models.SyntheticDataset, error)
}
