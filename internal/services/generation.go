package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/logging"
	"github.com/irfndi/wearsynth/internal/models"
	"github.com/irfndi/wearsynth/internal/synth"
	"github.com/irfndi/wearsynth/internal/telemetry"
)

// SpanFunc generates the dataset of an inclusive day span from a seed.
type SpanFunc func(ctx context.Context, seed int64, start, end time.Time) (*models.SyntheticDataset, error)

// GenerationStats counts generation runs.
type GenerationStats struct {
	Runs          int64         `json:"runs"`
	Failures      int64         `json:"failures"`
	DaysGenerated int64         `json:"days_generated"`
	LastRun       time.Time     `json:"last_run"`
	LastDuration  time.Duration `json:"last_duration"`
}

// GenerationService runs the daily aggregator for devices. Each run is traced, logged and
// followed by a resource snapshot.
type GenerationService struct {
	logger   *logrus.Logger
	runLog   logging.Logger
	generate SpanFunc

	mu    sync.Mutex
	stats GenerationStats
}

// NewGenerationService creates a generation service backed by synth.GenerateSpan. runLog may
// be nil, in which case run summaries only go to logger.
func NewGenerationService(logger *logrus.Logger, runLog logging.Logger) *GenerationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &GenerationService{
		logger:   logger,
		runLog:   runLog,
		generate: synth.GenerateSpan,
	}
}

// Generate builds the dataset of [start, end] for device.
func (s *GenerationService) Generate(ctx context.Context, device string, seed int64, start, end time.Time) (*models.SyntheticDataset, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetGenerationTracer(), "generation.GenerateSpan",
		telemetry.StringAttribute("device", device),
		telemetry.Int64Attribute("synthetic.seed", seed),
		telemetry.StringAttribute("synthetic.start_date", calendar.FormatDay(start)),
		telemetry.StringAttribute("synthetic.end_date", calendar.FormatDay(end)),
	)
	defer span.End()

	began := time.Now()
	dataset, err := s.generate(ctx, seed, start, end)
	elapsed := time.Since(began)

	s.mu.Lock()
	s.stats.Runs++
	s.stats.LastRun = began
	s.stats.LastDuration = elapsed
	if err != nil {
		s.stats.Failures++
	} else {
		s.stats.DaysGenerated += int64(dataset.Len())
	}
	s.mu.Unlock()

	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.WithError(err).WithFields(logrus.Fields{
			"device": device,
			"seed":   seed,
		}).Error("Synthetic generation failed")
		return nil, fmt.Errorf("failed to generate synthetic data for %s: %w", device, err)
	}

	days := dataset.Len()
	telemetry.SetSpanAttributes(span,
		telemetry.Int64Attribute("synthetic.days", int64(days)),
		telemetry.Int64Attribute("synthetic.duration_ms", elapsed.Milliseconds()),
	)
	telemetry.SetSpanStatus(span, codes.Ok, "")

	s.logger.WithFields(logrus.Fields{
		"device":      device,
		"seed":        seed,
		"days":        days,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("Generated synthetic dataset")

	if s.runLog != nil {
		s.runLog.LogGenerationRun(device, seed, days, elapsed.Milliseconds())
		s.runLog.LogResourceStats("generation", SnapshotResources().Fields())
	}
	return dataset, nil
}

// GetStats returns the run counters.
func (s *GenerationService) GetStats() GenerationStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
