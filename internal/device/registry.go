package device

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/config"
)

// Registry holds the devices served by the API, by name.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]Device
	logger  *logrus.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{
		devices: make(map[string]Device),
		logger:  logger,
	}
}

// NewRegistryFromConfig registers every device named in cfg.Synthetic.Devices, all sharing
// the configured seed, span and default query.
func NewRegistryFromConfig(cfg *config.Config, generator SpanGenerator, logger *logrus.Logger) (*Registry, error) {
	params, query, err := ParamsFromConfig(cfg.Synthetic)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(logger)
	for _, name := range cfg.Synthetic.Devices {
		d, err := New(name, params, generator, logger)
		if err != nil {
			return nil, err
		}
		d.SetDefaultQuery(query)
		registry.Register(d)
	}
	return registry, nil
}

// ParamsFromConfig parses the synthetic span and default query of cfg.
func ParamsFromConfig(cfg config.SyntheticConfig) (Params, Query, error) {
	var (
		params Params
		query  Query
		err    error
	)
	params.Seed = cfg.Seed
	if params.SyntheticStart, err = calendar.ParseDay(cfg.StartDate); err != nil {
		return Params{}, Query{}, err
	}
	if params.SyntheticEnd, err = calendar.ParseDay(cfg.EndDate); err != nil {
		return Params{}, Query{}, err
	}
	if query.Start, err = calendar.ParseDateTime(cfg.DefaultStart); err != nil {
		return Params{}, Query{}, err
	}
	if query.End, err = calendar.ParseDateTime(cfg.DefaultEnd); err != nil {
		return Params{}, Query{}, err
	}
	return params, query, nil
}

// New creates the device registered under name.
func New(name string, params Params, generator SpanGenerator, logger *logrus.Logger) (*FitbitCharge4, error) {
	switch name {
	case NameFitbitCharge4, NameFitbitSense:
		return NewFitbitCharge4(name, params, generator, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
}

// Register adds or replaces a device.
func (r *Registry) Register(d Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[d.Name()] = d
	r.logger.WithField("device", d.Name()).Info("Registered device")
}

// Get returns the device registered under name.
func (r *Registry) Get(name string) (Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
	return d, nil
}

// Names returns the registered device names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
