package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/utils"
)

// Cache backends accepted in cache.backend.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Synthetic   SyntheticConfig `mapstructure:"synthetic"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SyntheticConfig controls the generated span and the default query window.
type SyntheticConfig struct {
	Seed         int64    `mapstructure:"seed"`
	StartDate    string   `mapstructure:"start_date"`
	EndDate      string   `mapstructure:"end_date"`
	DefaultStart string   `mapstructure:"default_start"`
	DefaultEnd   string   `mapstructure:"default_end"`
	Devices      []string `mapstructure:"devices"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheConfig struct {
	Backend string `mapstructure:"backend"`
	TTL     string `mapstructure:"ttl"`
}

// TTLDuration returns the parsed cache TTL. Load has already validated it.
func (c CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Exporter       string `mapstructure:"exporter"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)
	config.Cache.Backend = strings.ToLower(config.Cache.Backend)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the synthetic span, default query window and cache settings.
func (c *Config) Validate() error {
	start, err := calendar.ParseDay(c.Synthetic.StartDate)
	if err != nil {
		return fmt.Errorf("invalid synthetic.start_date: %w", err)
	}
	end, err := calendar.ParseDay(c.Synthetic.EndDate)
	if err != nil {
		return fmt.Errorf("invalid synthetic.end_date: %w", err)
	}
	if end.Before(start) {
		return utils.NewValidationErrorf("synthetic.end_date %s is before synthetic.start_date %s", c.Synthetic.EndDate, c.Synthetic.StartDate)
	}

	defaultStart, err := calendar.ParseDay(c.Synthetic.DefaultStart)
	if err != nil {
		return fmt.Errorf("invalid synthetic.default_start: %w", err)
	}
	defaultEnd, err := calendar.ParseDay(c.Synthetic.DefaultEnd)
	if err != nil {
		return fmt.Errorf("invalid synthetic.default_end: %w", err)
	}
	if defaultEnd.Before(defaultStart) {
		return utils.NewValidationErrorf("synthetic.default_end %s is before synthetic.default_start %s", c.Synthetic.DefaultEnd, c.Synthetic.DefaultStart)
	}

	if len(c.Synthetic.Devices) == 0 {
		return utils.NewValidationError("synthetic.devices must name at least one device")
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return utils.NewValidationErrorf("unknown cache.backend %q (want %s or %s)", c.Cache.Backend, CacheBackendMemory, CacheBackendRedis)
	}
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache.ttl: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return utils.NewValidationErrorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Synthetic span
	viper.SetDefault("synthetic.seed", 0)
	viper.SetDefault("synthetic.start_date", "2022-03-01")
	viper.SetDefault("synthetic.end_date", "2022-06-17")
	viper.SetDefault("synthetic.default_start", "2022-04-24")
	viper.SetDefault("synthetic.default_end", "2022-04-28")
	viper.SetDefault("synthetic.devices", []string{"fitbit_charge_4", "fitbit_sense"})

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Response cache
	viper.SetDefault("cache.backend", CacheBackendMemory)
	viper.SetDefault("cache.ttl", "10m")

	// Telemetry
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.exporter", "stdout")
	viper.SetDefault("telemetry.otlp_endpoint", "http://localhost:4318")
	viper.SetDefault("telemetry.service_name", "wearsynth")
	viper.SetDefault("telemetry.service_version", "1.0.0")
}
