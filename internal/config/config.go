package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // часовые пояса без системной tzdata

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	Notifications NotificationsConfig `toml:"notifications"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логгера; пустой File - вывод в stdout
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig правила расчета доступности и отмены
type SchedulingConfig struct {
	CapacityMode             string `toml:"capacity_mode"` // "sum" или "largest"
	Timezone                 string `toml:"timezone"`
	DefaultCancellationHours int    `toml:"default_cancellation_hours"`

	capacityMode availability.CapacityMode
	location     *time.Location
}

// Mode режим подсчета занятости после Load
func (s SchedulingConfig) Mode() availability.CapacityMode {
	return s.capacityMode
}

// Location часовой пояс бизнеса после Load
func (s SchedulingConfig) Location() *time.Location {
	return s.location
}

// NotificationsConfig настройки Kafka; пустой список брокеров отключает отправку событий
type NotificationsConfig struct {
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"` // секунды
	MaxAttempts  int      `toml:"max_attempts"`
}

// Enabled true, если указан хотя бы один брокер
func (n NotificationsConfig) Enabled() bool {
	return len(n.Brokers) > 0
}

// RateLimitConfig ограничение частоты изменений бронирований через Redis
type RateLimitConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Limit    int    `toml:"limit"`
	Window   int    `toml:"window"` // секунды
	FailOpen bool   `toml:"fail_open"`
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) finalize() error {
	c.applyDefaults()

	mode, ok := availability.ParseCapacityMode(strings.ToLower(c.Scheduling.CapacityMode))
	if !ok {
		return fmt.Errorf("invalid scheduling.capacity_mode %q: expected \"sum\" or \"largest\"", c.Scheduling.CapacityMode)
	}
	c.Scheduling.capacityMode = mode

	loc, err := time.LoadLocation(c.Scheduling.Timezone)
	if err != nil {
		return fmt.Errorf("invalid scheduling.timezone %q: %w", c.Scheduling.Timezone, err)
	}
	c.Scheduling.location = loc

	if c.Notifications.Enabled() && c.Notifications.Topic == "" {
		return errors.New("notifications.topic is required when brokers are set")
	}

	if c.RateLimit.Enabled && c.RateLimit.Addr == "" {
		return errors.New("rate_limit.addr is required when rate limiting is enabled")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "scheduling_service"
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}
	if c.Scheduling.DefaultCancellationHours == 0 {
		c.Scheduling.DefaultCancellationHours = domain.DefaultCancellationHours
	}

	if c.Notifications.WriteTimeout == 0 {
		c.Notifications.WriteTimeout = 5
	}
	if c.Notifications.MaxAttempts == 0 {
		c.Notifications.MaxAttempts = 3
	}

	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 30
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = 60
	}
}
