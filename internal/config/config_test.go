package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(``)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, availability.CapacitySum, cfg.Scheduling.Mode())
	assert.Equal(t, "UTC", cfg.Scheduling.Location().String())
	assert.Equal(t, 24, cfg.Scheduling.DefaultCancellationHours)
	assert.False(t, cfg.Notifications.Enabled())
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestParse_FullFile(t *testing.T) {
	cfg, err := Parse(`
[server]
http_port = 9090

[database]
host = "db"
port = 6432
user = "scheduler"
password = "secret"
dbname = "scheduling"

[scheduling]
capacity_mode = "Largest"
timezone = "Europe/Moscow"
default_cancellation_hours = 12

[notifications]
brokers = ["kafka-1:9092", "kafka-2:9092"]
topic = "booking-events"

[rate_limit]
enabled = true
addr = "redis:6379"
limit = 5
fail_open = true
`)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=6432 user=scheduler password=secret dbname=scheduling sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, availability.CapacityLargest, cfg.Scheduling.Mode())
	assert.Equal(t, "Europe/Moscow", cfg.Scheduling.Location().String())
	assert.Equal(t, 12, cfg.Scheduling.DefaultCancellationHours)
	assert.True(t, cfg.Notifications.Enabled())
	assert.Equal(t, 5, cfg.Notifications.WriteTimeout)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.Equal(t, 60, cfg.RateLimit.Window)
	assert.True(t, cfg.RateLimit.FailOpen)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"capacity mode": "[scheduling]\ncapacity_mode = \"average\"",
		"timezone":      "[scheduling]\ntimezone = \"Mars/Olympus\"",
		"topic":         "[notifications]\nbrokers = [\"kafka:9092\"]",
		"redis addr":    "[rate_limit]\nenabled = true",
		"syntax":        "[server\nhttp_port = 1",
	}
	for name, data := range cases {
		_, err := Parse(data)
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logs]\nlevel = \"debug\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logs.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
