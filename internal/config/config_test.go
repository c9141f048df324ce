package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Empty values fall through to the defaults, so this also shields the
	// assertions from whatever the host environment carries.
	for _, key := range []string{
		"MYSQL_HOST", "MYSQL_PORT", "MYSQL_MAX_OPEN_CONNS",
		"EVENT_STREAM", "EVENT_GROUP",
		"WORKER_BATCH_SIZE", "OPS_PORT", "WEB_BASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "events:notifications", cfg.Redis.Stream)
	assert.Equal(t, "notifs-worker", cfg.Redis.Group)
	assert.NotEmpty(t, cfg.Redis.Consumer)
	assert.Equal(t, 32, cfg.Worker.BatchSize)
	assert.Equal(t, "8090", cfg.Worker.OpsPort)
	assert.Equal(t, "https://app.pulsefeed.dev", cfg.Web.BaseURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("WORKER_BATCH_SIZE", "128")
	t.Setenv("EVENT_CONSUMER", "worker-7")

	cfg := LoadConfig()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "3307", cfg.Database.Port)
	assert.Equal(t, 128, cfg.Worker.BatchSize)
	assert.Equal(t, "worker-7", cfg.Redis.Consumer)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:         "db.internal",
			Port:         "3307",
			Username:     "notifs",
			Password:     "secret",
			DatabaseName: "pulsefeed",
		},
	}

	want := "notifs:secret@tcp(db.internal:3307)/pulsefeed?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, want, cfg.DSN())
}

func TestDSN_EmptyHostFallsBack(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Username:     "notifs",
			Password:     "secret",
			DatabaseName: "pulsefeed",
		},
	}

	assert.Contains(t, cfg.DSN(), "@tcp(localhost:3306)/pulsefeed")
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("WORKER_BLOCK_SECONDS", "9")
	assert.Equal(t, 9, getEnvAsInt("WORKER_BLOCK_SECONDS", 5))

	t.Setenv("WORKER_BLOCK_SECONDS", "not-a-number")
	assert.Equal(t, 5, getEnvAsInt("WORKER_BLOCK_SECONDS", 5))

	assert.Equal(t, 5, getEnvAsInt("WORKER_BLOCK_SECONDS_MISSING", 5))
}
