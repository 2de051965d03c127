package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "BACKEND_BASE", "BACKEND_TIMEOUT", "GATEWAY_URL", "HEALTH_PROBE_SCHEDULE",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_STATS_KEY", "KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_GROUP_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestNormalizeBase(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty falls back to default", "", "http://localhost:8000"},
		{"no trailing slash", "http://backend:9000", "http://backend:9000"},
		{"single trailing slash", "http://backend:9000/", "http://backend:9000"},
		{"only one slash is removed", "http://backend:9000//", "http://backend:9000/"},
		{"path kept", "https://example.com/svc/", "https://example.com/svc"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NormalizeBase(c.in))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendBase, cfg.BackendBase)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultGatewayURL, cfg.GatewayURL)
	assert.Equal(t, DefaultProbeSchedule, cfg.ProbeSchedule)
	assert.Equal(t, DefaultStatsKey, cfg.Redis.Key)
	assert.Equal(t, DefaultKafkaTopic, cfg.Kafka.Topic)
	assert.Equal(t, DefaultKafkaGroupID, cfg.Kafka.GroupID)
	assert.Zero(t, cfg.BackendTimeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "presskit.yaml")
	data := []byte(`
port: "9090"
backend_base: http://file-backend:8000/
backend_timeout: 90s
redis:
  addr: redis:6379
kafka:
  brokers: [kafka:9092]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("BACKEND_BASE", "http://env-backend:7000/")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://env-backend:7000", cfg.BackendBase)
	assert.Equal(t, 90*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("BACKEND_TIMEOUT", "soon")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("BACKEND_TIMEOUT", "")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
