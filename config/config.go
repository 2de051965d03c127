package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RedisConfig configures the optional outcome counter store.
// An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// KafkaConfig configures the optional run event publisher and the event
// tail. No brokers means no publisher.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

// Config holds everything both binaries need. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	Port           string        `yaml:"port"`
	BackendBase    string        `yaml:"backend_base"`
	BackendTimeout time.Duration `yaml:"backend_timeout"`
	GatewayURL     string        `yaml:"gateway_url"`
	ProbeSchedule  string        `yaml:"probe_schedule"`
	Redis          RedisConfig   `yaml:"redis"`
	Kafka          KafkaConfig   `yaml:"kafka"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:          DefaultPort,
		BackendBase:   DefaultBackendBase,
		GatewayURL:    DefaultGatewayURL,
		ProbeSchedule: DefaultProbeSchedule,
		Redis:         RedisConfig{Key: DefaultStatsKey},
		Kafka:         KafkaConfig{Topic: DefaultKafkaTopic, GroupID: DefaultKafkaGroupID},
	}
}

// Load builds a Config from defaults, an optional YAML file at path, and
// environment variables, in that order of precedence (env wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.BackendBase = NormalizeBase(cfg.BackendBase)
	cfg.GatewayURL = strings.TrimRight(cfg.GatewayURL, "/")
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = DefaultGatewayURL
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.Redis.Key == "" {
		cfg.Redis.Key = DefaultStatsKey
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	return cfg, nil
}

// NormalizeBase applies the backend base URL rules: an empty value falls
// back to DefaultBackendBase and a single trailing slash is dropped.
func NormalizeBase(raw string) string {
	if raw == "" {
		return DefaultBackendBase
	}
	return strings.TrimSuffix(raw, "/")
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.BackendBase = getEnvOrDefault("BACKEND_BASE", cfg.BackendBase)
	cfg.GatewayURL = getEnvOrDefault("GATEWAY_URL", cfg.GatewayURL)
	cfg.ProbeSchedule = getEnvOrDefault("HEALTH_PROBE_SCHEDULE", cfg.ProbeSchedule)

	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BACKEND_TIMEOUT %q: %w", v, err)
		}
		cfg.BackendTimeout = d
	}

	cfg.Redis.Addr = getEnvOrDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.Key = getEnvOrDefault("REDIS_STATS_KEY", cfg.Redis.Key)
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = db
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.Topic = getEnvOrDefault("KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Kafka.GroupID = getEnvOrDefault("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
