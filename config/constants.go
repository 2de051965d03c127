package config

import "time"

// Backend Constants
const (
	// DefaultBackendBase is used when no backend base URL is configured
	DefaultBackendBase = "http://localhost:8000"

	// ProcessPath is the backend and gateway route that runs the pipeline
	ProcessPath = "/api/process"

	// ProxyErrorMessage is reported when a gateway failure carries no description
	ProxyErrorMessage = "Proxy error"
)

// Server Constants
const (
	// DefaultPort is the gateway listen port
	DefaultPort = "8080"

	// DefaultGatewayURL is where clients reach the gateway
	DefaultGatewayURL = "http://localhost:8080"

	// ShutdownTimeout bounds graceful shutdown of the gateway
	ShutdownTimeout = 10 * time.Second
)

// Health Probe Constants
const (
	// DefaultProbeSchedule is the cron spec for backend reachability checks
	DefaultProbeSchedule = "@every 30s"

	// ProbeTimeout bounds a single reachability check
	ProbeTimeout = 5 * time.Second
)

// Observer Constants
const (
	// DefaultKafkaTopic receives one event per proxied call
	DefaultKafkaTopic = "presskit-runs"

	// DefaultKafkaGroupID is the consumer group of the event tail
	DefaultKafkaGroupID = "presskit-events-tail"

	// DefaultStatsKey is the Redis hash holding gateway outcome counters
	DefaultStatsKey = "presskit:gateway:outcomes"

	// ObserverTimeout bounds a single Redis or Kafka write
	ObserverTimeout = 2 * time.Second
)
