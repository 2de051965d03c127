// Package stats keeps gateway outcome counters in a Redis hash.
package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"presskit/config"
	"presskit/gateway"
	"presskit/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter fields in the outcomes hash.
const (
	FieldTotal          = "total"
	FieldBackendOK      = "backend_ok"
	FieldBackendNotOK   = "backend_not_ok"
	FieldTransportError = "transport_error"
	FieldDecodeFallback = "decode_fallback"
	statusFieldPrefix   = "status_"
)

// hashStore is the part of the Redis client the recorder uses.
type hashStore interface {
	HIncrBy(ctx context.Context, key, field string, incr int64) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Close() error
}

// RedisRecorder counts forwarded calls by outcome. It implements
// gateway.Observer.
type RedisRecorder struct {
	store hashStore
	key   string
	log   *zap.SugaredLogger
}

// NewRedisRecorder connects to Redis and verifies connectivity.
func NewRedisRecorder(cfg config.RedisConfig, log *zap.SugaredLogger) (*RedisRecorder, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	key := cfg.Key
	if key == "" {
		key = config.DefaultStatsKey
	}
	return newRedisRecorder(client, key, log), nil
}

func newRedisRecorder(store hashStore, key string, log *zap.SugaredLogger) *RedisRecorder {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisRecorder{store: store, key: key, log: log}
}

// Observe increments the counters matching o. Redis errors are logged and
// otherwise ignored.
func (r *RedisRecorder) Observe(_ context.Context, o gateway.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), config.ObserverTimeout)
	defer cancel()

	for _, field := range fieldsFor(o) {
		if err := r.store.HIncrBy(ctx, r.key, field, 1).Err(); err != nil {
			r.log.Warnw("Failed to record gateway outcome", "request_id", o.RequestID, "field", field, "error", err)
			return
		}
	}
}

// Counters returns every counter in the outcomes hash.
func (r *RedisRecorder) Counters(ctx context.Context) (map[string]int64, error) {
	raw, err := r.store.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	out := make(map[string]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[field] = n
	}
	return out, nil
}

// Close closes the underlying Redis client.
func (r *RedisRecorder) Close() error {
	return r.store.Close()
}

func fieldsFor(o gateway.Outcome) []string {
	fields := []string{FieldTotal}
	if o.Err != nil && o.StatusCode == 0 {
		return append(fields, FieldTransportError)
	}

	fields = append(fields, statusFieldPrefix+strconv.Itoa(o.StatusCode))
	if o.DecodeFallback {
		fields = append(fields, FieldDecodeFallback)
	}
	if o.OK && o.StatusCode >= 200 && o.StatusCode < 300 {
		fields = append(fields, FieldBackendOK)
	} else {
		fields = append(fields, FieldBackendNotOK)
	}
	return fields
}
