package stats

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"presskit/gateway"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHashStore keeps hashes in memory.
type fakeHashStore struct {
	mu     sync.Mutex
	hashes map[string]map[string]int64
	err    error
	closed bool
}

func newFakeHashStore() *fakeHashStore {
	return &fakeHashStore{hashes: make(map[string]map[string]int64)}
}

func (f *fakeHashStore) HIncrBy(ctx context.Context, key, field string, incr int64) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "hincrby", key, field, incr)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	h, ok := f.hashes[key]
	if !ok {
		h = make(map[string]int64)
		f.hashes[key] = h
	}
	h[field] += incr
	cmd.SetVal(h[field])
	return cmd
}

func (f *fakeHashStore) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	cmd := redis.NewMapStringStringCmd(ctx, "hgetall", key)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	out := make(map[string]string)
	for field, n := range f.hashes[key] {
		out[field] = strconv.FormatInt(n, 10)
	}
	cmd.SetVal(out)
	return cmd
}

func (f *fakeHashStore) Close() error {
	f.closed = true
	return nil
}

func TestRedisRecorderCounts(t *testing.T) {
	store := newFakeHashStore()
	rec := newRedisRecorder(store, "test:outcomes", nil)
	ctx := context.Background()

	rec.Observe(ctx, gateway.Outcome{RequestID: "1", StatusCode: 200, OK: true})
	rec.Observe(ctx, gateway.Outcome{RequestID: "2", StatusCode: 200, OK: false})
	rec.Observe(ctx, gateway.Outcome{RequestID: "3", StatusCode: 502, DecodeFallback: true})
	rec.Observe(ctx, gateway.Outcome{RequestID: "4", Err: errors.New("connection refused")})

	counters, err := rec.Counters(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), counters[FieldTotal])
	assert.Equal(t, int64(2), counters["status_200"])
	assert.Equal(t, int64(1), counters["status_502"])
	assert.Equal(t, int64(1), counters[FieldBackendOK])
	assert.Equal(t, int64(2), counters[FieldBackendNotOK])
	assert.Equal(t, int64(1), counters[FieldDecodeFallback])
	assert.Equal(t, int64(1), counters[FieldTransportError])

	require.NoError(t, rec.Close())
	assert.True(t, store.closed)
}

func TestRedisRecorderSwallowsErrors(t *testing.T) {
	store := newFakeHashStore()
	store.err = errors.New("redis down")
	rec := newRedisRecorder(store, "test:outcomes", nil)

	assert.NotPanics(t, func() {
		rec.Observe(context.Background(), gateway.Outcome{StatusCode: 200, OK: true})
	})

	_, err := rec.Counters(context.Background())
	assert.Error(t, err)
}

func TestFieldsFor(t *testing.T) {
	assert.Equal(t,
		[]string{FieldTotal, FieldTransportError},
		fieldsFor(gateway.Outcome{Err: errors.New("x")}))
	assert.Equal(t,
		[]string{FieldTotal, "status_201", FieldBackendOK},
		fieldsFor(gateway.Outcome{StatusCode: 201, OK: true}))
	assert.Equal(t,
		[]string{FieldTotal, "status_500", FieldBackendNotOK},
		fieldsFor(gateway.Outcome{StatusCode: 500, OK: true}))
	assert.Equal(t,
		[]string{FieldTotal, "status_204", FieldBackendNotOK},
		fieldsFor(gateway.Outcome{StatusCode: 204, Err: errors.New("no body")}))
}
