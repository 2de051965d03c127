package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProberCheck(t *testing.T) {
	// Any HTTP answer, even a 404, means the backend is up.
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()

	p := NewProber(backend.URL+"/", nil)
	assert.True(t, p.Last().CheckedAt.IsZero())

	h := p.Check(context.Background())
	assert.True(t, h.Reachable)
	assert.Empty(t, h.Error)
	assert.Equal(t, h, p.Last())
}

func TestProberCheckUnreachable(t *testing.T) {
	p := NewProber(unreachableURL(t), nil)

	h := p.Check(context.Background())
	assert.False(t, h.Reachable)
	assert.NotEmpty(t, h.Error)
	assert.False(t, h.CheckedAt.IsZero())
}

func TestProberStartRejectsBadSchedule(t *testing.T) {
	p := NewProber("http://localhost:1", nil)
	assert.Error(t, p.Start("not a schedule"))
}
