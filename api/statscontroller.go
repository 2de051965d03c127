package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CounterSource exposes gateway outcome counters.
type CounterSource interface {
	Counters(ctx context.Context) (map[string]int64, error)
}

// RegisterStatsRoutes registers the counters endpoint. Without a source it
// answers an empty object.
func RegisterStatsRoutes(r *gin.Engine, src CounterSource) {
	r.GET("/api/stats", func(c *gin.Context) {
		if src == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		counters, err := src.Counters(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, counters)
	})
}
