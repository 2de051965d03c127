package api

import (
	"net/http"

	"presskit/gateway"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers health check endpoints. The backend
// section is present only when a prober is running.
func RegisterHealthRoutes(r *gin.Engine, prober *gateway.Prober) {
	r.GET("/api/health", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if prober != nil {
			body["backend"] = prober.Last()
		}
		c.JSON(http.StatusOK, body)
	})
}
