package api

import (
	"presskit/gateway"
	"presskit/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the routes need. Prober and Stats are
// optional.
type Deps struct {
	Gateway *gateway.Gateway
	Prober  *gateway.Prober
	Stats   CounterSource
	Log     *zap.SugaredLogger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(d.Log))

	// Register resource routers
	RegisterProcessRoutes(r, d.Gateway)
	RegisterHealthRoutes(r, d.Prober)
	RegisterStatsRoutes(r, d.Stats)
	return r
}
