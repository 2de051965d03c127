package api

import (
	"io"
	"net/http"

	"presskit/config"
	"presskit/gateway"
	"presskit/types"

	"github.com/gin-gonic/gin"
)

const (
	processRoute    = config.ProcessPath
	requestIDHeader = "X-Request-ID"
)

type processController struct {
	gateway *gateway.Gateway
}

// RegisterProcessRoutes registers the process proxy endpoint.
func RegisterProcessRoutes(r *gin.Engine, gw *gateway.Gateway) {
	pc := &processController{gateway: gw}
	r.POST(processRoute, pc.handleProcess)
}

// handleProcess relays the body to the backend and answers with the
// backend's status and JSON body. Local failures become a 500 envelope.
func (pc *processController) handleProcess(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondProxyError(c, err)
		return
	}

	resp, err := pc.gateway.Forward(c.Request.Context(), body)
	if err != nil {
		respondProxyError(c, err)
		return
	}

	c.Header(requestIDHeader, resp.RequestID)
	c.Data(resp.StatusCode, "application/json; charset=utf-8", resp.Body)
}

func respondProxyError(c *gin.Context, err error) {
	msg := config.ProxyErrorMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, types.RunResult{OK: false, Error: msg})
}
