package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrometheusHandler exposes a metrics handler on a gin route
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	if handler == nil {
		return func(c *gin.Context) {
			c.String(http.StatusServiceUnavailable, "metrics are not initialized")
		}
	}
	return gin.WrapH(handler)
}
