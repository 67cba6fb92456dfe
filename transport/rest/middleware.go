package rest

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-match/internal/metrics"
)

func (that *Server) requestLogger() gin.HandlerFunc {
	log := that.logger.With("method", "request")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request handled",
			"http_method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// unmatched paths share one label so random URLs cannot blow up cardinality
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
