package middleware

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetrics holds in-memory request counters
type RequestMetrics struct {
	mu              sync.RWMutex
	TotalRequests   uint64
	RequestsByRoute map[string]uint64
	RequestsByStatus map[string]uint64
}

var metrics = &RequestMetrics{
	RequestsByRoute:  make(map[string]uint64),
	RequestsByStatus: make(map[string]uint64),
}

// GetMetrics returns a snapshot of the current request counters
func GetMetrics() RequestMetrics {
	metrics.mu.RLock()
	defer metrics.mu.RUnlock()
	return RequestMetrics{
		TotalRequests:    metrics.TotalRequests,
		RequestsByRoute:  copyMap(metrics.RequestsByRoute),
		RequestsByStatus: copyMap(metrics.RequestsByStatus),
	}
}

// copyMap creates a copy of the map
func copyMap(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// StructuredLoggingMiddleware provides structured logging with request latency
func StructuredLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		// Group counters by the route template so /v1/dashboard/:panel
		// stays one bucket regardless of the panel requested.
		route := c.FullPath()
		if route == "" {
			route = path
		}

		metrics.mu.Lock()
		metrics.TotalRequests++
		metrics.RequestsByRoute[method+" "+route]++
		metrics.RequestsByStatus[strconv.Itoa(statusCode)]++
		metrics.mu.Unlock()

		logger.Info("request completed",
			"method", method,
			"path", path,
			"status_code", statusCode,
			"latency_ms", latency.Milliseconds(),
			"bytes_written", c.Writer.Size(),
		)

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				logger.Error("request error",
					"method", method,
					"path", path,
					"error", err.Error(),
					"latency_ms", latency.Milliseconds(),
				)
			}
		}
	}
}
