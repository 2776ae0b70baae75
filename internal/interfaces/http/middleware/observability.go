package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/monitoring"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// Observability starts a trace span per request and records request counter
// and latency metrics after the handler completes. Metric paths use the route
// template to keep label cardinality bounded.
func Observability(tracer trace.Tracer, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}
		status := c.Writer.Status()

		if metrics != nil {
			metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(status), time.Since(start))
		}

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.path", path),
			attribute.Int("http.status_code", status),
			attribute.String("http.client_ip", c.ClientIP()),
		)
	}
}

// RequestLogging logs each completed request with its status and duration.
func RequestLogging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logger.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			log.Warn(c.Request.Context(), "request failed", fields)
			return
		}
		log.Info(c.Request.Context(), "request completed", fields)
	}
}
