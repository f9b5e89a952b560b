package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sensitiveQueryParams are redacted from logs
var sensitiveQueryParams = map[string]bool{
	"token": true, "password": true, "secret": true, "key": true,
	"auth": true, "api_key": true, "apikey": true,
}

// quietRoutes are polled by probes, scrapers and the docs UI; their
// successful requests are logged at debug level only
var quietRoutes = map[string]bool{
	"/api/healthcheck": true,
	"/api/metrics":     true,
	"/openapi.json":    true,
	"/swagger-ui/*any": true,
}

// routeLabel is the route template used as the metrics label; unmatched
// paths share one label so 404 scans cannot grow cardinality
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// requestFields describes who made the request and what it addressed.
// Match request routes always carry the request id so every ledger
// transition can be traced back from the logs.
func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("response_size", c.Writer.Size()),
	}

	if session, err := GetSession(c); err == nil {
		fields = append(fields,
			zap.Int("user_id", session.UserID),
			zap.String("role", string(session.Role)))
	}

	if strings.HasPrefix(c.FullPath(), "/api/match-requests/:id") {
		fields = append(fields, zap.String("match_request_id", c.Param("id")))
	}

	return fields
}

// errorFields adds route and query params to failed requests
func errorFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if len(c.Params) > 0 {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		fields = append(fields, zap.Any("route_params", params))
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		sanitized := make(map[string]string, len(query))
		for k, v := range query {
			if !sensitiveQueryParams[strings.ToLower(k)] && len(v) > 0 {
				sanitized[k] = v[0]
			}
		}
		if len(sanitized) > 0 {
			fields = append(fields, zap.Any("query_params", sanitized))
		}
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}

	return fields
}

// ObservabilityMiddleware records HTTP metrics and writes one log line per request
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		route := routeLabel(c)
		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, statusStr).Inc()

		if status < 400 && quietRoutes[route] {
			logger.Debug("HTTP request",
				zap.String("method", method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status))
			return
		}

		fields := requestFields(c)
		if status >= 400 {
			fields = append(fields, errorFields(c)...)
		}

		logger.LogHTTPRequest(c.Request.Context(), method, c.Request.URL.Path, status, duration, fields...)
	}
}
