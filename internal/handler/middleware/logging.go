package middleware

import (
	"context"
	"log/slog"
	"time"

	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestIDKey = "request_id"
	// stackLines bounds the stack trace attached to 5xx access log lines.
	stackLines = 12
)

// RequestLogger writes the access log and feeds the request duration
// histogram.
type RequestLogger struct {
	logger  *slog.Logger
	metrics metrics.Recorder
}

func NewRequestLogger(logger *slog.Logger, m metrics.Recorder) *RequestLogger {
	return &RequestLogger{logger: logger, metrics: m}
}

func (l *RequestLogger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := uuid.NewString()

		c.Set(ctxRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		logAttrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}

		l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Request started", logAttrs...)

		c.Next()

		duration := time.Since(startTime)
		statusCode := c.Writer.Status()

		responseAttrs := make([]slog.Attr, len(logAttrs), len(logAttrs)+5)
		copy(responseAttrs, logAttrs)
		// auth runs inside c.Next, so the owner is only known afterwards
		if ownerID, ok := GetUserID(c); ok {
			responseAttrs = append(responseAttrs, slog.String("owner_id", ownerID.String()))
		}
		responseAttrs = append(responseAttrs,
			slog.Int("status_code", statusCode),
			slog.Duration("duration", duration),
		)

		if responseSize := c.Writer.Size(); responseSize > 0 {
			responseAttrs = append(responseAttrs, slog.Int("response_size", responseSize))
		}

		if len(c.Errors) > 0 {
			responseAttrs = append(responseAttrs, slog.String("errors", c.Errors.String()))
		}

		logLevel := slog.LevelInfo
		if statusCode >= 500 {
			logLevel = slog.LevelError
			if last := c.Errors.Last(); last != nil {
				responseAttrs = append(responseAttrs, slog.Any("stack", errs.ExtractStackLines(last.Err, stackLines)))
			}
		} else if statusCode >= 400 {
			logLevel = slog.LevelWarn
		}

		l.logger.LogAttrs(context.Background(), logLevel, "Request completed", responseAttrs...)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		l.metrics.ObserveRequest(c.Request.Method, route, statusCode, duration.Seconds())
	}
}

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(ctxRequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
