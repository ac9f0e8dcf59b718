package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
)

// RequestIDHeader é o header usado para correlacionar logs
const RequestIDHeader = "X-Request-ID"

// RequestLogger registra cada requisição com nível conforme o status
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLog := log.With("request_id", requestID)
		c.Request = c.Request.WithContext(ports.ContextWithLogger(c.Request.Context(), reqLog))

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if user, ok := CurrentUser(c); ok {
			args = append(args, "user_id", user.ID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLog.Error("HTTP request completed", args...)
		case status >= 400:
			reqLog.Warn("HTTP request completed", args...)
		default:
			reqLog.Debug("HTTP request completed", args...)
		}
	}
}

// BaseURL define a base das URIs de problema RFC 7807
func BaseURL(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dto.BaseURLContextKey, baseURL)
		c.Next()
	}
}
