package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request with its outcome and latency.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("Request")
	}
}

// Recovery turns a panic into a 500 response. The panic value only reaches
// the client when detail is true.
func Recovery(log zerolog.Logger, detail bool) gin.HandlerFunc {
	log = log.With().Str("component", "recovery").Logger()

	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Str("request_id", response.RequestID(c)).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("Recovered from panic")

		if detail {
			response.AbortFailWithDetail(c, http.StatusInternalServerError, response.ErrInternal, fmt.Sprint(recovered))
			return
		}
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	})
}
