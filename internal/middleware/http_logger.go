package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"postman-backend/internal/logger"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxLoggedBody caps how much of each body ends up in http.log.
const maxLoggedBody = 64 << 10

func HTTPLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		// Capture request
		start := time.Now()
		reqBody := readBody(c.Request.Body)
		queryParams := c.Request.URL.Query()
		c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody)) // Reset for Gin

		// Capture response
		blw := &bodyLogWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		latency := time.Since(start)
		resStatus := c.Writer.Status()
		requestID := c.GetString(RequestIDKey)

		logEvent := logger.AppLogger.Info()
		if resStatus >= http.StatusInternalServerError {
			logEvent = logger.AppLogger.Warn()
		}
		logEvent = logEvent.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", resStatus).
			Dur("latency_ms", latency).
			Str("client_ip", c.ClientIP())

		if len(c.Errors) > 0 {
			logEvent = logEvent.Strs("errors", c.Errors.Errors())
		}
		logEvent.Msg("request_processed")

		logger.HttpLogger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", resStatus).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("referrer", c.Request.Referer()).
			Dict("headers", logHeaders(c.Request.Header)).
			Dict("query_params", logDictFromValues(queryParams)).
			Str("request_body", truncate(reqBody)).
			Str("response_body", truncate(blw.body.Bytes())).
			Msg("http_trace")
	}
}

func skipPath(path string) bool {
	return path == "/health" || path == "/metrics"
}

func readBody(body io.ReadCloser) []byte {
	if body == nil {
		return nil
	}
	b, _ := io.ReadAll(body)
	return b
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}

func logHeaders(h http.Header) *zerolog.Event {
	dict := zerolog.Dict()
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			dict.Str(k, "REDACTED")
		} else {
			dict.Str(k, strings.Join(v, ", "))
		}
	}
	return dict
}

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	if w.body != nil && w.body.Len() <= maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func logDictFromValues(values url.Values) *zerolog.Event {
	dict := zerolog.Dict()
	for k, v := range values {
		dict.Strs(k, v)
	}
	return dict
}
