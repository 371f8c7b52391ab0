package middleware

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/cart/internal/core/logger"
)

const maxResponseBodySize = 16 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// responseBodyWriter tees at most maxResponseBodySize bytes of the response.
type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if w.body.Len()+len(b) <= maxResponseBodySize {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseBodyWriter) WriteString(s string) (int, error) {
	if w.body.Len()+len(s) <= maxResponseBodySize {
		w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

func levelFor(status int) logger.LogLevel {
	switch {
	case status >= 500:
		return logger.LogLevelError
	case status >= 400:
		return logger.LogLevelWarn
	default:
		return logger.LogLevelInfo
	}
}

// LogRequest logs one line per request. Error responses carry their JSON
// body; successful ones only their size, so carts stay out of the logs.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		c.Writer = &responseBodyWriter{ResponseWriter: c.Writer, body: buf}

		c.Next()

		status := c.Writer.Status()
		attrs := map[string]any{
			"http.method":        c.Request.Method,
			"http.path":          c.Request.URL.Path,
			"http.route":         c.FullPath(),
			"http.status_code":   status,
			"http.duration_ms":   time.Since(start).Milliseconds(),
			"http.client_ip":     c.ClientIP(),
			"http.response_size": c.Writer.Size(),
		}
		if id := c.Param("id"); id != "" {
			attrs["product_id"] = id
		}
		if c.Request.ContentLength > 0 {
			attrs["http.request_size"] = c.Request.ContentLength
		}
		if len(c.Errors) > 0 {
			attrs["error"] = c.Errors.String()
		}
		if status >= 400 && strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") && buf.Len() > 0 {
			attrs["http.response_body"] = buf.String()
		}

		logHTTPRequest(c.Request.Context(), levelFor(status), attrs)
	}
}

func logHTTPRequest(ctx context.Context, level logger.LogLevel, attrs map[string]any) {
	logger.Log(ctx, logger.LogEntry{
		Level:      level,
		Message:    "http: request",
		Attributes: attrs,
		Timestamp:  time.Now(),
	})
}
