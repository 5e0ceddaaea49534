package middleware

import (
	"bytes"
	"fmt"
	log "log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const (
	maxLogLine     = 80
	maxCapturedLen = 16384
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxCapturedLen {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) WriteString(s string) (int, error) {
	if r.body.Len() < maxCapturedLen {
		r.body.WriteString(s)
	}
	return r.ResponseWriter.WriteString(s)
}

// RequestLogger writes one summary line per /api request:
// "METHOD path status in Nms :: body", cut to 80 characters.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/api") {
			c.Next()
			return
		}

		w := &responseBodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		line := fmt.Sprintf("%s %s %d in %dms", c.Request.Method, path, c.Writer.Status(), latency.Milliseconds())
		if body := bytes.TrimSpace(w.body.Bytes()); len(body) > 0 && isJSON(c) {
			line += " :: " + string(body)
		}

		log.InfoContext(c.Request.Context(), truncate(line, maxLogLine),
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", latency),
		)
	}
}

func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// ErrorLogger logs handler errors and recovers from panics with a generic 500.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logRequestError(c, start, "panic", fmt.Sprintf("%v", recovered), debug.Stack())
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
				}
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, start, fmt.Sprintf("%v", err.Type), err.Error(), nil)
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, errType, message string, stack []byte) {
	attrs := []any{
		log.String("type", errType),
		log.Int("status", c.Writer.Status()),
		log.String("method", c.Request.Method),
		log.String("path", c.Request.URL.Path),
		log.String("query", c.Request.URL.RawQuery),
		log.String("client_ip", c.ClientIP()),
		log.Duration("latency", time.Since(start)),
		log.String("error", message),
	}
	if stack != nil {
		attrs = append(attrs, log.String("stack", string(stack)))
	}
	log.ErrorContext(c.Request.Context(), "request_error", attrs...)
}
