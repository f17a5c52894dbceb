package middleware

import (
	"bytes"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxLoggedBody caps how much of a response body ends up in the log.
const maxLoggedBody = 2048

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	if w.buf.Len() < maxLoggedBody {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// ResponseLog logs every response payload with a per-request id. It is an
// observability hook, wired only when log.responses is enabled in config.
func ResponseLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.NewString()
		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		start := time.Now()
		c.Next()

		body := capture.buf.Bytes()
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		log.Printf("[%s] %s %s -> %d (%s) %s",
			reqID,
			c.Request.Method,
			c.Request.URL.Path,
			capture.Status(),
			time.Since(start).Round(time.Millisecond),
			body,
		)
	}
}
