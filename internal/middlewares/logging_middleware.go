package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// statusRecorder remembers the first status written and counts body bytes.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

// LoggingMiddleware logs one line per request once the handler returns: the
// matched chi route pattern next to the raw path, and the request id set by
// middleware.RequestID when it runs earlier in the chain.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "-"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		reqID := middleware.GetReqID(r.Context())
		if reqID == "" {
			reqID = "-"
		}
		log.Printf("%s %s -> %d (%d bytes) in %v | route=%s ip=%s req=%s",
			r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start), route, r.RemoteAddr, reqID)
	})
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(buf []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(buf)
	rec.bytes += n
	return n, err
}
