package http

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/metrics"
	"Product_Catalog/internal/models"
	"Product_Catalog/internal/ratelimit"

	"github.com/gorilla/mux"
)

// maxLoggedBody caps how much of a request body reaches the log
const maxLoggedBody = 1000

// loggingMiddleware attaches a request LogEvent to the context and logs
// each request on arrival and on completion
func loggingMiddleware(loggerService logger.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)
			logEvent := logger.NewRequestLogEvent(clientIP)
			ctx := logger.WithLogEvent(r.Context(), logEvent)
			r = r.WithContext(ctx)

			route := routeTemplate(r)
			received := map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"route":      route,
				"query":      r.URL.RawQuery,
				"user_agent": r.UserAgent(),
				"client_ip":  clientIP,
			}
			if vars := mux.Vars(r); len(vars) > 0 {
				received["url_params"] = vars
			}
			if body := captureBody(r); body != "" {
				received["body"] = body
			}
			loggerService.LogInfo(ctx, logger.OpHTTPRequest, "HTTP request received", received)

			recorder := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			loggerService.LogInfo(ctx, logger.OpHTTPRequest, "HTTP request processed", map[string]interface{}{
				"method":        r.Method,
				"path":          r.URL.Path,
				"route":         route,
				"status_code":   recorder.statusCode,
				"response_size": recorder.written,
				"duration_ms":   time.Since(logEvent.StartTime).Milliseconds(),
				"user_agent":    r.UserAgent(),
				"client_ip":     clientIP,
			})
		})
	}
}

// captureBody reads the request body for logging and puts an unread copy back
func captureBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	raw, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(raw) > maxLoggedBody {
		return string(raw[:maxLoggedBody]) + "... (truncated)"
	}
	return string(raw)
}

// routeTemplate names the matched mux route, falling back to the raw path
// for requests that matched nothing
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}

// corsMiddleware allows any origin and answers preflight requests itself
func corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// metricsMiddleware records request count and duration per route template
func metricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			// Templates keep ids out of the label set
			metrics.RecordHTTPRequest(r.Method, routeTemplate(r), recorder.statusCode, time.Since(start))
		})
	}
}

// recoveryMiddleware turns a handler panic into a logged 500
func recoveryMiddleware(loggerService logger.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				loggerService.LogError(r.Context(), "panic_recovery", "", "Panic recovered in HTTP handler",
					fmt.Errorf("panic: %v", recovered), models.LogSeverityHigh, map[string]interface{}{
						"panic":  recovered,
						"path":   r.URL.Path,
						"route":  routeTemplate(r),
						"method": r.Method,
					})
				rejectRequest(w, r, http.StatusInternalServerError,
					`{"error":"internal server error","message":"An unexpected error occurred"}`)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitingMiddleware rejects clients over their budget with 429.
// The client IP comes from the LogEvent placed by loggingMiddleware.
func rateLimitingMiddleware(rateLimiter ratelimit.Service, loggerService logger.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if rateLimiter.Allow(logger.GetLogEvent(ctx).ClientIP) {
				next.ServeHTTP(w, r)
				return
			}

			loggerService.LogError(ctx, logger.OpRateLimited, "", "Rate limit exceeded", models.ErrRateLimitExceeded, models.LogSeverityMedium, map[string]interface{}{
				"path":   r.URL.Path,
				"route":  routeTemplate(r),
				"method": r.Method,
			})
			w.Header().Set("X-RateLimit-Retry-After", "1")
			rejectRequest(w, r, http.StatusTooManyRequests,
				`{"error":"rate limit exceeded","message":"Please try again later"}`)
		})
	}
}

// rejectRequest writes a canned JSON error tagged with the request id
func rejectRequest(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logger.GetLogEvent(r.Context()).ProcessID)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// responseWriter records the status code and body size a handler produced
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

// getClientIP prefers proxy headers over the socket address
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
