package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mssola/user_agent"

	"github.com/vantagefin/vantage/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			browser, device := describeClient(r.UserAgent())
			log.Info("%s %s %d %s ip=%s client=%s/%s",
				r.Method,
				r.URL.Path,
				rec.status,
				time.Since(start).Round(time.Millisecond),
				clientIP(r),
				browser,
				device,
			)
		})
	}
}

func describeClient(uaString string) (browser, device string) {
	ua := user_agent.New(uaString)

	browser, _ = ua.Browser()
	if browser == "" {
		browser = "unknown"
	}

	device = "desktop"
	if ua.Mobile() {
		device = "mobile"
	} else if ua.Bot() {
		device = "bot"
	}

	return browser, device
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
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
