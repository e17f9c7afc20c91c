package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/templui/goalnote/internal/metrics"
)

// Metrics records request count, duration and in-flight requests. It must
// sit directly in front of the mux so the matched route pattern is visible.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			rw := wrapResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := routePattern(r)
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		})
	}
}
