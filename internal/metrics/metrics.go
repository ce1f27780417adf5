package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_upstream_requests_total",
		Help: "Requests sent to the help-desk API, by method and status code",
	}, []string{"method", "code"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "helpdesk_upstream_request_duration_seconds",
		Help:    "Latency of help-desk API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	pageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_web_requests_total",
		Help: "Requests served by the web console, by route pattern and status code",
	}, []string{"route", "code"})

	forcedLogouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpdesk_forced_logouts_total",
		Help: "Sessions cleared because the help-desk API answered 401",
	})
)

// ObserveUpstream records one finished API call. code 0 means the request
// never got a response.
func ObserveUpstream(method string, code int, d time.Duration) {
	upstreamRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	upstreamLatency.WithLabelValues(method).Observe(d.Seconds())
}

func ObservePage(route string, code int) {
	if route == "" {
		route = "unmatched"
	}
	pageRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func ForcedLogout() { forcedLogouts.Inc() }

func Handler() http.Handler { return promhttp.Handler() }
