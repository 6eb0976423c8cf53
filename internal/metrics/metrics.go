package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Имена внешних сервисов для меток vendor
const (
	VendorStorage = "storage"
	VendorOpenAI  = "openai"
	VendorSTT     = "speech_to_text"
	VendorTTS     = "text_to_speech"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	VendorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_calls_total",
			Help: "Total number of outbound vendor API calls",
		},
		[]string{"vendor", "outcome"},
	)

	VendorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_call_duration_seconds",
			Help:    "Duration of outbound vendor API calls in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"vendor"},
	)
)

// ObserveVendor — вызывать через defer после исходящего запроса
func ObserveVendor(vendor string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	VendorCalls.WithLabelValues(vendor, outcome).Inc()
	VendorDuration.WithLabelValues(vendor).Observe(time.Since(start).Seconds())
}

func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
