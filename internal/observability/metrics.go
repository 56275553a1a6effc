package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultScored  = "scored"
	ResultInvalid = "invalid"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorectl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scorectl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	scoreCards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorectl",
			Name:      "scorecards_total",
			Help:      "Score cards processed, by result.",
		},
		[]string{"result"},
	)
	frames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorectl",
			Name:      "frames_total",
			Help:      "Frames scored, by kind.",
		},
		[]string{"kind"},
	)
	gameScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scorectl",
			Name:      "game_score",
			Help:      "Aggregate score of scored cards.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, scoreCards, frames, gameScore)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordScoreCard counts one scored card. kinds holds the frame kind of every
// frame on the card.
func RecordScoreCard(score int, kinds []string) {
	RegisterMetrics()
	scoreCards.WithLabelValues(ResultScored).Inc()
	gameScore.Observe(float64(score))
	for _, kind := range kinds {
		frames.WithLabelValues(kind).Inc()
	}
}

func RecordInvalidScoreCard() {
	RegisterMetrics()
	scoreCards.WithLabelValues(ResultInvalid).Inc()
}
