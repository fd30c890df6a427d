package monitoring

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spacesedan/sentiscope/internal/models"
)

const METRICS_NAMESPACE = "sentiscope"

// Metrics collects per-run counters on a private registry. A batch run has
// no scrape endpoint, so the registry is written out once with WriteFile.
type Metrics struct {
	Registry *prometheus.Registry

	ItemsAnalyzed   *prometheus.CounterVec
	LabelsAssigned  *prometheus.CounterVec
	RedditRequests  *prometheus.CounterVec
	RedditLatency   *prometheus.HistogramVec
	LastRunUnixTime prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ItemsAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "items_analyzed_total",
			Help:      "Posts and comments scored, by kind.",
		}, []string{"kind"}),
		LabelsAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "sentiment_labels_total",
			Help:      "Sentiment labels assigned, by kind and label.",
		}, []string{"kind", "label"}),
		RedditRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "reddit_requests_total",
			Help:      "Reddit API requests, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		RedditLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "reddit_request_duration_seconds",
			Help:      "Reddit API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		LastRunUnixTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last analysis finished.",
		}),
	}

	m.Registry.MustRegister(m.ItemsAnalyzed, m.LabelsAssigned, m.RedditRequests, m.RedditLatency, m.LastRunUnixTime)
	return m
}

func (m *Metrics) ObservePosts(posts []models.ScoredPost) {
	observe(m, "post", posts)
}

func (m *Metrics) ObserveComments(comments []models.ScoredComment) {
	observe(m, "comment", comments)
}

func observe[T models.HasSentimentScore](m *Metrics, kind string, items []T) {
	m.ItemsAnalyzed.WithLabelValues(kind).Add(float64(len(items)))
	for _, item := range items {
		m.LabelsAssigned.WithLabelValues(kind, string(item.SentimentScore().Label)).Inc()
	}
}

func (m *Metrics) ObserveRedditRequest(kind, outcome string, d time.Duration) {
	m.RedditRequests.WithLabelValues(kind, outcome).Inc()
	m.RedditLatency.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) MarkRunFinished(at time.Time) {
	m.LastRunUnixTime.Set(float64(at.Unix()))
}

// WriteFile writes the registry in the text exposition format, suitable for
// node_exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("[Metrics] failed to write %s: %w", path, err)
	}
	return nil
}
