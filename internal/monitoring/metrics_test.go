package monitoring

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObservePostsAndComments(t *testing.T) {
	m := NewMetrics()

	m.ObservePosts([]models.ScoredPost{
		{OverallSentiment: models.SentimentScore{Polarity: 0.5, Label: models.LabelPositive}},
		{OverallSentiment: models.NeutralScore()},
	})
	m.ObserveComments([]models.ScoredComment{
		{Sentiment: models.SentimentScore{Polarity: -0.5, Label: models.LabelNegative}},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ItemsAnalyzed.WithLabelValues("post")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemsAnalyzed.WithLabelValues("comment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LabelsAssigned.WithLabelValues("post", "positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LabelsAssigned.WithLabelValues("post", "neutral")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LabelsAssigned.WithLabelValues("comment", "negative")))
}

func TestMetrics_ObserveRedditRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveRedditRequest("listing", "200", 120*time.Millisecond)
	m.ObserveRedditRequest("listing", "429", 10*time.Millisecond)
	m.ObserveRedditRequest("listing", "200", 80*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RedditRequests.WithLabelValues("listing", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RedditRequests.WithLabelValues("listing", "429")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RedditLatency))
}

func TestMetrics_WriteFile(t *testing.T) {
	m := NewMetrics()
	m.ObservePosts([]models.ScoredPost{{OverallSentiment: models.NeutralScore()}})
	m.MarkRunFinished(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "sentiscope.prom")
	require.NoError(t, m.WriteFile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `sentiscope_items_analyzed_total{kind="post"} 1`)
	assert.Contains(t, string(b), "sentiscope_last_run_timestamp_seconds 1.7e+09")
}
