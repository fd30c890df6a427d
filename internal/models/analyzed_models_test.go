package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFor_Thresholds(t *testing.T) {
	assert.Equal(t, LabelPositive, LabelFor(0.101))
	assert.Equal(t, LabelNeutral, LabelFor(0.1))
	assert.Equal(t, LabelNeutral, LabelFor(0))
	assert.Equal(t, LabelNeutral, LabelFor(-0.1))
	assert.Equal(t, LabelNegative, LabelFor(-0.101))
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.123, Round3(0.12345))
	assert.Equal(t, -0.5, Round3(-0.5))
	assert.Equal(t, 0.0, Round3(0.0004))
}

func TestNeutralScore(t *testing.T) {
	assert.Equal(t, SentimentScore{Polarity: 0, Subjectivity: 0, Label: LabelNeutral}, NeutralScore())
}

func TestCorpusSummary_EmptyMarshalsAsObject(t *testing.T) {
	b, err := json.Marshal(CorpusSummary{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestCorpusSummary_ZeroCountsAreKept(t *testing.T) {
	s := CorpusSummary{TotalAnalyzed: 1, PositiveCount: 1, AveragePolarity: 0.5, OverallSentiment: LabelPositive}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_analyzed":1,"positive_count":1,"negative_count":0,"neutral_count":0,"average_polarity":0.5,"overall_sentiment":"positive"}`, string(b))
}

func TestHasSentimentScore(t *testing.T) {
	overall := SentimentScore{Polarity: 0.4, Label: LabelPositive}
	post := ScoredPost{OverallSentiment: overall, TitleSentiment: NeutralScore()}
	comment := ScoredComment{Sentiment: overall}

	for _, item := range []HasSentimentScore{post, comment} {
		assert.Equal(t, overall, item.SentimentScore())
	}
}

func TestUnixToTime(t *testing.T) {
	ts := UnixToTime(1700000000.5)
	assert.Equal(t, int64(1700000000), ts.Unix())
	assert.Equal(t, 500_000_000, ts.Nanosecond())
}

func TestRound3_NoNegativeZero(t *testing.T) {
	r := Round3(-0.0004)
	assert.False(t, math.Signbit(r))
}
