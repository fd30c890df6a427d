package models

import (
	"encoding/json"
	"math"
	"time"
)

type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

const (
	POSITIVE_THRESHOLD = 0.1
	NEGATIVE_THRESHOLD = -0.1
)

// LabelFor classifies a polarity value.
func LabelFor(polarity float64) Label {
	switch {
	case polarity > POSITIVE_THRESHOLD:
		return LabelPositive
	case polarity < NEGATIVE_THRESHOLD:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Round3 rounds half away from zero to three decimal places. Negative
// values that round to zero come back as plain 0.
func Round3(x float64) float64 {
	r := math.Round(x*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}

type SentimentScore struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        Label   `json:"label"`
}

// NeutralScore is returned for text with nothing left to score.
func NeutralScore() SentimentScore {
	return SentimentScore{Label: LabelNeutral}
}

// HasSentimentScore is implemented by anything that can be summarized.
type HasSentimentScore interface {
	SentimentScore() SentimentScore
}

type ScoredPost struct {
	Title            string         `json:"title"`
	Score            int            `json:"score"`
	NumComments      int            `json:"num_comments"`
	TitleSentiment   SentimentScore `json:"title_sentiment"`
	ContentSentiment SentimentScore `json:"content_sentiment"`
	OverallSentiment SentimentScore `json:"overall_sentiment"`
}

func (p ScoredPost) SentimentScore() SentimentScore { return p.OverallSentiment }

type ScoredComment struct {
	Comment   string         `json:"comment"`
	Score     int            `json:"score"`
	Sentiment SentimentScore `json:"sentiment"`
}

func (c ScoredComment) SentimentScore() SentimentScore { return c.Sentiment }

type CorpusSummary struct {
	TotalAnalyzed    int     `json:"total_analyzed"`
	PositiveCount    int     `json:"positive_count"`
	NegativeCount    int     `json:"negative_count"`
	NeutralCount     int     `json:"neutral_count"`
	AveragePolarity  float64 `json:"average_polarity"`
	OverallSentiment Label   `json:"overall_sentiment"`
}

// IsEmpty reports whether the summary was built from no items.
func (s CorpusSummary) IsEmpty() bool {
	return s.TotalAnalyzed == 0
}

// MarshalJSON writes an empty summary as {} so that consumers can tell
// "nothing analyzed" apart from zero counts.
func (s CorpusSummary) MarshalJSON() ([]byte, error) {
	if s.IsEmpty() {
		return []byte("{}"), nil
	}
	type plain CorpusSummary
	return json.Marshal(plain(s))
}

type AnalysisResult struct {
	Subreddit        string          `json:"subreddit"`
	AnalysisDate     time.Time       `json:"analysis_date"`
	PostsAnalyzed    int             `json:"posts_analyzed"`
	CommentsAnalyzed int             `json:"comments_analyzed"`
	PostSummary      CorpusSummary   `json:"post_summary"`
	Posts            []ScoredPost    `json:"posts"`
	CommentSummary   *CorpusSummary  `json:"comment_summary,omitempty"`
	Comments         []ScoredComment `json:"comments,omitempty"`
}

// HasComments reports whether comment analysis produced any data.
func (r AnalysisResult) HasComments() bool {
	return r.CommentSummary != nil
}
