package sentiment

import (
	"github.com/jonreiter/govader"
	"github.com/spacesedan/sentiscope/internal/models"
)

type Option func(*Scorer)

// WithMarkdown flattens Reddit markdown before normalizing.
func WithMarkdown(enabled bool) Option {
	return func(s *Scorer) {
		s.markdown = enabled
	}
}

// Scorer assigns a polarity/subjectivity score to a piece of text using the
// VADER lexicon. It is safe for concurrent use.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
	markdown bool
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score never fails: text that normalizes to nothing gets the neutral
// zero score and the lexicon is not consulted.
//
// Polarity is VADER's compound score. Subjectivity is the share of the
// text VADER did not consider neutral.
func (s *Scorer) Score(text string) models.SentimentScore {
	if s.markdown {
		text = FlattenMarkdown(text)
	}

	cleaned := Normalize(text)
	if cleaned == "" {
		return models.NeutralScore()
	}

	scores := s.analyzer.PolarityScores(cleaned)

	polarity := models.Round3(clamp(scores.Compound, -1, 1))
	subjectivity := models.Round3(clamp(scores.Positive+scores.Negative, 0, 1))

	return models.SentimentScore{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        models.LabelFor(polarity),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
