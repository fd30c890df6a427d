package analysis

import (
	"github.com/spacesedan/sentiscope/internal/models"
)

// TextScorer is the piece of the sentiment package this package needs.
type TextScorer interface {
	Score(text string) models.SentimentScore
}

// AnalyzePost scores the title and, when present, the body of a post and
// averages the two into an overall score. A post without a body counts as
// neutral content, which halves the title's polarity.
func AnalyzePost(scorer TextScorer, post models.RawPost) models.ScoredPost {
	title := scorer.Score(post.Title)

	content := models.NeutralScore()
	if post.Selftext != "" {
		content = scorer.Score(post.Selftext)
	}

	return models.ScoredPost{
		Title:            post.Title,
		Score:            post.Score,
		NumComments:      post.NumComments,
		TitleSentiment:   title,
		ContentSentiment: content,
		OverallSentiment: combine(title, content),
	}
}

func AnalyzePosts(scorer TextScorer, posts []models.RawPost) []models.ScoredPost {
	results := make([]models.ScoredPost, 0, len(posts))
	for _, post := range posts {
		results = append(results, AnalyzePost(scorer, post))
	}
	return results
}

func combine(a, b models.SentimentScore) models.SentimentScore {
	polarity := models.Round3((a.Polarity + b.Polarity) / 2)
	subjectivity := models.Round3((a.Subjectivity + b.Subjectivity) / 2)

	return models.SentimentScore{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        models.LabelFor(polarity),
	}
}
