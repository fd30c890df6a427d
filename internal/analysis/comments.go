package analysis

import (
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	COMMENT_PREVIEW_LEN = 100
	ELLIPSIS            = "..."
)

// AnalyzeComment scores the full body but keeps only a preview of it.
func AnalyzeComment(scorer TextScorer, comment models.RawComment) models.ScoredComment {
	return models.ScoredComment{
		Comment:   preview(comment.Body, COMMENT_PREVIEW_LEN),
		Score:     comment.Score,
		Sentiment: scorer.Score(comment.Body),
	}
}

func AnalyzeComments(scorer TextScorer, comments []models.RawComment) []models.ScoredComment {
	results := make([]models.ScoredComment, 0, len(comments))
	for _, c := range comments {
		results = append(results, AnalyzeComment(scorer, c))
	}
	return results
}

// preview keeps the first n characters and appends the ellipsis on top of
// them, so a truncated preview is n+3 characters long.
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + ELLIPSIS
}
