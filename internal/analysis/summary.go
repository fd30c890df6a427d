package analysis

import (
	"github.com/spacesedan/sentiscope/internal/models"
)

// Summarize counts labels and averages polarity over a corpus. The overall
// label is derived from the average polarity, not from the majority label.
// An empty corpus yields an empty summary.
func Summarize[T models.HasSentimentScore](items []T) models.CorpusSummary {
	if len(items) == 0 {
		return models.CorpusSummary{}
	}

	summary := models.CorpusSummary{TotalAnalyzed: len(items)}

	var total float64
	for _, item := range items {
		score := item.SentimentScore()
		total += score.Polarity

		switch score.Label {
		case models.LabelPositive:
			summary.PositiveCount++
		case models.LabelNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
	}

	summary.AveragePolarity = models.Round3(total / float64(len(items)))
	summary.OverallSentiment = models.LabelFor(summary.AveragePolarity)

	return summary
}
