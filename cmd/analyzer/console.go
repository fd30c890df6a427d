package main

import (
	"fmt"
	"io"

	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	VERBOSE_POST_COUNT = 5
	VERBOSE_TITLE_LEN  = 50
)

func printSummary(w io.Writer, result models.AnalysisResult) {
	s := result.PostSummary
	fmt.Fprintf(w, "\n--- Analysis Summary for r/%s ---\n", result.Subreddit)
	fmt.Fprintf(w, "Posts analyzed: %d\n", s.TotalAnalyzed)
	fmt.Fprintf(w, "Positive: %d\n", s.PositiveCount)
	fmt.Fprintf(w, "Negative: %d\n", s.NegativeCount)
	fmt.Fprintf(w, "Neutral: %d\n", s.NeutralCount)
	fmt.Fprintf(w, "Average polarity: %s\n", export.FormatFloat(s.AveragePolarity))
	fmt.Fprintf(w, "Overall sentiment: %s\n", s.OverallSentiment)

	if !result.HasComments() {
		return
	}

	c := *result.CommentSummary
	fmt.Fprintf(w, "\nComments analyzed: %d\n", c.TotalAnalyzed)
	fmt.Fprintf(w, "Positive: %d\n", c.PositiveCount)
	fmt.Fprintf(w, "Negative: %d\n", c.NegativeCount)
	fmt.Fprintf(w, "Neutral: %d\n", c.NeutralCount)
	fmt.Fprintf(w, "Average polarity: %s\n", export.FormatFloat(c.AveragePolarity))
}

func printPosts(w io.Writer, posts []models.ScoredPost) {
	fmt.Fprintln(w, "\n--- Individual Post Results ---")
	for i, post := range posts[:min(len(posts), VERBOSE_POST_COUNT)] {
		title := []rune(post.Title)
		title = title[:min(len(title), VERBOSE_TITLE_LEN)]

		fmt.Fprintf(w, "\nPost %d: %s...\n", i+1, string(title))
		fmt.Fprintf(w, "Score: %d, Sentiment: %s\n", post.Score, post.OverallSentiment.Label)
		fmt.Fprintf(w, "Polarity: %s\n", export.FormatFloat(post.OverallSentiment.Polarity))
	}
}
