package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/sentiscope/internal/models"
)

var (
	postHeader = []string{
		"title", "score", "num_comments",
		"title_polarity", "title_subjectivity", "title_sentiment",
		"content_polarity", "content_subjectivity", "content_sentiment",
		"overall_polarity", "overall_subjectivity", "overall_sentiment",
	}
	commentHeader = []string{"comment", "score", "polarity", "subjectivity", "sentiment"}
)

func WritePostsCSV(w io.Writer, posts []models.ScoredPost) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(postHeader); err != nil {
		return err
	}

	for _, p := range posts {
		row := []string{p.Title, strconv.Itoa(p.Score), strconv.Itoa(p.NumComments)}
		row = append(row, scoreColumns(p.TitleSentiment)...)
		row = append(row, scoreColumns(p.ContentSentiment)...)
		row = append(row, scoreColumns(p.OverallSentiment)...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteCommentsCSV(w io.Writer, comments []models.ScoredComment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(commentHeader); err != nil {
		return err
	}

	for _, c := range comments {
		row := append([]string{c.Comment, strconv.Itoa(c.Score)}, scoreColumns(c.Sentiment)...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the posts table to path and, when comments were analyzed,
// the comments table next to it (see CommentsPath).
func ExportCSV(path string, result models.AnalysisResult) (string, error) {
	err := writeFile(path, func(f *os.File) error {
		return WritePostsCSV(f, result.Posts)
	})
	if err != nil {
		return "", err
	}
	message := fmt.Sprintf("Exported %d posts to %s", len(result.Posts), path)

	if len(result.Comments) == 0 {
		return message, nil
	}

	commentsPath := CommentsPath(path)
	err = writeFile(commentsPath, func(f *os.File) error {
		return WriteCommentsCSV(f, result.Comments)
	})
	if err != nil {
		return "", err
	}

	return message + "\n" + fmt.Sprintf("Exported %d comments to %s", len(result.Comments), commentsPath), nil
}

func scoreColumns(s models.SentimentScore) []string {
	return []string{FormatFloat(s.Polarity), FormatFloat(s.Subjectivity), string(s.Label)}
}

// FormatFloat prints the shortest exact representation, keeping a trailing
// ".0" on whole numbers.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
