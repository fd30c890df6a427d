package export

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	REPORT_TOP_N         = 3
	REPORT_TITLE_LEN     = 60
	REPORT_TIME_FORMAT   = "2006-01-02 15:04:05"
	REPORT_UNKNOWN_LABEL = "unknown"
)

// Reporter renders the plain text summary report.
type Reporter struct {
	Clock clockwork.Clock
}

func NewReporter(clock clockwork.Clock) *Reporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reporter{Clock: clock}
}

func (r *Reporter) Render(result models.AnalysisResult) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	subreddit := result.Subreddit
	if subreddit == "" {
		subreddit = "unknown"
	}

	add("Reddit Sentiment Analysis Report")
	add("Generated on: %s", r.Clock.Now().Format(REPORT_TIME_FORMAT))
	add("Subreddit: r/%s", subreddit)
	add("")

	ps := result.PostSummary
	add("POST ANALYSIS:")
	add("  Total posts analyzed: %d", ps.TotalAnalyzed)
	add("  Positive posts: %d", ps.PositiveCount)
	add("  Negative posts: %d", ps.NegativeCount)
	add("  Neutral posts: %d", ps.NeutralCount)
	add("  Average polarity: %s", summaryPolarity(ps))
	add("  Overall sentiment: %s", summaryLabel(ps))
	add("")

	if cs := result.CommentSummary; cs != nil {
		add("COMMENT ANALYSIS:")
		add("  Total comments analyzed: %d", cs.TotalAnalyzed)
		add("  Positive comments: %d", cs.PositiveCount)
		add("  Negative comments: %d", cs.NegativeCount)
		add("  Neutral comments: %d", cs.NeutralCount)
		add("  Average polarity: %s", summaryPolarity(*cs))
		add("")
	}

	if len(result.Posts) > 0 {
		ranked := rankByPolarity(result.Posts)

		add("TOP POSITIVE POSTS:")
		for i, p := range ranked[:min(REPORT_TOP_N, len(ranked))] {
			if p.OverallSentiment.Polarity > 0 {
				lines = append(lines, postLines(i+1, p)...)
			}
		}

		add("")
		add("TOP NEGATIVE POSTS:")
		var negative []models.ScoredPost
		for i := len(ranked) - 1; i >= 0; i-- {
			if ranked[i].OverallSentiment.Polarity < 0 {
				negative = append(negative, ranked[i])
			}
		}
		for i, p := range negative[:min(REPORT_TOP_N, len(negative))] {
			lines = append(lines, postLines(i+1, p)...)
		}
	}

	return strings.Join(lines, "\n")
}

func (r *Reporter) Export(path string, result models.AnalysisResult) (string, error) {
	report := r.Render(result)
	err := writeFile(path, func(f *os.File) error {
		_, err := f.WriteString(report)
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Generated summary report: %s", path), nil
}

// rankByPolarity orders posts by overall polarity, highest first. Ties keep
// their input order, so walking the result backwards yields the most
// negative posts with ties in reverse input order.
func rankByPolarity(posts []models.ScoredPost) []models.ScoredPost {
	ranked := append([]models.ScoredPost(nil), posts...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallSentiment.Polarity > ranked[j].OverallSentiment.Polarity
	})
	return ranked
}

// postLines always appends the ellipsis, even to short titles.
func postLines(rank int, p models.ScoredPost) []string {
	title := []rune(p.Title)
	if len(title) > REPORT_TITLE_LEN {
		title = title[:REPORT_TITLE_LEN]
	}
	return []string{
		fmt.Sprintf("  %d. %s...", rank, string(title)),
		fmt.Sprintf("     Score: %d, Polarity: %s", p.Score, FormatFloat(p.OverallSentiment.Polarity)),
	}
}

func summaryPolarity(s models.CorpusSummary) string {
	if s.IsEmpty() {
		return strconv.Itoa(0)
	}
	return FormatFloat(s.AveragePolarity)
}

func summaryLabel(s models.CorpusSummary) string {
	if s.IsEmpty() {
		return REPORT_UNKNOWN_LABEL
	}
	return string(s.OverallSentiment)
}
