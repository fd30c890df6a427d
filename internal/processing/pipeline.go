package processing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	DEFAULT_POST_LIMIT    = 10
	DEFAULT_COMMENT_LIMIT = 10
	REDDIT_DOMAIN         = "reddit.com"
	GALLERY_SEGMENT       = "gallery"
)

var ErrNoPosts = errors.New("no posts found")

// AnalysisObserver is told about every scored batch.
type AnalysisObserver interface {
	ObservePosts(posts []models.ScoredPost)
	ObserveComments(comments []models.ScoredComment)
}

type RunOptions struct {
	Subreddit    string
	Limit        int
	Sort         models.SortMode
	Comments     bool
	CommentLimit int
}

type Pipeline struct {
	Fetcher  Fetcher
	Scorer   analysis.TextScorer
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Observer AnalysisObserver
	// Progress receives one human readable line per stage. Optional.
	Progress io.Writer
}

// Run fetches, scores and summarizes one subreddit. It returns ErrNoPosts
// when the listing is empty.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (models.AnalysisResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = DEFAULT_POST_LIMIT
	}
	if opts.CommentLimit <= 0 {
		opts.CommentLimit = DEFAULT_COMMENT_LIMIT
	}
	if opts.Sort == "" {
		opts.Sort = models.SortHot
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p.progress("Fetching %d posts from r/%s (sorted by %s)", opts.Limit, opts.Subreddit, opts.Sort)
	posts, err := p.Fetcher.FetchPosts(ctx, opts.Subreddit, opts.Limit, opts.Sort)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("[Pipeline] fetch posts: %w", err)
	}
	if len(posts) == 0 {
		return models.AnalysisResult{}, ErrNoPosts
	}

	p.progress("Analyzing post sentiment...")
	scoredPosts := analysis.AnalyzePosts(p.Scorer, posts)
	if p.Observer != nil {
		p.Observer.ObservePosts(scoredPosts)
	}

	var scoredComments []models.ScoredComment
	if opts.Comments {
		p.progress("Analyzing comments...")
		scoredComments, err = p.analyzeComments(ctx, logger, posts, opts.CommentLimit)
		if err != nil {
			return models.AnalysisResult{}, err
		}
	}

	result := models.AnalysisResult{
		Subreddit:        opts.Subreddit,
		AnalysisDate:     clock.Now(),
		PostsAnalyzed:    len(scoredPosts),
		CommentsAnalyzed: len(scoredComments),
		PostSummary:      analysis.Summarize(scoredPosts),
		Posts:            scoredPosts,
	}

	if len(scoredComments) > 0 {
		summary := analysis.Summarize(scoredComments)
		result.CommentSummary = &summary
		result.Comments = scoredComments
	}

	logger.Info("[Pipeline] Analysis complete",
		slog.String("subreddit", opts.Subreddit),
		slog.Int("posts", result.PostsAnalyzed),
		slog.Int("comments", result.CommentsAnalyzed),
		slog.String("overall", string(result.PostSummary.OverallSentiment)))

	return result, nil
}

// analyzeComments only follows posts hosted on Reddit itself; link posts
// point elsewhere and carry no submission id in their URL.
func (p *Pipeline) analyzeComments(ctx context.Context, logger *slog.Logger, posts []models.RawPost, limit int) ([]models.ScoredComment, error) {
	var results []models.ScoredComment

	for _, post := range posts {
		if !strings.Contains(post.URL, REDDIT_DOMAIN) {
			logger.Debug("[Pipeline] Skipping external link post", slog.String("url", post.URL))
			continue
		}

		id := SubmissionID(post.URL)
		if id == "" {
			logger.Warn("[Pipeline] Could not extract submission id", slog.String("url", post.URL))
			continue
		}

		comments, err := p.Fetcher.FetchComments(ctx, id, limit)
		if err != nil {
			return nil, fmt.Errorf("[Pipeline] fetch comments for %s: %w", id, err)
		}

		scored := analysis.AnalyzeComments(p.Scorer, comments)
		if p.Observer != nil {
			p.Observer.ObserveComments(scored)
		}
		results = append(results, scored...)
	}

	return results, nil
}

// SubmissionID returns the second-to-last path segment of a Reddit post URL,
// ignoring a trailing slash. Gallery links carry the id last.
//
//	https://www.reddit.com/r/golang/comments/abc123/some_title/ -> abc123
//	https://www.reddit.com/gallery/abc123                       -> abc123
func SubmissionID(postURL string) string {
	segments := strings.Split(strings.TrimRight(postURL, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	if segments[len(segments)-2] == GALLERY_SEGMENT {
		return segments[len(segments)-1]
	}
	return segments[len(segments)-2]
}

func (p *Pipeline) progress(format string, args ...any) {
	if p.Progress != nil {
		fmt.Fprintf(p.Progress, format+"\n", args...)
	}
}
