package processing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	posts       []models.RawPost
	comments    map[string][]models.RawComment
	postErr     error
	commentErr  error
	postCalls   int
	commentIDs  []string
	lastLimit   int
	lastSort    models.SortMode
	commentCaps []int
}

func (f *fakeFetcher) FetchPosts(_ context.Context, _ string, limit int, sort models.SortMode) ([]models.RawPost, error) {
	f.postCalls++
	f.lastLimit = limit
	f.lastSort = sort
	return f.posts, f.postErr
}

func (f *fakeFetcher) FetchComments(_ context.Context, postID string, limit int) ([]models.RawComment, error) {
	f.commentIDs = append(f.commentIDs, postID)
	f.commentCaps = append(f.commentCaps, limit)
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	return f.comments[postID], nil
}

type countingObserver struct {
	posts, comments int
}

func (o *countingObserver) ObservePosts(posts []models.ScoredPost)          { o.posts += len(posts) }
func (o *countingObserver) ObserveComments(comments []models.ScoredComment) { o.comments += len(comments) }

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestPipeline(f Fetcher) *Pipeline {
	return &Pipeline{
		Fetcher: f,
		Scorer:  sentiment.NewScorer(),
		Clock:   clockwork.NewFakeClockAt(testNow),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func samplePosts() []models.RawPost {
	return []models.RawPost{
		{Title: "I love this community", Score: 10, URL: "https://www.reddit.com/r/golang/comments/abc123/i_love_this/"},
		{Title: "This release is terrible", Selftext: "Everything broke, awful", Score: 2, URL: "https://www.reddit.com/r/golang/comments/def456/terrible/"},
		{Title: "Blog post", Score: 5, URL: "https://go.dev/blog/something"},
	}
}

func TestRun_PostsOnly(t *testing.T) {
	f := &fakeFetcher{posts: samplePosts()}

	result, err := newTestPipeline(f).Run(context.Background(), RunOptions{Subreddit: "golang"})
	require.NoError(t, err)

	assert.Equal(t, "golang", result.Subreddit)
	assert.Equal(t, testNow, result.AnalysisDate)
	assert.Equal(t, 10, f.lastLimit)
	assert.Equal(t, models.SortHot, f.lastSort)
	assert.Len(t, result.Posts, 3)
	assert.Equal(t, 3, result.PostsAnalyzed)
	assert.Equal(t, 3, result.PostSummary.TotalAnalyzed)
	assert.Nil(t, result.CommentSummary)
	assert.Empty(t, result.Comments)
	assert.Empty(t, f.commentIDs)
}

func TestRun_WithComments(t *testing.T) {
	f := &fakeFetcher{
		posts: samplePosts(),
		comments: map[string][]models.RawComment{
			"abc123": {{Body: "Great work, thanks!", Score: 3}},
			"def456": {{Body: "Worst release ever", Score: 1}, {Body: "ok", Score: 0}},
		},
	}
	obs := &countingObserver{}
	p := newTestPipeline(f)
	p.Observer = obs

	result, err := p.Run(context.Background(), RunOptions{Subreddit: "golang", Comments: true, CommentLimit: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"abc123", "def456"}, f.commentIDs)
	assert.Equal(t, []int{5, 5}, f.commentCaps)
	require.Len(t, result.Comments, 3)
	assert.Equal(t, "Great work, thanks!", result.Comments[0].Comment)
	require.NotNil(t, result.CommentSummary)
	assert.Equal(t, 3, result.CommentSummary.TotalAnalyzed)
	assert.Equal(t, 3, result.CommentsAnalyzed)
	assert.Equal(t, 3, obs.posts)
	assert.Equal(t, 3, obs.comments)
}

func TestRun_CommentsRequestedButNoneFound(t *testing.T) {
	f := &fakeFetcher{posts: samplePosts()}

	result, err := newTestPipeline(f).Run(context.Background(), RunOptions{Subreddit: "golang", Comments: true})
	require.NoError(t, err)

	assert.Nil(t, result.CommentSummary)
	assert.Nil(t, result.Comments)
	assert.Equal(t, []int{DEFAULT_COMMENT_LIMIT, DEFAULT_COMMENT_LIMIT}, f.commentCaps)
}

func TestRun_NoPosts(t *testing.T) {
	_, err := newTestPipeline(&fakeFetcher{}).Run(context.Background(), RunOptions{Subreddit: "empty"})
	assert.ErrorIs(t, err, ErrNoPosts)
}

func TestRun_FetchErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := newTestPipeline(&fakeFetcher{postErr: boom}).Run(context.Background(), RunOptions{Subreddit: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestRun_CommentErrorPropagates(t *testing.T) {
	boom := errors.New("comments unavailable")
	f := &fakeFetcher{posts: samplePosts(), commentErr: boom}

	_, err := newTestPipeline(f).Run(context.Background(), RunOptions{Subreddit: "x", Comments: true})
	assert.ErrorIs(t, err, boom)
}

func TestRun_ReportsProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPipeline(&fakeFetcher{posts: samplePosts()})
	p.Progress = &buf

	_, err := p.Run(context.Background(), RunOptions{Subreddit: "golang", Limit: 3, Sort: models.SortTop, Comments: true})
	require.NoError(t, err)

	assert.Equal(t, "Fetching 3 posts from r/golang (sorted by top)\nAnalyzing post sentiment...\nAnalyzing comments...\n", buf.String())
}

func TestSubmissionID(t *testing.T) {
	assert.Equal(t, "abc123", SubmissionID("https://www.reddit.com/r/golang/comments/abc123/some_title/"))
	assert.Equal(t, "abc123", SubmissionID("https://www.reddit.com/r/golang/comments/abc123/some_title"))
	assert.Equal(t, "", SubmissionID("https://www.reddit.com/"))
	assert.Equal(t, "", SubmissionID("nothing"))
}

func TestSubmissionID_Gallery(t *testing.T) {
	assert.Equal(t, "1abcde", SubmissionID("https://www.reddit.com/gallery/1abcde"))
	assert.Equal(t, "1abcde", SubmissionID("https://www.reddit.com/gallery/1abcde/"))
}

func TestRun_GalleryPostFetchesByID(t *testing.T) {
	f := &fakeFetcher{posts: []models.RawPost{
		{Title: "Look at these", URL: "https://www.reddit.com/gallery/1abcde"},
	}}

	_, err := newTestPipeline(f).Run(context.Background(), RunOptions{Subreddit: "pics", Comments: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1abcde"}, f.commentIDs)
}
