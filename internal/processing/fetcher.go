package processing

import (
	"context"

	"github.com/spacesedan/sentiscope/internal/models"
)

// Fetcher is the contract the pipeline needs from a Reddit source.
type Fetcher interface {
	FetchPosts(ctx context.Context, subreddit string, limit int, sort models.SortMode) ([]models.RawPost, error)
	FetchComments(ctx context.Context, postID string, limit int) ([]models.RawComment, error)
}
