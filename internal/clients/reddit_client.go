package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

var (
	ErrMaxRetries        = errors.New("max retries reached")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMissingCredential = errors.New("missing reddit credentials")
)

// RequestObserver receives one call per HTTP attempt. kind is "listing"
// or "comments"; outcome is the status code or "error".
type RequestObserver interface {
	ObserveRedditRequest(kind, outcome string, d time.Duration)
}

type RedditOptions struct {
	ClientID     string
	ClientSecret string
	UserAgent    string

	// Overridable for tests.
	BaseURL    string
	TokenURL   string
	HTTPClient *http.Client

	RequestsPerMinute int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	MaxRetries        int

	Observer RequestObserver
	Logger   *slog.Logger
}

// RedditClient reads subreddit listings and comment trees with app-only
// OAuth. It is safe for concurrent use.
type RedditClient struct {
	Config *clientcredentials.Config

	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	observer  RequestObserver
	logger    *slog.Logger
	authCtx   context.Context

	initialBackoff time.Duration
	maxBackoff     time.Duration
	maxRetries     int

	mu     sync.Mutex
	client *http.Client
}

func NewRedditClient(opts RedditOptions) (*RedditClient, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" || opts.UserAgent == "" {
		return nil, fmt.Errorf("[RedditClient] %w", ErrMissingCredential)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = REDDIT_API_URL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = REDDIT_AUTH_URL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.RequestsPerMinute == 0 {
		opts.RequestsPerMinute = REDDIT_DEFAULT_REQ_PER_MINUTE
	}
	if opts.InitialBackoff == 0 {
		opts.InitialBackoff = INITIAL_BACKOFF
	}
	if opts.MaxBackoff == 0 {
		opts.MaxBackoff = MAX_BACKOFF
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = MAX_RETRIES
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	// Reddit rejects requests without a descriptive User-Agent, token
	// requests included, so the agent is set on the base transport.
	base := opts.HTTPClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	authClient := &http.Client{
		Timeout:   opts.HTTPClient.Timeout,
		Transport: userAgentTransport{userAgent: opts.UserAgent, base: base},
	}

	rc := &RedditClient{
		Config: &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     opts.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		baseURL:        opts.BaseURL,
		userAgent:      opts.UserAgent,
		limiter:        rate.NewLimiter(limit, 1),
		observer:       opts.Observer,
		logger:         opts.Logger,
		authCtx:        context.WithValue(context.Background(), oauth2.HTTPClient, authClient),
		initialBackoff: opts.InitialBackoff,
		maxBackoff:     opts.MaxBackoff,
		maxRetries:     opts.MaxRetries,
	}
	rc.client = rc.Config.Client(rc.authCtx)

	return rc, nil
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.client = rc.Config.Client(rc.authCtx)
}

func (rc *RedditClient) httpClient() *http.Client {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.client
}

// FetchPosts reads up to limit posts from a subreddit listing, following
// pagination when limit exceeds a single page. Entries that cannot be
// decoded are skipped.
func (rc *RedditClient) FetchPosts(ctx context.Context, subreddit string, limit int, sort models.SortMode) ([]models.RawPost, error) {
	if limit <= 0 {
		return nil, nil
	}
	if sort == "" {
		sort = models.SortHot
	}

	endpoint := fmt.Sprintf("/r/%s/%s", url.PathEscape(subreddit), sort)
	posts := make([]models.RawPost, 0, min(limit, REDDIT_PAGE_LIMIT))
	after := ""

	for len(posts) < limit {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(min(limit-len(posts), REDDIT_PAGE_LIMIT)))
		query.Set("raw_json", "1")
		// the API narrows top to the last day unless told otherwise
		if sort == models.SortTop {
			query.Set("t", REDDIT_TOP_TIME_FILTER)
		}
		if after != "" {
			query.Set("after", after)
		}

		body, err := rc.get(ctx, "listing", endpoint, query)
		if err != nil {
			return nil, fmt.Errorf("[RedditClient] failed to fetch r/%s: %w", subreddit, err)
		}

		var listing models.RedditAPIResponse
		if err := json.Unmarshal(body, &listing); err != nil {
			return nil, fmt.Errorf("[RedditClient] failed to decode r/%s listing: %w", subreddit, err)
		}

		for _, child := range listing.Data.Children {
			post, ok := rc.decodePost(child)
			if !ok {
				continue
			}
			posts = append(posts, post)
			if len(posts) == limit {
				break
			}
		}

		if listing.Data.After == "" || len(listing.Data.Children) == 0 {
			break
		}
		after = listing.Data.After
	}

	rc.logger.Debug("[RedditClient] Fetched posts",
		slog.String("subreddit", subreddit),
		slog.String("sort", string(sort)),
		slog.Int("count", len(posts)))

	return posts, nil
}

// FetchComments returns up to limit comments of a submission in
// breadth-first order. "load more" stubs and deleted comments are dropped.
func (rc *RedditClient) FetchComments(ctx context.Context, postID string, limit int) ([]models.RawComment, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("raw_json", "1")

	body, err := rc.get(ctx, "comments", "/comments/"+url.PathEscape(postID), query)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to fetch comments for %s: %w", postID, err)
	}

	var listings []models.RedditAPIResponse
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to decode comments for %s: %w", postID, err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	comments := make([]models.RawComment, 0, min(limit, REDDIT_PAGE_LIMIT))
	queue := listings[1].Data.Children

	for len(queue) > 0 && len(comments) < limit {
		child := queue[0]
		queue = queue[1:]

		if child.Kind != "t1" {
			continue
		}

		var data models.RedditAPICommentData
		if err := json.Unmarshal(child.Data, &data); err != nil {
			rc.logger.Warn("[RedditClient] Skipping malformed comment",
				slog.String("post_id", postID),
				slog.String("error", err.Error()))
			continue
		}

		if replies := bytes.TrimSpace(data.Replies); len(replies) > 0 && replies[0] == '{' {
			var nested models.RedditAPIResponse
			if err := json.Unmarshal(replies, &nested); err == nil {
				queue = append(queue, nested.Data.Children...)
			}
		}

		if data.Body == "[deleted]" {
			continue
		}

		comments = append(comments, models.RawComment{
			Body:       data.Body,
			Score:      data.Score,
			CreatedUTC: models.UnixToTime(data.CreatedUTC),
		})
	}

	return comments, nil
}

func (rc *RedditClient) decodePost(child models.RedditAPIChild) (models.RawPost, bool) {
	if child.Kind != "t3" {
		rc.logger.Warn("[RedditClient] Skipping non-post listing entry", slog.String("kind", child.Kind))
		return models.RawPost{}, false
	}

	var data models.RedditAPIPostData
	if err := json.Unmarshal(child.Data, &data); err != nil {
		rc.logger.Warn("[RedditClient] Skipping malformed post", slog.String("error", err.Error()))
		return models.RawPost{}, false
	}
	if data.Title == "" {
		rc.logger.Warn("[RedditClient] Skipping post without title", slog.String("id", data.ID))
		return models.RawPost{}, false
	}

	return models.RawPost{
		Title:       data.Title,
		Selftext:    data.Selftext,
		Score:       data.Score,
		NumComments: data.NumComments,
		CreatedUTC:  models.UnixToTime(data.CreatedUTC),
		URL:         data.URL,
	}, true
}

// get performs a rate limited GET, refreshing the token once on 401 and
// backing off on 429 and 5xx responses.
func (rc *RedditClient) get(ctx context.Context, kind, endpoint string, query url.Values) ([]byte, error) {
	target := rc.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	backoff := rc.initialBackoff
	refreshed := false

	for attempt := 1; attempt <= rc.maxRetries; attempt++ {
		if err := rc.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", rc.userAgent)

		start := time.Now()
		resp, err := rc.httpClient().Do(req)
		if err != nil {
			rc.observe(kind, "error", start)
			return nil, err
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		rc.observe(kind, strconv.Itoa(resp.StatusCode), start)

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, readErr
			}
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized && !refreshed:
			rc.logger.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
			rc.RefreshClient()
			refreshed = true
			continue

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			rc.logger.Warn("[RedditClient] Retrying request",
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff))

		default:
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}

		if attempt == rc.maxRetries {
			break
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		backoff *= 2
		if backoff > rc.maxBackoff {
			backoff = rc.maxBackoff
		}
	}

	return nil, ErrMaxRetries
}

func (rc *RedditClient) observe(kind, outcome string, start time.Time) {
	if rc.observer != nil {
		rc.observer.ObserveRedditRequest(kind, outcome, time.Since(start))
	}
}

type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
