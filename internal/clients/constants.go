package clients

import "time"

const (
	MAX_RETRIES     = 5
	INITIAL_BACKOFF = 1 * time.Second
	MAX_BACKOFF     = 32 * time.Second
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"

	REDDIT_PAGE_LIMIT             = 100
	REDDIT_TOP_TIME_FILTER        = "all"
	REDDIT_DEFAULT_REQ_PER_MINUTE = 60
)
