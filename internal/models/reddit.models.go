package models

import (
	"encoding/json"
	"time"
)

// RawPost is a subreddit submission as handed to the analysis pipeline.
type RawPost struct {
	Title       string    `json:"title"`
	Selftext    string    `json:"selftext"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	CreatedUTC  time.Time `json:"created_utc"`
	URL         string    `json:"url"`
}

type RawComment struct {
	Body       string    `json:"body"`
	Score      int       `json:"score"`
	CreatedUTC time.Time `json:"created_utc"`
}

type RedditAPIResponse struct {
	Kind string        `json:"kind"`
	Data RedditAPIData `json:"data"`
}

type RedditAPIData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

// RedditAPIChild keeps Data raw so a single malformed entry can be skipped
// without failing the whole listing.
type RedditAPIChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type RedditAPIPostData struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	ID          string  `json:"id"`
}

type RedditAPICommentData struct {
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	ID         string  `json:"id"`
	// Replies is either an empty string or a nested listing.
	Replies json.RawMessage `json:"replies"`
}

// UnixToTime converts Reddit's fractional epoch seconds.
func UnixToTime(sec float64) time.Time {
	whole := int64(sec)
	frac := int64((sec - float64(whole)) * float64(time.Second))
	return time.Unix(whole, frac).UTC()
}
