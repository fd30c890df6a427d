package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	mentionPattern    = regexp.MustCompile(`/u/\w+|/r/\w+`)
	nonAlnumPattern   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize strips links, user and subreddit mentions and punctuation,
// leaving ASCII letters and digits separated by single spaces.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = nonAlnumPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
