package sentiment

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var stripPolicy = bluemonday.StrictPolicy()

// FlattenMarkdown renders Reddit markdown and drops all markup, keeping the
// visible text only. Link targets disappear, link labels stay.
func FlattenMarkdown(input string) string {
	if input == "" {
		return ""
	}

	rendered := blackfriday.Run([]byte(input), blackfriday.WithExtensions(blackfriday.CommonExtensions))
	text := html.UnescapeString(stripPolicy.Sanitize(string(rendered)))

	return strings.Join(strings.Fields(text), " ")
}
