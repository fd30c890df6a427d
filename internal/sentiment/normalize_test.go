package sentiment

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
}

func TestNormalize_RemovesURLs(t *testing.T) {
	assert.Equal(t, "Check and now", Normalize("Check https://example.com/a?b=c and www.example.org now"))
	assert.Equal(t, "see", Normalize("see http://x.y/z"))
}

func TestNormalize_RemovesMentions(t *testing.T) {
	assert.Equal(t, "thanks and", Normalize("thanks /u/spez and /r/golang!"))
}

func TestNormalize_ReplacesPunctuationAndCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Hello world it s great", Normalize("  Hello,\tworld!!\n\nit's   great.  "))
}

func TestNormalize_NonASCIIBecomesSpace(t *testing.T) {
	assert.Equal(t, "H llo w rld", Normalize("Héllo wörld"))
}

func TestNormalize_OnlyPunctuation(t *testing.T) {
	assert.Equal(t, "", Normalize("?!... ---"))
}

var normalizedShape = regexp.MustCompile(`^([A-Za-z0-9]+( [A-Za-z0-9]+)*)?$`)

func TestNormalize_OutputShape(t *testing.T) {
	alphabet := []rune("abcXYZ019 \t\n.,!?/:_-#@éü😀hwtps")
	fragments := []string{"http://a.b/c", "www.x.com", "/u/bob", "/r/go", "https:", " "}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for j := 0; j < rng.Intn(60); j++ {
			if rng.Intn(8) == 0 {
				b.WriteString(fragments[rng.Intn(len(fragments))])
				continue
			}
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		in := b.String()
		out := Normalize(in)

		assert.Regexp(t, normalizedShape, out, "input %q", in)
		assert.NotContains(t, out, "://", "input %q", in)
		assert.NotContains(t, out, "/u/", "input %q", in)
		assert.NotContains(t, out, "/r/", "input %q", in)
	}
}
