package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenMarkdown_DropsMarkupAndLinkTargets(t *testing.T) {
	assert.Equal(t, "Great docs", FlattenMarkdown("**Great** [docs](https://example.com)"))
}

func TestFlattenMarkdown_UnescapesEntities(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", FlattenMarkdown("Tom & Jerry"))
}

func TestFlattenMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", FlattenMarkdown(""))
}
