package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.NotContains(t, Sanitize(`<p onclick="x()">hi</p><script>alert(1)</script>`), "script")
	assert.NotContains(t, Sanitize(`<p onclick="x()">hi</p>`), "onclick")
	assert.Contains(t, Sanitize("<p>hi</p>"), "<p>hi</p>")
	assert.Equal(t, "Q&amp;A", Sanitize("Q&A"))
}
