package search

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImageURLs(t *testing.T) {
	base, err := url.Parse("https://search.example/images?q=x")
	require.NoError(t, err)

	page := `<html><body>
<img src="https://cdn.example/a.jpg">
<img src="/th?id=1" data-src="//cdn.example/b.png">
<img src="javascript:alert(1)">
<img src="">
<a href="https://cdn.example/not-an-img.jpg">link</a>
<img src="https://cdn.example/a.jpg">
</body></html>`

	urls, err := extractImageURLs(strings.NewReader(page), base)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example/a.jpg",
		"https://search.example/th?id=1",
		"https://cdn.example/b.png",
	}, urls)
}

func TestAbsolute(t *testing.T) {
	_, ok := absolute(nil, "/relative/without/base.png")
	assert.False(t, ok)

	u, ok := absolute(nil, " http://x.example/p.gif ")
	assert.True(t, ok)
	assert.Equal(t, "http://x.example/p.gif", u)
}
