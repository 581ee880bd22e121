package search

import (
	"io"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/html"
)

var imageAttrs = []string{"src", "data-src", "data-original"}

// extractImageURLs walks an HTML result page and returns absolute http(s) image
// URLs in document order without duplicates. Relative URLs are resolved against base.
func extractImageURLs(r io.Reader, base *url.URL) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var found []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, attr := range n.Attr {
				if !lo.Contains(imageAttrs, attr.Key) {
					continue
				}
				if u, ok := absolute(base, attr.Val); ok {
					found = append(found, u)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return lo.Uniq(found), nil
}

func absolute(base *url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}
