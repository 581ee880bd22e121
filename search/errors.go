package search

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrNoResults  = errors.New("no image results")
	ErrTooLarge   = errors.New("response exceeds size limit")
)

// StatusError reports a non-2xx answer from the search service or an image host.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}
