package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"imagetext/decode"
	"imagetext/internal/logging"
	"imagetext/search"
	"imagetext/transform"
)

// ImageSearcher finds and downloads one picture for a query.
type ImageSearcher interface {
	Image(ctx context.Context, query string) (url string, data []byte, err error)
}

// BatchError is returned when some items failed but the batch ran to the end.
type BatchError struct {
	Failed, Total int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d images failed", e.Failed, e.Total)
}

type Runner struct {
	Out, Err    io.Writer
	Width       int
	Jobs        int
	SaveGrayDir string
	Searcher    ImageSearcher

	grayNames map[string]int
}

type item struct {
	source string
	img    image.Image
	err    error
}

// Run renders every file, then every query, in the order given. A failed item
// is reported on Err and skipped. Only transform.ErrInvariant stops the batch.
func (r *Runner) Run(ctx context.Context, files, queries []string) error {
	total := len(files) + len(queries)
	failed := 0
	r.grayNames = make(map[string]int)

	for _, path := range files {
		img, err := decode.File(path)
		done, err := r.emit(item{source: path, img: img, err: err})
		if err != nil {
			return err
		}
		if !done {
			failed++
		}
	}

	for _, it := range r.fetchAll(ctx, queries) {
		done, err := r.emit(it)
		if err != nil {
			return err
		}
		if !done {
			failed++
		}
	}

	if failed > 0 {
		return &BatchError{Failed: failed, Total: total}
	}
	return nil
}

// fetchAll downloads and decodes all queries concurrently, keeping their order.
func (r *Runner) fetchAll(ctx context.Context, queries []string) []item {
	items := make([]item, len(queries))
	if len(queries) == 0 {
		return items
	}

	var g errgroup.Group
	g.SetLimit(max(r.Jobs, 1))
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			items[i] = r.fetch(ctx, query)
			return nil
		})
	}
	g.Wait()

	return items
}

func (r *Runner) fetch(ctx context.Context, query string) item {
	source := fmt.Sprintf("query %q", query)
	if r.Searcher == nil {
		return item{source: source, err: errors.New("image search is not configured")}
	}

	url, data, err := r.Searcher.Image(ctx, query)
	if err != nil {
		return item{source: source, err: err}
	}

	img, err := decode.Bytes(data, url)
	return item{source: source, img: img, err: err}
}

// emit prints one item. It reports false for a failed item and returns an
// error only when the whole run has to stop.
func (r *Runner) emit(it item) (bool, error) {
	log := logging.Logger().With("source", it.source)

	if it.err != nil {
		r.fail(it.source, it.err)
		return false, nil
	}

	gray, grid, err := transform.Pipeline(it.img, r.Width)
	if errors.Is(err, transform.ErrInvariant) {
		return false, fmt.Errorf("%s: %w", it.source, err)
	}
	if err != nil {
		r.fail(it.source, err)
		return false, nil
	}
	log.Debug("rendered", "columns", grid.Width(), "rows", grid.Height())

	if r.SaveGrayDir != "" {
		if err := saveGray(r.SaveGrayDir, r.grayName(it.source), gray); err != nil {
			log.Warn("could not save grayscale image", "err", err)
		}
	}

	if _, err := grid.WriteTo(r.Out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Runner) fail(source string, err error) {
	logging.Logger().Warn("image skipped", "source", source, "err", err)
	fmt.Fprintf(r.Err, "error: %s\n", describe(source, err))
}

// describe turns err into a message that says what went wrong and what to check.
func describe(source string, err error) string {
	var statusErr *search.StatusError
	var decErr *decode.DecodeError

	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("%s: file not found", source)
	case errors.Is(err, os.ErrPermission):
		return fmt.Sprintf("%s: permission denied", source)
	case errors.Is(err, decode.ErrRead) && errors.As(err, &decErr):
		return fmt.Sprintf("%s: cannot read file: %v", source, decErr.Err)
	case errors.Is(err, decode.ErrTooLarge):
		return fmt.Sprintf("%s: image is too large (at most %d pixels per side)", source, decode.MaxDimension)
	case errors.Is(err, decode.ErrFormat):
		return fmt.Sprintf("%s: not a supported image (png, jpeg, gif, bmp, tiff, webp, svg)", source)
	case errors.Is(err, decode.ErrEmpty), errors.Is(err, transform.ErrEmptyImage):
		return fmt.Sprintf("%s: image is empty", source)
	case errors.Is(err, transform.ErrInvalidWidth):
		return fmt.Sprintf("%s: width must be a positive number of columns", source)
	case errors.Is(err, search.ErrEmptyQuery):
		return "search query is empty"
	case errors.Is(err, search.ErrNoResults):
		return fmt.Sprintf("%s: no images found", source)
	case errors.Is(err, search.ErrTooLarge):
		return fmt.Sprintf("%s: image download too large", source)
	case errors.As(err, &statusErr):
		return fmt.Sprintf("%s: server answered %d for %s", source, statusErr.StatusCode, statusErr.URL)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s: timed out", source)
	case errors.Is(err, context.Canceled):
		return fmt.Sprintf("%s: canceled", source)
	}

	var urlErr interface{ Timeout() bool }
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Sprintf("%s: timed out", source)
	}
	return fmt.Sprintf("%s: %v", source, err)
}

func saveGray(dir, name string, gray *image.Gray) error {
	if gray.Bounds().Empty() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, gray); err != nil {
		return err
	}
	return f.Close()
}

// grayName returns grayBase(source), numbered "<name>_grey_2.png" and up when
// an earlier item of this run already took the name.
func (r *Runner) grayName(source string) string {
	if r.grayNames == nil {
		r.grayNames = make(map[string]int)
	}

	name := grayBase(source)
	r.grayNames[name]++
	if n := r.grayNames[name]; n > 1 {
		return fmt.Sprintf("%s_grey_%d.png", name, n)
	}
	return name + "_grey.png"
}

// grayBase reduces a path or a query label to a safe file name stem.
func grayBase(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	return strings.Trim(base, "_")
}
