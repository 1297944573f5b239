package fetcher

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Open returns a reader for source: a URL is downloaded with f, anything
// else is opened as a local file. A nil f is only valid for local sources.
func Open(ctx context.Context, f Fetcher, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, eris.New("fetcher: empty source")
	}
	if IsRemote(source) {
		if f == nil {
			return nil, eris.Errorf("fetcher: no http fetcher for %s", source)
		}
		return f.Download(ctx, source)
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", source)
	}
	return file, nil
}
