package skillmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxDocumentSize caps the number of bytes read from a data source.
const maxDocumentSize = 8 << 20

// LoadError reports a non-success HTTP response from the data source.
type LoadError struct {
	URL        string
	Status     int
	StatusText string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("skillmap: load %s: %d %s", e.URL, e.Status, e.StatusText)
}

// Unwrap lets errors.Is(err, ErrLoad) match.
func (e *LoadError) Unwrap() error {
	return ErrLoad
}

// Loader fetches skill documents from HTTP(S) URLs or local files.
type Loader struct {
	// Client performs HTTP requests. It must not carry a cookie jar;
	// requests are sent without credentials.
	Client *http.Client
	// Now supplies the cache-busting timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewLoader returns a Loader with a cookie-less client.
func NewLoader() *Loader {
	return &Loader{Client: &http.Client{}, Now: time.Now}
}

// Load fetches and decodes the document at source. Sources starting with
// http:// or https:// are fetched once with a cache-busting query parameter;
// anything else is read from disk. There is no retry.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	data, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if !isHTTPSource(source) {
		f, err := os.Open(strings.TrimPrefix(source, "file://"))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		defer f.Close()
		return readLimited(f)
	}

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	target := CacheBust(source, now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			URL:        source,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	return readLimited(resp.Body)
}

// readLimited reads a whole document and rejects anything larger than
// maxDocumentSize instead of truncating it.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrLoad, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrMalformed, maxDocumentSize)
	}
	return data, nil
}

// CacheBust appends v=<unix millis> to source, using '&' when the URL already
// carries a query string.
func CacheBust(source string, now time.Time) string {
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "v=" + strconv.FormatInt(now.UnixMilli(), 10)
}

func isHTTPSource(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
