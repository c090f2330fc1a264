package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/krivobok/pomviz/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the repository has no descriptor at the
	// requested URL. Common for metadata-only artifacts and BOM coordinates.
	ErrNotFound = errors.New("descriptor not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")
)

// Client fetches POM descriptors from a Maven repository over HTTP.
//
// Responses are cached on disk (keyed by URL) and transient failures are
// retried with backoff. All methods are safe for concurrent use.
type Client struct {
	http  *http.Client
	cache *httputil.Cache
}

// NewClient creates a Client whose responses are cached for cacheTTL.
// A TTL of 0 keeps cached descriptors indefinitely; released POMs are
// immutable, so long TTLs are safe.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:  &http.Client{Timeout: httpTimeout},
		cache: cache.Namespace("pom:"),
	}, nil
}

// FetchPOM retrieves and parses the descriptor at url.
// If refresh is true the cache is bypassed.
//
// Returns [ErrNotFound] for a 404, [ErrNetwork] for transport failures and
// other non-200 statuses, or an unmarshal error for malformed documents.
// Callers building a dependency graph treat every error as "descriptor
// absent" rather than fatal.
func (c *Client) FetchPOM(ctx context.Context, url string, refresh bool) (*Project, error) {
	var raw string
	err := c.cached(ctx, url, refresh, &raw, func() (string, error) {
		data, err := c.get(ctx, url)
		return string(data), err
	})
	if err != nil {
		return nil, err
	}

	var pom Project
	if err := xml.Unmarshal([]byte(raw), &pom); err != nil {
		return nil, fmt.Errorf("parse pom %s: %w", url, err)
	}
	return &pom, nil
}

// cached returns the cached value for key into v, or runs fetch (with
// retries) and stores the result. Cache write failures are ignored; the
// fetched value is still returned.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v *string, fetch func() (string, error)) error {
	if !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	err := httputil.RetryWithBackoff(ctx, func() error {
		s, err := fetch()
		if err != nil {
			return err
		}
		*v = s
		return nil
	})
	if err != nil {
		return err
	}
	_ = c.cache.Set(key, *v)
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
