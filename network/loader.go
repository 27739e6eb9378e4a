package network

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
)

// Resource is a loaded document or script.
type Resource struct {
	URL         string
	Content     []byte
	ContentType string
	Charset     string
}

// AsString returns the resource content as a string.
func (r *Resource) AsString() string {
	return string(r.Content)
}

// StatusError is returned for HTTP responses outside the 2xx and 3xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Loader loads resources relative to a base URL. Locations without a
// scheme are local paths while no base URL is set.
type Loader struct {
	client *Client

	mu      sync.RWMutex
	baseURL string
}

// NewLoader creates a resource loader. A nil client is created on first
// HTTP use with default options.
func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

// SetBaseURL sets the base URL for resolving relative locations.
func (l *Loader) SetBaseURL(baseURL string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseURL = baseURL
}

// BaseURL returns the current base URL.
func (l *Loader) BaseURL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baseURL
}

// Resolve turns location into an absolute URL.
func (l *Loader) Resolve(location string) (string, error) {
	if IsDataURL(location) || IsAbsoluteURL(location) {
		return location, nil
	}
	if base := l.BaseURL(); base != "" {
		return ResolveURL(base, location)
	}
	return FileURL(location)
}

// Load loads the resource at location.
func (l *Loader) Load(ctx context.Context, location string) (*Resource, error) {
	resolved, err := l.Resolve(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", location, err)
	}

	if IsDataURL(resolved) {
		d, err := ParseDataURL(resolved)
		if err != nil {
			return nil, err
		}
		return &Resource{URL: resolved, Content: d.Data, ContentType: d.MediaType, Charset: strings.ToLower(d.Charset)}, nil
	}

	u, err := url.Parse(resolved)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", resolved, err)
	}
	switch u.Scheme {
	case "file":
		return l.loadFile(resolved, u.Path)
	case "http", "https":
		return l.loadHTTP(ctx, resolved)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", u.Scheme, resolved)
	}
}

// LoadDocument loads a document and makes its URL the base for later
// relative locations, such as the src of its scripts.
func (l *Loader) LoadDocument(ctx context.Context, location string) (*Resource, error) {
	res, err := l.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	l.SetBaseURL(res.URL)
	return res, nil
}

func (l *Loader) loadFile(urlStr, path string) (*Resource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:         urlStr,
		Content:     content,
		ContentType: GuessContentType(urlStr),
	}, nil
}

func (l *Loader) loadHTTP(ctx context.Context, urlStr string) (*Resource, error) {
	client, err := l.httpClient()
	if err != nil {
		return nil, err
	}
	resp, err := client.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, &StatusError{URL: urlStr, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	final := urlStr
	if resp.URL != nil {
		final = resp.URL.String()
	}
	mediaType, charset := ParseContentType(resp.ContentType)
	return &Resource{
		URL:         final,
		Content:     resp.Body,
		ContentType: mediaType,
		Charset:     charset,
	}, nil
}

func (l *Loader) httpClient() (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client == nil {
		c, err := NewClient()
		if err != nil {
			return nil, err
		}
		l.client = c
	}
	return l.client, nil
}
