package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

const (
	defaultGitHubAPI = "https://api.github.com"
	maxBodyBytes     = 4 << 20
	userAgent        = "updatechecker/1.0"
)

// NewHTTPClient returns a client whose transport negotiates HTTP/2 where the
// server supports it.
func NewHTTPClient(timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if _, err := http2.ConfigureTransports(transport); err != nil {
		return nil, fmt.Errorf("configure http2 transport: %w", err)
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

type Option func(*HTTPFetcher)

func WithGitHubToken(token string) Option {
	return func(f *HTTPFetcher) { f.githubToken = token }
}

func WithGitHubAPI(baseURL string) Option {
	return func(f *HTTPFetcher) { f.githubAPI = strings.TrimRight(baseURL, "/") }
}

// HTTPFetcher resolves the current version of a registry entry from its
// configured source.
type HTTPFetcher struct {
	registry    *Registry
	client      *http.Client
	githubAPI   string
	githubToken string
}

func NewHTTPFetcher(registry *Registry, client *http.Client, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		registry:  registry,
		client:    client,
		githubAPI: defaultGitHubAPI,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *HTTPFetcher) FetchLatest(ctx context.Context, id string) (domain.FetchResult, error) {
	entry, ok := f.registry.Entry(id)
	if !ok {
		return domain.FetchResult{}, fmt.Errorf("software %q is not in the registry", id)
	}

	var (
		version string
		err     error
	)
	switch entry.Source.Kind {
	case SourceGitHub:
		version, err = f.fetchGitHub(ctx, entry.Source)
	case SourceJSON:
		version, err = f.fetchJSON(ctx, entry.Source)
	case SourceStatic:
		version = entry.Source.Version
	default:
		err = fmt.Errorf("unknown source kind %q", entry.Source.Kind)
	}
	if err != nil {
		return domain.FetchResult{}, err
	}

	version = strings.TrimPrefix(strings.TrimSpace(version), entry.Source.TrimPrefix)
	return domain.FetchResult{Version: version, Name: entry.Name}, nil
}

func (f *HTTPFetcher) fetchGitHub(ctx context.Context, src Source) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", f.githubAPI, src.Repo)

	var release struct {
		TagName string `json:"tag_name"`
	}
	header := http.Header{"Accept": []string{"application/vnd.github+json"}}
	if f.githubToken != "" {
		header.Set("Authorization", "Bearer "+f.githubToken)
	}
	if err := f.getJSON(ctx, url, header, &release); err != nil {
		return "", err
	}
	return release.TagName, nil
}

func (f *HTTPFetcher) fetchJSON(ctx context.Context, src Source) (string, error) {
	var doc any
	if err := f.getJSON(ctx, src.URL, nil, &doc); err != nil {
		return "", err
	}
	return lookupField(doc, src.Field)
}

func (f *HTTPFetcher) getJSON(ctx context.Context, url string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", url, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	// Numbers stay as written so a version like 1.10 is not read as 1.1.
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// lookupField walks a dotted path through decoded JSON. Numeric segments
// index arrays.
func lookupField(doc any, path string) (string, error) {
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return "", fmt.Errorf("field %q: key %q not found", path, seg)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return "", fmt.Errorf("field %q: invalid index %q", path, seg)
			}
			cur = node[idx]
		default:
			return "", fmt.Errorf("field %q: cannot descend into %T at %q", path, cur, seg)
		}
	}

	switch v := cur.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("field %q: value is %T, not a string", path, cur)
	}
}
