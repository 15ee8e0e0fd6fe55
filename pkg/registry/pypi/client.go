package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/reqcheck/pkg/cache"
	"github.com/matzehuels/reqcheck/pkg/observability"
)

// DefaultBaseURL is the production PyPI JSON API endpoint.
const DefaultBaseURL = "https://pypi.org/pypi"

const httpTimeout = 10 * time.Second

// classifierPrefix marks trove classifiers that declare interpreter support,
// e.g. "Programming Language :: Python :: 3.11".
const classifierPrefix = "Programming Language :: Python ::"

// Release describes a single version of a project, as returned by
// GET /pypi/{name}/{version}/json.
type Release struct {
	Info Info `json:"info"`
}

// Project describes a project with its full release history, as returned by
// GET /pypi/{name}/json. Info refers to the latest release.
type Project struct {
	Info     Info                  `json:"info"`
	Releases map[string][]Artifact `json:"releases"`
}

// Info holds the metadata fields reqcheck consumes.
type Info struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Summary     string   `json:"summary"`
	Classifiers []string `json:"classifiers"`
}

// Artifact is one of the files uploaded for a release.
type Artifact struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	UploadTime time.Time `json:"upload_time_iso_8601"`
	Yanked     bool      `json:"yanked"`
}

// SupportedPythons extracts the declared interpreter versions from a
// classifier list. Both exact versions ("3.11") and bare majors ("3")
// appear as classifiers; the result may be empty when a project declares
// no interpreter support at all.
func SupportedPythons(classifiers []string) []string {
	var versions []string
	for _, c := range classifiers {
		if !strings.HasPrefix(c, classifierPrefix) {
			continue
		}
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		versions = append(versions, fields[len(fields)-1])
	}
	return versions
}

// NormalizeName converts a package name to its canonical form following
// PEP 503 (lowercase, underscores replaced with hyphens).
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Client is a thin client over the PyPI JSON API with response caching
// and retry on transient failures.
//
// All methods are safe for concurrent use, though reqcheck itself issues
// lookups strictly sequentially.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	baseURL string
	ttl     time.Duration
}

// NewClient creates a PyPI client.
//
//   - baseURL: index endpoint; empty selects [DefaultBaseURL]
//   - backend: cache backend (use cache.NewNullCache() for no caching)
//   - ttl: how long responses stay cached
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		ttl:     ttl,
	}
}

// Project retrieves a project's metadata and full release map.
//
// Returns cache.ErrNotFound (wrapped) when the package is not on the index
// and cache.ErrNetwork for transport failures after retries are exhausted.
func (c *Client) Project(ctx context.Context, pkg string, refresh bool) (*Project, error) {
	pkg = NormalizeName(pkg)

	var p Project
	key := "pypi:project:" + pkg
	err := c.cached(ctx, key, refresh, &p, func() error {
		return c.get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Release retrieves the metadata of one pinned version of a project.
//
// Returns cache.ErrNotFound (wrapped) when the package or the specific
// version is unknown to the index.
func (c *Client) Release(ctx context.Context, pkg, version string, refresh bool) (*Release, error) {
	pkg = NormalizeName(pkg)

	var r Release
	key := "pypi:release:" + pkg + "==" + version
	err := c.cached(ctx, key, refresh, &r, func() error {
		return c.get(ctx, fmt.Sprintf("%s/%s/%s/json", c.baseURL, pkg, version), &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// cached serves v from the cache backend or runs fetch (with retry) and
// stores the result. When refresh is true the cache is bypassed.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, hit, _ := c.cache.Get(ctx, key); hit {
			observability.Cache().OnCacheHit(ctx, key)
			return json.Unmarshal(data, v)
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, key, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, url); err != nil {
		return err
	}
	return json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(v)
}

func checkStatus(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", cache.ErrNotFound, url)
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d from %s", cache.ErrNetwork, code, url))
	default:
		return fmt.Errorf("%w: status %d from %s", cache.ErrNetwork, code, url)
	}
}

// HasReleases reports whether the project has any published release.
func (p *Project) HasReleases() bool {
	return len(p.Releases) > 0
}

// LatestVersion returns the newest release version as reported by the index.
func (p *Project) LatestVersion() string {
	return p.Info.Version
}
