package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/time/rate"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

const (
	// DefaultNuGetSearchURL is the NuGet.org search service endpoint.
	DefaultNuGetSearchURL = "https://azuresearch-usnc.nuget.org/query"

	// EnvNuGetSearchURL overrides the search endpoint, mainly for tests.
	EnvNuGetSearchURL = "PKGPILOT_NUGET_URL"
)

// NuGetClient searches the NuGet.org search API.
type NuGetClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *queryCache
	retry      RetryConfig
}

// NewNuGetClient creates a NuGet search client. The endpoint can be
// overridden via PKGPILOT_NUGET_URL.
func NewNuGetClient() *NuGetClient {
	baseURL := os.Getenv(EnvNuGetSearchURL)
	if baseURL == "" {
		baseURL = DefaultNuGetSearchURL
	}
	return &NuGetClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		limiter:    newLimiter(),
		cache:      newQueryCache(DefaultCacheSize, DefaultCacheTTL),
		retry:      DefaultRetryConfig(),
	}
}

// Kind implements Source.
func (c *NuGetClient) Kind() types.SourceKind {
	return types.SourceNuGet
}

// nugetSearchResponse mirrors the fields of the NuGet search service we
// consume.
type nugetSearchResponse struct {
	TotalHits int `json:"totalHits"`
	Data      []struct {
		ID             string   `json:"id"`
		Version        string   `json:"version"`
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		TotalDownloads int64    `json:"totalDownloads"`
		Tags           []string `json:"tags"`
		Versions       []struct {
			Version string `json:"version"`
		} `json:"versions"`
	} `json:"data"`
}

// Search implements Source.
func (c *NuGetClient) Search(ctx context.Context, query string, limit int) ([]types.PackageRecord, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = 20
	}

	if records, ok := c.cache.get(query, limit); ok {
		return records, nil
	}

	resp, err := retryWithBackoff(ctx, c.retry, func() (*nugetSearchResponse, error) {
		return c.callAPI(ctx, query, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: nuget search %q: %v", ErrSourceFailed, query, err)
	}

	records := make([]types.PackageRecord, 0, len(resp.Data))
	for _, item := range resp.Data {
		name := item.Title
		if name == "" {
			name = item.ID
		}
		records = append(records, types.PackageRecord{
			ID:          item.ID,
			DisplayName: name,
			Description: item.Description,
			Tags:        item.Tags,
			Downloads:   item.TotalDownloads,
			Version:     item.Version,
			Source:      types.SourceNuGet,
		})
	}

	c.cache.set(query, limit, records)
	return records, nil
}

// Versions implements Source using the search service's packageid filter.
// Versions are returned newest first; tags that do not parse as semver are
// appended last in input order.
func (c *NuGetClient) Versions(ctx context.Context, id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyPackageID
	}

	resp, err := retryWithBackoff(ctx, c.retry, func() (*nugetSearchResponse, error) {
		return c.callAPI(ctx, "packageid:"+id, 1)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: nuget versions %q: %v", ErrSourceFailed, id, err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}

	raw := make([]string, 0, len(resp.Data[0].Versions))
	for _, v := range resp.Data[0].Versions {
		raw = append(raw, v.Version)
	}
	return sortVersionsDescending(raw), nil
}

func (c *NuGetClient) callAPI(ctx context.Context, query string, limit int) (*nugetSearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("take", fmt.Sprintf("%d", limit))
	params.Set("prerelease", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(body))
	}

	var decoded nugetSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &decoded, nil
}

// sortVersionsDescending orders semver-parseable versions newest first and
// keeps anything unparseable at the end in input order.
func sortVersionsDescending(raw []string) []string {
	parsed := make([]*semver.Version, 0, len(raw))
	byVersion := make(map[*semver.Version]string, len(raw))
	var leftover []string

	for _, s := range raw {
		v, err := semver.NewVersion(s)
		if err != nil {
			leftover = append(leftover, s)
			continue
		}
		parsed = append(parsed, v)
		byVersion[v] = s
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].GreaterThan(parsed[j])
	})

	out := make([]string, 0, len(raw))
	for _, v := range parsed {
		out = append(out, byVersion[v])
	}
	return append(out, leftover...)
}
