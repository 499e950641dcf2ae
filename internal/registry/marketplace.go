package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

const (
	// DefaultMarketplaceSearchURL is the Umbraco Marketplace search
	// endpoint.
	DefaultMarketplaceSearchURL = "https://api.marketplace.umbraco.com/api/v1.0/search"

	// EnvMarketplaceSearchURL overrides the search endpoint, mainly for
	// tests.
	EnvMarketplaceSearchURL = "PKGPILOT_MARKETPLACE_URL"
)

// MarketplaceClient searches the Umbraco Marketplace API. Marketplace
// records carry the platform versions a package declares support for.
type MarketplaceClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *queryCache
	retry      RetryConfig
}

// NewMarketplaceClient creates a marketplace search client. The endpoint
// can be overridden via PKGPILOT_MARKETPLACE_URL.
func NewMarketplaceClient() *MarketplaceClient {
	baseURL := os.Getenv(EnvMarketplaceSearchURL)
	if baseURL == "" {
		baseURL = DefaultMarketplaceSearchURL
	}
	return &MarketplaceClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		limiter:    newLimiter(),
		cache:      newQueryCache(DefaultCacheSize, DefaultCacheTTL),
		retry:      DefaultRetryConfig(),
	}
}

// Kind implements Source.
func (c *MarketplaceClient) Kind() types.SourceKind {
	return types.SourceMarketplace
}

// marketplaceSearchResponse mirrors the marketplace search payload fields
// we consume.
type marketplaceSearchResponse struct {
	TotalResults int `json:"totalResults"`
	Results      []struct {
		PackageID       string   `json:"packageId"`
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		Downloads       int64    `json:"numberOfNuGetDownloads"`
		Tags            []string `json:"tags"`
		LatestVersion   string   `json:"latestVersion"`
		UmbracoVersions []string `json:"umbracoVersions"`
	} `json:"results"`
}

// Search implements Source.
func (c *MarketplaceClient) Search(ctx context.Context, query string, limit int) ([]types.PackageRecord, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = 20
	}

	if records, ok := c.cache.get(query, limit); ok {
		return records, nil
	}

	resp, err := retryWithBackoff(ctx, c.retry, func() (*marketplaceSearchResponse, error) {
		return c.callAPI(ctx, query, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marketplace search %q: %v", ErrSourceFailed, query, err)
	}

	records := make([]types.PackageRecord, 0, len(resp.Results))
	for _, item := range resp.Results {
		name := item.Title
		if name == "" {
			name = item.PackageID
		}
		records = append(records, types.PackageRecord{
			ID:            item.PackageID,
			DisplayName:   name,
			Description:   item.Description,
			Tags:          item.Tags,
			Downloads:     item.Downloads,
			Version:       item.LatestVersion,
			Compatibility: item.UmbracoVersions,
			Source:        types.SourceMarketplace,
		})
	}

	c.cache.set(query, limit, records)
	return records, nil
}

// Versions implements Source by returning the declared platform
// compatibility of the matching package. The marketplace does not expose
// full release history.
func (c *MarketplaceClient) Versions(ctx context.Context, id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyPackageID
	}

	records, err := c.Search(ctx, id, 5)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if strings.EqualFold(rec.ID, id) {
			return rec.Compatibility, nil
		}
	}
	return nil, ErrVersionsNotAvailable
}

func (c *MarketplaceClient) callAPI(ctx context.Context, query string, limit int) (*marketplaceSearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", fmt.Sprintf("%d", limit))

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

	var decoded marketplaceSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &decoded, nil
}

var (
	_ Source = (*NuGetClient)(nil)
	_ Source = (*MarketplaceClient)(nil)
)
