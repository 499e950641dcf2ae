package registry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// Common errors
var (
	ErrEmptyQuery           = errors.New("query cannot be empty")
	ErrEmptyPackageID       = errors.New("package id cannot be empty")
	ErrSourceFailed         = errors.New("registry request failed")
	ErrVersionsNotAvailable = errors.New("version listing not available")
)

const (
	// DefaultTimeout bounds every registry HTTP call.
	DefaultTimeout = 10 * time.Second

	// DefaultCacheSize is the number of query responses each client keeps.
	DefaultCacheSize = 512
	// DefaultCacheTTL is how long a cached response stays valid.
	DefaultCacheTTL = 5 * time.Minute

	// Rate limiting per client: sustained requests/sec and burst.
	requestsPerSecond = 5
	requestBurst      = 10
)

// Source is a package search backend. Implementations return transport and
// decode failures as errors; callers treat a failed source as zero results
// and are responsible for logging.
type Source interface {
	// Kind identifies the backend.
	Kind() types.SourceKind

	// Search returns up to limit records matching query. Result order
	// carries no meaning.
	Search(ctx context.Context, query string, limit int) ([]types.PackageRecord, error)

	// Versions lists published version strings for a package id, newest
	// first. Sources without version history return
	// ErrVersionsNotAvailable.
	Versions(ctx context.Context, id string) ([]string, error)
}

// newHTTPClient builds the shared http.Client configuration for registry
// backends.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}

// newLimiter builds the per-client rate limiter.
func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst)
}
