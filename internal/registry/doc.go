// Package registry provides search clients for the two package sources the
// recommender aggregates: the NuGet.org search service and the Umbraco
// Marketplace API.
//
// Both clients implement the Source interface:
//
//	records, err := client.Search(ctx, "umbraco seo", 20)
//	versions, err := client.Versions(ctx, "Umbraco.Forms")
//
// Clients are best-effort collaborators. Every call carries a bounded
// timeout, a short exponential-backoff retry for transient failures, and a
// per-client rate limiter. Responses are cached in an in-memory LRU with a
// five minute TTL; nothing is persisted.
//
// A failed or malformed response surfaces as an error wrapping
// ErrSourceFailed. The aggregator treats any source error as zero results,
// so a registry outage degrades recommendations instead of failing them.
package registry
