package types

import "strings"

// SourceKind identifies which registry produced a package record.
type SourceKind string

const (
	// SourceNuGet is the NuGet.org search API.
	SourceNuGet SourceKind = "nuget"
	// SourceMarketplace is the Umbraco Marketplace API.
	SourceMarketplace SourceKind = "marketplace"
)

// PackageRecord is a single raw search hit from a registry, before any
// pipeline scoring is applied. IDs are unique within one source.
type PackageRecord struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Downloads   int64      `json:"downloads"`
	Version     string     `json:"version,omitempty"`
	// Compatibility lists platform versions the package declares support
	// for. Only the marketplace source populates it.
	Compatibility []string   `json:"compatibility,omitempty"`
	Source        SourceKind `json:"source"`
}

// SearchText returns the record's tags and description joined and
// lowercased, the haystack for version and feature affinity matching.
func (r *PackageRecord) SearchText() string {
	parts := make([]string, 0, len(r.Tags)+1)
	parts = append(parts, r.Tags...)
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
