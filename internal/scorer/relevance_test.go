package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

func TestRelevance_NuGetVersionAndFeatureMatch(t *testing.T) {
	rec := &types.PackageRecord{
		ID:          "Foo.Bar",
		Description: "works with v13",
		Tags:        []string{"cms", "seo"},
		Downloads:   500_000,
		Source:      types.SourceNuGet,
	}
	sig := &types.ProjectSignals{
		PlatformVersion: "13",
		Features:        []string{"seo"},
	}

	score, reason := Relevance(rec, sig)

	// popularity 500k/1M*0.3 + version 0.4 + one feature 0.1
	assert.InDelta(t, 0.65, score, 1e-9)
	assert.Contains(t, reason, "compatible with version 13")
	assert.Contains(t, reason, "relevant for: seo")
}

func TestRelevance_PopularitySaturates(t *testing.T) {
	rec := &types.PackageRecord{
		ID:        "Some.Package",
		Downloads: 50_000_000,
		Source:    types.SourceNuGet,
	}
	sig := &types.ProjectSignals{}

	score, reason := Relevance(rec, sig)

	assert.InDelta(t, 0.3, score, 1e-9)
	assert.Contains(t, reason, "highly popular")
}

func TestRelevance_NeverExceedsOne(t *testing.T) {
	// Every bonus term active at once: saturated popularity, version
	// match, many features, vendor id.
	rec := &types.PackageRecord{
		ID:          "Umbraco.Everything",
		Description: "seo forms commerce media search for version 13",
		Tags:        []string{"13"},
		Downloads:   10_000_000,
		Source:      types.SourceNuGet,
	}
	sig := &types.ProjectSignals{
		PlatformVersion: "13",
		Features:        []string{"seo", "forms", "commerce", "media", "search"},
	}

	score, _ := Relevance(rec, sig)

	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestRelevance_NeverNegative(t *testing.T) {
	rec := &types.PackageRecord{ID: "X", Source: types.SourceNuGet}
	sig := &types.ProjectSignals{}

	score, reason := Relevance(rec, sig)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.Equal(t, "general package", reason)
}

func TestRelevance_MarketplaceCompatibilityTagMatch(t *testing.T) {
	rec := &types.PackageRecord{
		ID:            "My.Package",
		Description:   "a content app",
		Downloads:     2_000,
		Compatibility: []string{"12", "13"},
		Source:        types.SourceMarketplace,
	}
	sig := &types.ProjectSignals{PlatformVersion: "13"}

	score, reason := Relevance(rec, sig)

	// popularity 2k/10k*0.3 + version 0.4
	assert.InDelta(t, 0.46, score, 1e-9)
	assert.Contains(t, reason, "compatible with version 13")
}

func TestRelevance_MarketplaceFeatureWeight(t *testing.T) {
	rec := &types.PackageRecord{
		ID:          "Forms.Thing",
		Description: "forms builder",
		Source:      types.SourceMarketplace,
	}
	sig := &types.ProjectSignals{Features: []string{"forms"}}

	score, _ := Relevance(rec, sig)

	assert.InDelta(t, 0.15, score, 1e-9)
}

func TestRelevance_VendorBonusNuGetOnly(t *testing.T) {
	sig := &types.ProjectSignals{}

	nuget := &types.PackageRecord{ID: "Umbraco.Community.Thing", Source: types.SourceNuGet}
	market := &types.PackageRecord{ID: "Umbraco.Community.Thing", Source: types.SourceMarketplace}

	nugetScore, _ := Relevance(nuget, sig)
	marketScore, _ := Relevance(market, sig)

	assert.InDelta(t, 0.2, nugetScore, 1e-9)
	assert.InDelta(t, 0.0, marketScore, 1e-9)
}

func TestRelevance_FeatureMatchIsCaseInsensitive(t *testing.T) {
	rec := &types.PackageRecord{
		ID:          "Seo.Toolkit",
		Description: "Advanced SEO toolkit",
		Source:      types.SourceNuGet,
	}
	sig := &types.ProjectSignals{Features: []string{"seo"}}

	score, reason := Relevance(rec, sig)

	assert.InDelta(t, 0.1, score, 1e-9)
	assert.Contains(t, reason, "relevant for: seo")
}

func TestDuplicateBoost(t *testing.T) {
	assert.InDelta(t, 0.2, DuplicateBoost(types.SourceNuGet), 1e-9)
	assert.InDelta(t, 0.3, DuplicateBoost(types.SourceMarketplace), 1e-9)
}
