package scorer

import (
	"fmt"
	"strings"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// Weights shared by both sources.
const (
	popularityWeight = 0.3
	versionWeight    = 0.4
)

// sourceProfile holds the per-source scoring constants. The two ecosystems
// operate at very different scales, so popularity normalization and
// thresholds differ by an order of magnitude or more.
type sourceProfile struct {
	downloadNormalizer float64 // downloads at which popularity saturates
	popularThreshold   int64   // downloads above which the reason says "highly popular"
	featureWeight      float64 // per matched project feature
	duplicateBoost     float64 // added when a feature query re-surfaces a known candidate
	vendorBonus        float64 // added when the id names a well-known ecosystem vendor
	vendorFragments    []string
}

var profiles = map[types.SourceKind]sourceProfile{
	types.SourceNuGet: {
		downloadNormalizer: 1_000_000,
		popularThreshold:   500_000,
		featureWeight:      0.1,
		duplicateBoost:     0.2,
		vendorBonus:        0.2,
		vendorFragments:    []string{"umbraco", "usync", "ucommerce", "uskinned"},
	},
	types.SourceMarketplace: {
		downloadNormalizer: 10_000,
		popularThreshold:   5_000,
		featureWeight:      0.15,
		duplicateBoost:     0.3,
	},
}

// Relevance computes the rule-based relevance score in [0,1] for a record
// against the project signals, plus a human-readable reason. Terms are
// additive and clamped once at the end.
func Relevance(rec *types.PackageRecord, sig *types.ProjectSignals) (float64, string) {
	profile := profiles[rec.Source]
	text := rec.SearchText()

	score := popularity(rec.Downloads, profile.downloadNormalizer)

	versionMatched := matchesVersion(rec, sig, text)
	if versionMatched {
		score += versionWeight
	}

	matched := matchedFeatures(sig.Features, text)
	score += float64(len(matched)) * profile.featureWeight

	if profile.vendorBonus > 0 && matchesVendor(rec.ID, profile.vendorFragments) {
		score += profile.vendorBonus
	}

	if score > 1.0 {
		score = 1.0
	}

	return score, buildReason(rec, sig, profile, versionMatched, matched)
}

// DuplicateBoost returns the per-source increment applied when a feature
// query re-surfaces an already known candidate.
func DuplicateBoost(kind types.SourceKind) float64 {
	return profiles[kind].duplicateBoost
}

func popularity(downloads int64, normalizer float64) float64 {
	ratio := float64(downloads) / normalizer
	if ratio > 1.0 {
		ratio = 1.0
	}
	return ratio * popularityWeight
}

// matchesVersion reports whether the project's platform version token
// appears in the record's combined text, or, for marketplace records, in
// any declared compatibility tag.
func matchesVersion(rec *types.PackageRecord, sig *types.ProjectSignals, text string) bool {
	if sig.PlatformVersion == "" {
		return false
	}
	token := strings.ToLower(sig.PlatformVersion)
	if strings.Contains(text, token) {
		return true
	}
	for _, compat := range rec.Compatibility {
		if strings.Contains(strings.ToLower(compat), token) {
			return true
		}
	}
	return false
}

func matchedFeatures(features []string, text string) []string {
	var matched []string
	for _, feature := range features {
		if strings.Contains(text, strings.ToLower(feature)) {
			matched = append(matched, feature)
		}
	}
	return matched
}

func matchesVendor(id string, fragments []string) bool {
	lower := strings.ToLower(id)
	for _, fragment := range fragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func buildReason(rec *types.PackageRecord, sig *types.ProjectSignals, profile sourceProfile, versionMatched bool, matched []string) string {
	var clauses []string
	if rec.Downloads > profile.popularThreshold {
		clauses = append(clauses, "highly popular")
	}
	if versionMatched {
		clauses = append(clauses, fmt.Sprintf("compatible with version %s", sig.PlatformVersion))
	}
	if len(matched) > 0 {
		clauses = append(clauses, "relevant for: "+strings.Join(matched, ", "))
	}
	if len(clauses) == 0 {
		return "general package"
	}
	return strings.Join(clauses, "; ")
}
