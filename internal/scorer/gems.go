package scorer

import "github.com/pkgpilot/pkgpilot-mcp/pkg/types"

// Hidden-gem thresholds relative to the candidate population. A gem is
// meaningfully more relevant than average while meaningfully less
// downloaded, above an absolute adoption floor that filters zero-download
// noise.
const (
	gemRelevanceFactor = 0.8
	gemDownloadFactor  = 0.7
	gemDownloadFloor   = 100
)

// MarkHiddenGems computes the population means over the candidate list and
// flags outliers in place. The baseline is recomputed fresh on every run;
// an empty list is a no-op.
func MarkHiddenGems(candidates []*types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	var totalDownloads float64
	var totalRelevance float64
	for _, c := range candidates {
		totalDownloads += float64(c.Downloads)
		totalRelevance += c.RelevanceScore
	}
	meanDownloads := totalDownloads / float64(len(candidates))
	meanRelevance := totalRelevance / float64(len(candidates))

	for _, c := range candidates {
		c.HiddenGem = c.RelevanceScore > gemRelevanceFactor*meanRelevance &&
			float64(c.Downloads) < gemDownloadFactor*meanDownloads &&
			c.Downloads > gemDownloadFloor
	}
}
