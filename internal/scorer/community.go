package scorer

import "github.com/pkgpilot/pkgpilot-mcp/pkg/types"

// Community score blend. Distinct from relevance: a secondary 0-1 quality
// signal combining adoption, relevance, hidden-gem status and declared
// compatibility breadth.
const (
	communityDownloadNormalizer = 100_000
	communityDownloadWeight     = 0.4
	communityRelevanceWeight    = 0.3
	communityGemBonus           = 0.3
	communityCompatBonus        = 0.1
)

// Community computes the community score for a candidate from its already
// computed fields. Run after hidden-gem classification so the gem bonus is
// available; order across candidates does not matter.
func Community(c *types.Candidate) float64 {
	score := float64(c.Downloads) / communityDownloadNormalizer * communityDownloadWeight
	score += c.RelevanceScore * communityRelevanceWeight
	if c.HiddenGem {
		score += communityGemBonus
	}
	if len(c.Compatibility) > 0 {
		score += communityCompatBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
