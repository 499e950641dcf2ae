package recommender

import (
	"sort"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// Rank orders candidates descending by relevance score, then community
// score, then downloads. The sort is stable so candidates tied on all three
// keys keep their prior relative order and identical inputs rank
// identically across runs.
func Rank(candidates []*types.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.CommunityScore != b.CommunityScore {
			return a.CommunityScore > b.CommunityScore
		}
		return a.Downloads > b.Downloads
	})
}
