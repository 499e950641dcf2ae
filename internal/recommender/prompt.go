package recommender

import (
	"fmt"
	"strings"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// descriptionLimit truncates package descriptions in the prompt; full text
// adds tokens without adding judgment.
const descriptionLimit = 300

// buildRescorePrompt renders the project context and one candidate batch
// into the rescoring prompt. The free-text signal fields (architecture
// patterns, business domain, narrative) are embedded verbatim — the
// pipeline never parses them, they exist for the model's benefit.
func buildRescorePrompt(sig *types.ProjectSignals, batch []*types.Candidate) string {
	var b strings.Builder

	b.WriteString("You are reviewing package recommendations for a CMS project.\n\n")
	b.WriteString("Project context:\n")
	if sig.FrameworkID != "" {
		fmt.Fprintf(&b, "- Framework: %s\n", sig.FrameworkID)
	}
	if sig.PlatformVersion != "" {
		fmt.Fprintf(&b, "- Platform version: %s\n", sig.PlatformVersion)
	}
	if len(sig.Features) > 0 {
		fmt.Fprintf(&b, "- Detected capabilities: %s\n", strings.Join(sig.Features, ", "))
	}
	if len(sig.ArchitecturePatterns) > 0 {
		fmt.Fprintf(&b, "- Architecture patterns: %s\n", strings.Join(sig.ArchitecturePatterns, ", "))
	}
	if sig.BusinessDomain != "" {
		fmt.Fprintf(&b, "- Business domain: %s\n", sig.BusinessDomain)
	}
	if sig.Narrative != "" {
		fmt.Fprintf(&b, "- Summary: %s\n", sig.Narrative)
	}

	b.WriteString("\nPackages to evaluate:\n")
	for _, c := range batch {
		fmt.Fprintf(&b, "- id: %s | downloads: %d | tags: %s\n  description: %s\n",
			c.ID, c.Downloads, strings.Join(c.Tags, ", "), truncate(c.Description, descriptionLimit))
	}

	b.WriteString(`
For each package, judge how relevant it is to this specific project.
Respond with ONLY a JSON array, no prose, one object per package:
[{"packageId": "...", "relevanceScore": 0.0, "reasoning": "...",
"personalityDescription": "...", "useCases": ["..."],
"integrationPoints": ["..."], "impactedComponents": ["..."],
"performancePrediction": "..."}]
relevanceScore must be between 0 and 1. Keep every field short.
`)

	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
