package types

// Candidate is a package under consideration, carrying one registry record
// plus the mutable state the pipeline computes for it. The relevance score
// may exceed 1.0 while duplicate-sighting boosts accumulate; it is clamped
// to [0,1] exactly once, after aggregation completes.
type Candidate struct {
	PackageRecord

	RelevanceScore float64 `json:"relevanceScore"`
	CommunityScore float64 `json:"communityScore"`
	HiddenGem      bool    `json:"hiddenGem"`
	Reason         string  `json:"reason"`

	// Optional enrichment filled in by the language-model rescorer.
	LLMReasoning          string   `json:"llmReasoning,omitempty"`
	Personality           string   `json:"personalityDescription,omitempty"`
	UseCases              []string `json:"useCases,omitempty"`
	IntegrationPoints     []string `json:"integrationPoints,omitempty"`
	ImpactedComponents    []string `json:"impactedComponents,omitempty"`
	PerformancePrediction string   `json:"performancePrediction,omitempty"`
}

// NewCandidate wraps a registry record with its initial rule-based score
// and reason.
func NewCandidate(rec PackageRecord, relevance float64, reason string) *Candidate {
	return &Candidate{
		PackageRecord:  rec,
		RelevanceScore: relevance,
		Reason:         reason,
	}
}

// Validate checks that a fully scored candidate is well-formed.
func (c *Candidate) Validate() error {
	if c.ID == "" {
		return ErrMissingPackageID
	}
	if c.Source != SourceNuGet && c.Source != SourceMarketplace {
		return ErrUnknownSource
	}
	if c.RelevanceScore < 0 || c.RelevanceScore > 1 {
		return ErrInvalidRelevanceScore
	}
	if c.CommunityScore < 0 || c.CommunityScore > 1 {
		return ErrInvalidCommunityScore
	}
	return nil
}
