// Package scorer implements the rule-based scoring model: per-source
// relevance scoring with human-readable reasons, hidden-gem classification
// over population statistics, and the blended community score.
//
// All functions are pure over in-memory values. Relevance terms are
// additive and clamped to [0,1] once, at the end; the aggregator later adds
// duplicate-sighting boosts on top of the clamped base and performs its own
// single clamp, so heavily boosted candidates keep their relative order.
package scorer
