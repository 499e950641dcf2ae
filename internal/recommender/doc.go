// Package recommender implements the recommendation pipeline.
//
// A run proceeds in fixed stages:
//
//  1. Plan queries: one base query per source, then one per detected
//     feature per source.
//  2. Fetch concurrently (bounded errgroup); a failed query contributes
//     zero results.
//  3. Merge single-threaded into a candidate map keyed by lowercased
//     package id: first sighting scores the record, a repeat sighting from
//     a feature query boosts the existing candidate instead. Installed
//     packages are filtered out before scoring.
//  4. Clamp accumulated relevance to [0,1], exactly once.
//  5. Optionally rescore batches with a language model; any batch failure
//     keeps rule-based scores.
//  6. Classify hidden gems, compute community scores, and rank with a
//     stable three-key sort.
//
// Recommend is total: it always returns a (possibly empty) ranked list and
// never an error. The Rescorer variant — NullRescorer or LLMRescorer — is
// chosen once at construction.
package recommender
