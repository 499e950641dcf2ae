// Package types defines the shared data model for the recommendation
// pipeline: project signals produced by the analyzer, raw package records
// returned by the registries, and the candidates the pipeline scores,
// classifies and ranks.
package types
