package types

import "errors"

// Domain errors for type validation
var (
	ErrMissingPackageID      = errors.New("package id is required")
	ErrUnknownSource         = errors.New("unknown package source")
	ErrInvalidRelevanceScore = errors.New("relevance score must be between 0 and 1")
	ErrInvalidCommunityScore = errors.New("community score must be between 0 and 1")
)
