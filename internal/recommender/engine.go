package recommender

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pkgpilot/pkgpilot-mcp/internal/registry"
	"github.com/pkgpilot/pkgpilot-mcp/internal/scorer"
	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

const (
	// baseKeyword anchors the base query for both sources.
	baseKeyword = "umbraco"

	// Page sizes: the base query casts a wide net, per-feature queries
	// stay narrow to bound total external calls.
	baseQueryLimit    = 20
	featureQueryLimit = 10

	// fetchConcurrency bounds parallel registry calls.
	fetchConcurrency = 4
)

// Engine drives the recommendation pipeline: fan out registry queries,
// merge and score candidates, optionally rescore with a language model,
// classify hidden gems, compute community scores, and rank.
type Engine struct {
	sources  []registry.Source
	rescorer Rescorer
	log      *zap.SugaredLogger
}

// New creates an Engine. The rescorer is fixed at construction: pass
// NullRescorer when no language-model capability is available.
func New(sources []registry.Source, rescorer Rescorer, log *zap.SugaredLogger) *Engine {
	if rescorer == nil {
		rescorer = NullRescorer{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		sources:  sources,
		rescorer: rescorer,
		log:      log,
	}
}

// fetchQuery is one planned registry call. featurePass marks per-feature
// queries, whose repeat sightings boost existing candidates.
type fetchQuery struct {
	source      registry.Source
	text        string
	limit       int
	featurePass bool
}

// Recommend runs the full pipeline for the given signals and returns the
// ranked candidate list. The contract is total: registry and language-model
// failures degrade the result, they never surface as errors. An empty list
// is a valid outcome.
func (e *Engine) Recommend(ctx context.Context, sig *types.ProjectSignals) []*types.Candidate {
	runID := uuid.NewString()[:8]
	log := e.log.With("run_id", runID)

	queries := e.planQueries(sig)
	results := e.fetchAll(ctx, log, queries)

	candidates := e.merge(sig, queries, results)
	clampScores(candidates)
	log.Infow("aggregated candidates", "queries", len(queries), "candidates", len(candidates))

	e.rescorer.Rescore(ctx, sig, candidates)

	scorer.MarkHiddenGems(candidates)
	for _, c := range candidates {
		c.CommunityScore = scorer.Community(c)
	}

	Rank(candidates)
	return candidates
}

// planQueries builds the query plan: one base query per source, then one
// query per detected feature per source, in feature order.
func (e *Engine) planQueries(sig *types.ProjectSignals) []fetchQuery {
	base := baseKeyword
	if sig.PlatformVersion != "" {
		base = baseKeyword + " " + sig.PlatformVersion
	}

	var queries []fetchQuery
	for _, src := range e.sources {
		queries = append(queries, fetchQuery{source: src, text: base, limit: baseQueryLimit})
	}
	for _, feature := range sig.Features {
		for _, src := range e.sources {
			queries = append(queries, fetchQuery{
				source:      src,
				text:        baseKeyword + " " + feature,
				limit:       featureQueryLimit,
				featurePass: true,
			})
		}
	}
	return queries
}

// fetchAll issues the planned queries concurrently. Each slot in the
// returned slice belongs to one goroutine, so no locking is needed; merge
// runs single-threaded afterwards. A failed query contributes zero results.
func (e *Engine) fetchAll(ctx context.Context, log *zap.SugaredLogger, queries []fetchQuery) [][]types.PackageRecord {
	results := make([][]types.PackageRecord, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			records, err := q.source.Search(gctx, q.text, q.limit)
			if err != nil {
				log.Warnw("registry query failed",
					"source", q.source.Kind(), "query", q.text, "error", err)
				return nil // best-effort: a dead source is zero results
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// merge folds all query results into a deduplicated candidate list, in
// query order. First sighting creates the candidate with its rule-based
// score; a repeat sighting from a feature query boosts the existing score
// by the per-source increment instead of creating a duplicate. Boosts
// accumulate unclamped here; clampScores applies the single final clamp.
func (e *Engine) merge(sig *types.ProjectSignals, queries []fetchQuery, results [][]types.PackageRecord) []*types.Candidate {
	byID := make(map[string]*types.Candidate)
	var ordered []*types.Candidate

	for i, records := range results {
		featurePass := queries[i].featurePass
		for _, rec := range records {
			if sig.HasPackage(rec.ID) {
				continue // already installed
			}

			key := strings.ToLower(rec.ID)
			if existing, ok := byID[key]; ok {
				if featurePass {
					existing.RelevanceScore += scorer.DuplicateBoost(rec.Source)
				}
				continue
			}

			relevance, reason := scorer.Relevance(&rec, sig)
			candidate := types.NewCandidate(rec, relevance, reason)
			byID[key] = candidate
			ordered = append(ordered, candidate)
		}
	}

	return ordered
}

// clampScores bounds each accumulated relevance score to [0,1]. This runs
// exactly once, after all boosts have stacked, so heavily boosted
// candidates keep their relative order up to this point.
func clampScores(candidates []*types.Candidate) {
	for _, c := range candidates {
		if c.RelevanceScore > 1.0 {
			c.RelevanceScore = 1.0
		}
		if c.RelevanceScore < 0 {
			c.RelevanceScore = 0
		}
	}
}
