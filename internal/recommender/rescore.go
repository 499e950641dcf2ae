package recommender

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pkgpilot/pkgpilot-mcp/internal/llm"
	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

const (
	// rescoreBatchSize bounds prompt size per language-model call.
	rescoreBatchSize = 10

	// rescoreMaxTokens bounds the structured response length.
	rescoreMaxTokens = 2000

	rescoreTemperature  = 0.2
	rescoreBatchTimeout = 30 * time.Second
)

// Rescorer optionally replaces rule-based scores with language-model
// judgments. Implementations mutate candidates in place and never fail the
// pipeline. The variant is chosen once at engine construction.
type Rescorer interface {
	Rescore(ctx context.Context, sig *types.ProjectSignals, candidates []*types.Candidate)
}

// NullRescorer leaves candidates untouched. Used when the language-model
// capability is absent or opted out.
type NullRescorer struct{}

// Rescore implements Rescorer as a no-op.
func (NullRescorer) Rescore(context.Context, *types.ProjectSignals, []*types.Candidate) {}

// LLMRescorer asks a language model to re-judge candidate relevance in
// fixed-size batches. Any failure — transport, timeout, unparseable output —
// is local to its batch: those candidates keep their rule-based scores.
type LLMRescorer struct {
	client llm.Completer
	log    *zap.SugaredLogger
}

// NewLLMRescorer wraps a completer.
func NewLLMRescorer(client llm.Completer, log *zap.SugaredLogger) *LLMRescorer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LLMRescorer{client: client, log: log}
}

// rescoreItem is one entry of the structured response the model is asked
// to produce.
type rescoreItem struct {
	PackageID             string   `json:"packageId"`
	RelevanceScore        float64  `json:"relevanceScore"`
	Reasoning             string   `json:"reasoning"`
	Personality           string   `json:"personalityDescription"`
	UseCases              []string `json:"useCases"`
	IntegrationPoints     []string `json:"integrationPoints"`
	ImpactedComponents    []string `json:"impactedComponents"`
	PerformancePrediction string   `json:"performancePrediction"`
}

// Rescore implements Rescorer. Batches run strictly sequentially; the
// provider applies its own per-call concurrency limits and nothing in one
// batch informs the next.
func (r *LLMRescorer) Rescore(ctx context.Context, sig *types.ProjectSignals, candidates []*types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	byID := make(map[string]*types.Candidate, len(candidates))
	for _, c := range candidates {
		byID[strings.ToLower(c.ID)] = c
	}

	for start := 0; start < len(candidates); start += rescoreBatchSize {
		end := start + rescoreBatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		r.rescoreBatch(ctx, sig, candidates[start:end], byID)
	}
}

func (r *LLMRescorer) rescoreBatch(ctx context.Context, sig *types.ProjectSignals, batch []*types.Candidate, byID map[string]*types.Candidate) {
	batchCtx, cancel := context.WithTimeout(ctx, rescoreBatchTimeout)
	defer cancel()

	prompt := buildRescorePrompt(sig, batch)
	raw, err := r.client.Complete(batchCtx, prompt, rescoreMaxTokens, rescoreTemperature)
	if err != nil {
		r.log.Warnw("rescore batch failed, keeping rule-based scores",
			"batch_size", len(batch), "error", err)
		return
	}

	var items []rescoreItem
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &items); err != nil {
		r.log.Warnw("rescore response unparseable, keeping rule-based scores",
			"batch_size", len(batch), "error", err)
		return
	}

	for _, item := range items {
		candidate, ok := byID[strings.ToLower(item.PackageID)]
		if !ok {
			continue // model invented or mangled an id
		}
		candidate.RelevanceScore = clamp01(item.RelevanceScore)
		if item.Reasoning != "" {
			candidate.Reason = item.Reasoning
			candidate.LLMReasoning = item.Reasoning
		}
		candidate.Personality = item.Personality
		candidate.UseCases = item.UseCases
		candidate.IntegrationPoints = item.IntegrationPoints
		candidate.ImpactedComponents = item.ImpactedComponents
		candidate.PerformancePrediction = item.PerformancePrediction
	}
}

// clamp01 bounds model-returned scores. Models occasionally return values
// outside [0,1] and an out-of-range score would corrupt the final ordering.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var (
	_ Rescorer = NullRescorer{}
	_ Rescorer = (*LLMRescorer)(nil)
)
