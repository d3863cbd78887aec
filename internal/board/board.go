// Package board orchestrates one evaluation cycle: evidence context, data
// quality, per-card rule resolution, candidate derivation and ranking.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/okazmin/kompas/internal/cache"
	"github.com/okazmin/kompas/internal/evidence"
	"github.com/okazmin/kompas/internal/model"
	"github.com/okazmin/kompas/internal/quality"
	"github.com/okazmin/kompas/internal/rank"
	"github.com/okazmin/kompas/internal/resolve"
	"github.com/okazmin/kompas/internal/worker"
)

// Default impact by resolved status
const (
	impactRed     = 0.9
	impactYellow  = 0.6
	impactGreen   = 0.3
	impactDefault = 0.5
)

// Report is the complete result of one board evaluation
type Report struct {
	CustomerName string    `json:"customer_name"`
	GeneratedAt  time.Time `json:"generated_at"`

	Method  string        `json:"method"`
	Weights model.Weights `json:"weights"`

	EvidenceContext map[string]float64         `json:"evidence_context"`
	QualityPenalty  float64                    `json:"quality_penalty"`
	QualityChecks   []model.QualityCheckResult `json:"quality_checks"`

	Entries []Entry `json:"entries"` // Descending by score
}

// Entry pairs one card's resolved state with its ranking result
type Entry struct {
	Card    model.DecisionCardConfig `json:"card"`
	State   model.DecisionCardState  `json:"state"`
	Score   float64                  `json:"score"`
	Explain model.Explain            `json:"explain"`
}

// Board evaluates decision cards against evidence and ranks them
type Board struct {
	config   *model.Config
	resolver *resolve.Resolver
	gateway  *quality.Gateway
	pool     *worker.Pool
	cache    cache.Cache // nil when caching is disabled
}

// New creates a board from the given configuration
func New(cfg *model.Config) *Board {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return &Board{
		config:   cfg,
		resolver: resolve.NewResolver(),
		gateway:  quality.NewGateway(cfg.Quality),
		pool:     worker.NewPool(cfg.Board.Workers),
		cache:    store,
	}
}

// Evaluate runs one full evaluation cycle over the survey and KPI tables.
// The survey table may be nil (no survey loaded); cards requiring driver
// evidence then resolve to UNKNOWN.
func (b *Board) Evaluate(ctx context.Context, survey, kpis *quality.Table) (*Report, error) {
	method, err := model.ParseMethod(b.config.Board.Method)
	if err != nil {
		return nil, err
	}

	penalty, checks := b.gateway.Assess(survey, b.config.Drivers)
	evidenceCtx := evidence.BuildContext(survey, kpis, b.config.Drivers)

	if b.cache != nil {
		if report, ok := b.lookup(evidenceCtx, method); ok {
			return report, nil
		}
	}

	states, err := b.resolveAll(ctx, evidenceCtx)
	if err != nil {
		return nil, err
	}

	cands := make([]model.Candidate, len(b.config.DecisionCards))
	for i := range b.config.DecisionCards {
		card := &b.config.DecisionCards[i]
		cands[i] = deriveCandidate(card, &states[i], penalty)
	}

	ranked, err := rank.Rank(cands, b.config.Weights, method)
	if err != nil {
		return nil, err
	}

	report := &Report{
		CustomerName:    b.config.CustomerName,
		GeneratedAt:     time.Now().UTC(),
		Method:          method.String(),
		Weights:         b.config.Weights,
		EvidenceContext: evidenceCtx,
		QualityPenalty:  penalty,
		QualityChecks:   checks,
	}
	for _, r := range ranked {
		state := *r.State
		state.ConfidencePenalty = penalty
		state.TotalPriority = r.Score
		score := r.Score
		if state.Status == model.StatusUnknown {
			// Missing evidence overrides everything else
			state.TotalPriority = 0
			score = 0
		}
		report.Entries = append(report.Entries, Entry{
			Card:    *r.Card,
			State:   state,
			Score:   score,
			Explain: r.Explain,
		})
	}
	// Forcing UNKNOWN cards to 0 may break the sort; restore it
	sortEntries(report.Entries)

	if b.cache != nil {
		b.store(evidenceCtx, method, report)
	}
	return report, nil
}

// sortEntries re-applies the descending stable order after overrides
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

type resolveJob struct {
	resolver *resolve.Resolver
	card     model.DecisionCardConfig
	ctx      map[string]float64
}

type resolveResult struct {
	state model.DecisionCardState
}

func (r *resolveResult) GetError() error { return nil }

func (j *resolveJob) Execute(ctx context.Context) worker.Result {
	select {
	case <-ctx.Done():
		return &resolveResult{state: model.DecisionCardState{
			CardID: j.card.ID,
			Status: model.StatusUnknown,
			KeyEvidence: []string{
				fmt.Sprintf("Evaluation cancelled: %v", ctx.Err()),
			},
		}}
	default:
		return &resolveResult{state: j.resolver.Resolve(j.card, j.ctx)}
	}
}

// resolveAll evaluates every card concurrently, preserving card order
func (b *Board) resolveAll(ctx context.Context, evidenceCtx map[string]float64) ([]model.DecisionCardState, error) {
	jobs := make([]worker.Job, len(b.config.DecisionCards))
	for i, card := range b.config.DecisionCards {
		jobs[i] = &resolveJob{resolver: b.resolver, card: card, ctx: evidenceCtx}
	}

	results := b.pool.Run(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	states := make([]model.DecisionCardState, len(results))
	for i, r := range results {
		states[i] = r.(*resolveResult).state
	}
	return states, nil
}

// deriveCandidate maps a resolved card to ranking inputs. Impact follows
// status, urgency follows evidence-trail keywords, uncertainty is the
// global quality penalty. Persisted simulation overrides win.
func deriveCandidate(card *model.DecisionCardConfig, state *model.DecisionCardState, penalty float64) model.Candidate {
	impact := impactDefault
	switch state.Status {
	case model.StatusRed:
		impact = impactRed
	case model.StatusYellow:
		impact = impactYellow
	case model.StatusGreen:
		impact = impactGreen
	}

	urgency := 0.5
	trail := strings.ToLower(strings.Join(state.KeyEvidence, " "))
	switch {
	case strings.Contains(trail, "turnover"):
		urgency = 0.9
	case strings.Contains(trail, "overtime"):
		urgency = 0.7
	case strings.Contains(trail, "engagement"):
		urgency = 0.6
	}

	if card.SimulationImpact != nil {
		impact = *card.SimulationImpact
	}
	if card.SimulationUrgency != nil {
		urgency = *card.SimulationUrgency
	}

	return model.Candidate{
		ID:          card.ID,
		Impact:      impact,
		Urgency:     urgency,
		Uncertainty: penalty,
		Card:        card,
		State:       state,
	}
}

// cacheKey serializes the deterministic scoring inputs. JSON map keys are
// sorted, so the same context always produces the same bytes.
func (b *Board) cacheKey(evidenceCtx map[string]float64, method model.Method) string {
	ctxBytes, _ := json.Marshal(evidenceCtx)
	weightBytes, _ := json.Marshal(b.config.Weights)
	return cache.Fingerprint(ctxBytes, weightBytes, []byte(method.String()))
}

func (b *Board) lookup(evidenceCtx map[string]float64, method model.Method) (*Report, bool) {
	data, found := b.cache.Get(b.cacheKey(evidenceCtx, method))
	if !found {
		return nil, false
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (b *Board) store(evidenceCtx map[string]float64, method model.Method, report *Report) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	_ = b.cache.Set(b.cacheKey(evidenceCtx, method), data, b.config.Cache.TTL)
}
