// Package rank implements the multi-criteria ranking engine. It is a pure
// function of its inputs: no state, no I/O, safe for concurrent use.
package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/okazmin/kompas/internal/model"
)

// wpmEps floors criterion values before exponentiation so that a zero value
// cannot annihilate the weighted product.
const wpmEps = 0.01

// waspasLambda blends the additive and multiplicative sub-models
const waspasLambda = 0.5

// Rank scores the candidates with the selected method and returns them in
// descending score order. Ties retain input order (stable sort). Inputs are
// clamped to [0,1] before any formula runs.
func Rank(cands []model.Candidate, w model.Weights, method model.Method) ([]model.Ranked, error) {
	clamped := clampAll(cands)

	switch method {
	case model.MethodSAW:
		return sortRanked(rankSAW(clamped, w)), nil
	case model.MethodWASPAS:
		return sortRanked(rankWASPAS(clamped, w)), nil
	case model.MethodTOPSIS:
		return sortRanked(rankTOPSIS(clamped, w)), nil
	case model.MethodComposite:
		return sortRanked(rankComposite(clamped, w)), nil
	default:
		return nil, fmt.Errorf("unsupported ranking method %v", method)
	}
}

func clampAll(cands []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, len(cands))
	for i, c := range cands {
		c.Impact = clamp01(c.Impact)
		c.Urgency = clamp01(c.Urgency)
		c.Uncertainty = clamp01(c.Uncertainty)
		out[i] = c
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sortRanked orders by score descending; stable, so tied candidates keep
// their input order.
func sortRanked(ranked []model.Ranked) []model.Ranked {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// --- SAW ---

func sawScore(c model.Candidate, w model.Weights) (score, impactTerm, urgencyTerm, uncertaintyTerm float64) {
	impactTerm = c.Impact * w.Impact
	urgencyTerm = c.Urgency * w.Urgency
	uncertaintyTerm = -c.Uncertainty * w.Uncertainty
	return impactTerm + urgencyTerm + uncertaintyTerm, impactTerm, urgencyTerm, uncertaintyTerm
}

func rankSAW(cands []model.Candidate, w model.Weights) []model.Ranked {
	ranked := make([]model.Ranked, len(cands))
	for i, c := range cands {
		score, ti, tu, tc := sawScore(c, w)
		ranked[i] = model.Ranked{
			Candidate: c,
			Score:     score,
			Explain: model.Explain{
				Method: model.MethodSAW,
				SAW: &model.SAWExplain{
					ImpactTerm:      ti,
					UrgencyTerm:     tu,
					UncertaintyTerm: tc,
				},
			},
		}
	}
	return ranked
}

// --- WASPAS ---

func wpmScore(c model.Candidate, w model.Weights) float64 {
	// Uncertainty is a cost criterion: transformed to the benefit (1 - u)
	return math.Pow(math.Max(wpmEps, c.Impact), w.Impact) *
		math.Pow(math.Max(wpmEps, c.Urgency), w.Urgency) *
		math.Pow(math.Max(wpmEps, 1-c.Uncertainty), w.Uncertainty)
}

func rankWASPAS(cands []model.Candidate, w model.Weights) []model.Ranked {
	ranked := make([]model.Ranked, len(cands))
	for i, c := range cands {
		saw, _, _, _ := sawScore(c, w)
		wpm := wpmScore(c, w)
		ranked[i] = model.Ranked{
			Candidate: c,
			Score:     waspasLambda*saw + (1-waspasLambda)*wpm,
			Explain: model.Explain{
				Method: model.MethodWASPAS,
				WASPAS: &model.WASPASExplain{
					SAWScore: saw,
					WPMScore: wpm,
					Lambda:   waspasLambda,
				},
			},
		}
	}
	return ranked
}

// --- TOPSIS ---

func rankTOPSIS(cands []model.Candidate, w model.Weights) []model.Ranked {
	n := len(cands)
	ranked := make([]model.Ranked, n)
	if n == 0 {
		return ranked
	}

	// Decision matrix, one column per criterion
	cols := [3][]float64{
		make([]float64, n), // impact (benefit)
		make([]float64, n), // urgency (benefit)
		make([]float64, n), // uncertainty (cost)
	}
	for i, c := range cands {
		cols[0][i] = c.Impact
		cols[1][i] = c.Urgency
		cols[2][i] = c.Uncertainty
	}

	// Vector normalization; an all-zero column stays all-zero
	for k := range cols {
		var ss float64
		for _, v := range cols[k] {
			ss += v * v
		}
		if ss == 0 {
			continue
		}
		norm := math.Sqrt(ss)
		for i := range cols[k] {
			cols[k][i] /= norm
		}
	}

	// Weights normalized to sum 1
	weights := [3]float64{w.Impact, w.Urgency, w.Uncertainty}
	wSum := weights[0] + weights[1] + weights[2]
	if wSum != 0 {
		for k := range weights {
			weights[k] /= wSum
		}
	}
	for k := range cols {
		for i := range cols[k] {
			cols[k][i] *= weights[k]
		}
	}

	// Ideal and anti-ideal points: benefit criteria take the column max as
	// ideal, the cost criterion (uncertainty) takes the column min.
	var ideal, antiIdeal [3]float64
	for k := range cols {
		lo, hi := cols[k][0], cols[k][0]
		for _, v := range cols[k][1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if k == 2 {
			ideal[k], antiIdeal[k] = lo, hi
		} else {
			ideal[k], antiIdeal[k] = hi, lo
		}
	}

	for i, c := range cands {
		var sPlus, sMinus float64
		for k := range cols {
			dPlus := cols[k][i] - ideal[k]
			dMinus := cols[k][i] - antiIdeal[k]
			sPlus += dPlus * dPlus
			sMinus += dMinus * dMinus
		}
		sPlus = math.Sqrt(sPlus)
		sMinus = math.Sqrt(sMinus)

		score := 0.0
		if sPlus+sMinus > 0 {
			score = sMinus / (sPlus + sMinus)
		}
		ranked[i] = model.Ranked{
			Candidate: c,
			Score:     score,
			Explain: model.Explain{
				Method: model.MethodTOPSIS,
				TOPSIS: &model.TOPSISExplain{
					DistIdeal:     sPlus,
					DistAntiIdeal: sMinus,
				},
			},
		}
	}
	return ranked
}

// --- Composite (Borda-style ensemble) ---

func rankComposite(cands []model.Candidate, w model.Weights) []model.Ranked {
	n := len(cands)
	ranked := make([]model.Ranked, n)
	if n == 0 {
		return ranked
	}

	// Each sub-method runs on a fresh copy of the candidate set
	sawPos := positions(scoresOf(rankSAW(copyCands(cands), w)))
	waspasPos := positions(scoresOf(rankWASPAS(copyCands(cands), w)))
	topsisPos := positions(scoresOf(rankTOPSIS(copyCands(cands), w)))

	for i, c := range cands {
		avgRank := float64(sawPos[i]+waspasPos[i]+topsisPos[i]) / 3.0
		score := 1 - avgRank/float64(n)
		if score < 0 {
			score = 0
		}
		ranked[i] = model.Ranked{
			Candidate: c,
			Score:     score,
			Explain: model.Explain{
				Method: model.MethodComposite,
				Composite: &model.CompositeExplain{
					SAWRank:     sawPos[i] + 1,
					WASPASRank:  waspasPos[i] + 1,
					TOPSISRank:  topsisPos[i] + 1,
					AverageRank: avgRank + 1,
				},
			},
		}
	}
	return ranked
}

func copyCands(cands []model.Candidate) []model.Candidate {
	return append([]model.Candidate(nil), cands...)
}

// scoresOf reads unsorted per-candidate scores in input order
func scoresOf(ranked []model.Ranked) []float64 {
	scores := make([]float64, len(ranked))
	for i, r := range ranked {
		scores[i] = r.Score
	}
	return scores
}

// positions returns each candidate's zero-indexed rank under a descending
// stable ordering of the given scores.
func positions(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	pos := make([]int, len(scores))
	for rankIdx, candIdx := range order {
		pos[candIdx] = rankIdx
	}
	return pos
}
