package enrich

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// Enrich computes per-claim scores and the percentile-derived flags. Flags
// depend on the whole claim population, so the result is only valid for the
// claim set it was computed from.
func Enrich(g *graph.Graph, topo *graph.Topology, modelCount int, th model.ThresholdConfig) []model.EnrichedClaim {
	n := g.ClaimCount()
	enriched := make([]model.EnrichedClaim, n)

	for i := 0; i < n; i++ {
		c := g.Claim(i)
		e := model.EnrichedClaim{Claim: c}

		if modelCount > 0 {
			e.SupportRatio = clamp01(float64(c.SupportCount) / float64(modelCount))
		}
		e.Leverage = leverage(g, i)
		e.KeystoneScore = e.Leverage / maxf(e.SupportRatio, 0.1)
		e.EvidenceGapScore = float64(len(topo.Downstream[i])) / float64(maxi(c.SupportCount, 1))
		e.SupportSkew = supportSkew(g.SourceWeights(i))

		enriched[i] = e
	}

	applyFlags(g, topo, enriched, th)
	return enriched
}

// leverage combines out-degree in the supports/prerequisite graph with
// depth-weighted downstream reach: a dependent at distance d contributes
// 1/d, so claims with many transitive dependents score high regardless of
// their own support.
func leverage(g *graph.Graph, idx int) float64 {
	outDeg := g.OutDegree(idx, model.KindSupports, model.KindPrerequisite)

	dist := make(map[int]int)
	queue := []int{idx}
	dist[idx] = 0
	reach := 0.0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, kind := range []model.EdgeKind{model.KindSupports, model.KindPrerequisite} {
			for _, nb := range g.Out(kind, cur) {
				if _, seen := dist[nb]; seen {
					continue
				}
				dist[nb] = dist[cur] + 1
				reach += 1.0 / float64(dist[nb])
				queue = append(queue, nb)
			}
		}
	}
	return float64(outDeg) + reach
}

// supportSkew is the fraction of a claim's support concentrated in its
// single largest contributing source.
func supportSkew(weights map[string]int) float64 {
	total, largest := 0, 0
	for _, w := range weights {
		total += w
		if w > largest {
			largest = w
		}
	}
	if total == 0 {
		return 0
	}
	return float64(largest) / float64(total)
}

// applyFlags derives the boolean flags from population percentiles. Two
// passes: support-relative thresholds first, then the flags that compare a
// claim against already-flagged neighbors.
func applyFlags(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim, th model.ThresholdConfig) {
	n := len(enriched)
	if n == 0 {
		return
	}

	ratios := collect(enriched, func(e model.EnrichedClaim) float64 { return e.SupportRatio })
	leverages := collect(enriched, func(e model.EnrichedClaim) float64 { return e.Leverage })
	keystones := collect(enriched, func(e model.EnrichedClaim) float64 { return e.KeystoneScore })
	gaps := collect(enriched, func(e model.EnrichedClaim) float64 { return e.EvidenceGapScore })
	skews := collect(enriched, func(e model.EnrichedClaim) float64 { return e.SupportSkew })

	highSupport := topSlice(ratios, th.HighSupportPercentile)
	lowSupportCut := bottomCut(ratios, th.LowSupportPercentile)
	topLeverage := topSlice(leverages, th.LeveragePercentile)
	topKeystone := topSlice(keystones, th.KeystonePercentile)
	topGap := topSlice(gaps, th.EvidenceGapPercentile)
	topSkew := topSlice(skews, th.OutlierPercentile)

	chainRoot := ""
	if chain := topo.Analysis.LongestChain; len(chain) > 0 {
		chainRoot = chain[0]
	}

	for i := range enriched {
		e := &enriched[i]
		e.IsHighSupport = e.SupportRatio > 0 && highSupport.contains(e.SupportRatio)
		e.IsLeverageInversion = e.Leverage > 0 && topLeverage.contains(e.Leverage) && e.SupportRatio <= lowSupportCut
		e.IsKeystone = topKeystone.contains(e.KeystoneScore) && e.KeystoneScore > 0 && len(topo.Downstream[i]) > 0
		e.IsEvidenceGap = topGap.contains(e.EvidenceGapScore) && e.EvidenceGapScore >= 1
		e.IsOutlier = topSkew.contains(e.SupportSkew) && e.SupportSkew >= th.OutlierMinSkew && totalWeight(g.SourceWeights(i)) >= 2
		e.IsConditional = conditionalCategory(e.Category)
		e.IsIsolated = g.Degree(i) == 0
		e.IsChainRoot = chainRoot != "" && e.ID == chainRoot
	}

	// Second pass: flags defined against high-support neighbors.
	for i := range enriched {
		e := &enriched[i]
		attacksConsensus := false
		touchesConsensus := false
		for _, nb := range g.Out(model.KindConflicts, i) {
			if enriched[nb].IsHighSupport {
				attacksConsensus = true
				touchesConsensus = true
			}
		}
		for _, nb := range g.In(model.KindConflicts, i) {
			if enriched[nb].IsHighSupport {
				touchesConsensus = true
			}
		}
		e.IsContested = touchesConsensus
		e.IsChallenger = !e.IsHighSupport && attacksConsensus &&
			(e.Role == "challenger" || e.SupportRatio <= lowSupportCut)
	}
}

func conditionalCategory(category string) bool {
	switch category {
	case "conditional", "assumption", "hypothesis":
		return true
	}
	return false
}

func collect(enriched []model.EnrichedClaim, field func(model.EnrichedClaim) float64) []float64 {
	values := make([]float64, len(enriched))
	for i, e := range enriched {
		values[i] = field(e)
	}
	return values
}

// percentileSlice marks the top slice of a population: values strictly
// above the empirical quantile cut, widened to the cut itself when the cut
// is already the maximum. The widening keeps degenerate populations (heavy
// ties, a single dominant value) from flagging nobody.
type percentileSlice struct {
	cut float64
	max float64
}

func (p percentileSlice) contains(v float64) bool {
	if v > p.cut {
		return true
	}
	return p.cut >= p.max && v >= p.cut
}

// topSlice returns the slice above the (1-frac) empirical quantile.
func topSlice(values []float64, frac float64) percentileSlice {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentileSlice{
		cut: stat.Quantile(clamp01(1-frac), stat.Empirical, sorted, nil),
		max: sorted[len(sorted)-1],
	}
}

// bottomCut returns the value at the frac empirical quantile: claims at or
// below it form the bottom frac.
func bottomCut(values []float64, frac float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(clamp01(frac), stat.Empirical, sorted, nil)
}

func totalWeight(weights map[string]int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	return total
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

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
