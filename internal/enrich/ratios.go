package enrich

import (
	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// Ratios computes the five headline ratios. Every result lies in [0,1] and
// every division is guarded, so the empty graph yields all zeros.
func Ratios(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim) model.CoreRatios {
	return model.CoreRatios{
		Concentration: concentration(enriched),
		Alignment:     alignment(g, enriched),
		Tension:       tension(g),
		Fragmentation: fragmentation(topo, len(enriched)),
		Depth:         chainDepth(topo, len(enriched)),
	}
}

// concentration is the share of total support held by the single
// most-supported claim.
func concentration(enriched []model.EnrichedClaim) float64 {
	total, largest := 0, 0
	for _, e := range enriched {
		total += e.SupportCount
		if e.SupportCount > largest {
			largest = e.SupportCount
		}
	}
	if total == 0 {
		return 0
	}
	return float64(largest) / float64(total)
}

// alignment is the supportive fraction of edges whose endpoints are both
// high-support claims. With no such edges the top of the graph is vacuously
// aligned; an empty claim set scores 0.
func alignment(g *graph.Graph, enriched []model.EnrichedClaim) float64 {
	if len(enriched) == 0 {
		return 0
	}
	high := make(map[string]bool, len(enriched))
	for _, e := range enriched {
		if e.IsHighSupport {
			high[e.ID] = true
		}
	}

	supportive, total := 0, 0
	for _, e := range g.Edges() {
		if !high[e.From] || !high[e.To] {
			continue
		}
		total++
		if e.Kind == model.KindSupports || e.Kind == model.KindPrerequisite {
			supportive++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(supportive) / float64(total)
}

// tension is the fraction of all edges that are conflicts or tradeoff.
func tension(g *graph.Graph) float64 {
	edges := g.Edges()
	if len(edges) == 0 {
		return 0
	}
	tense := 0
	for _, e := range edges {
		if e.Kind == model.KindConflicts || e.Kind == model.KindTradeoff {
			tense++
		}
	}
	return float64(tense) / float64(len(edges))
}

// fragmentation is 1 minus the largest component's share of all claims.
func fragmentation(topo *graph.Topology, claimCount int) float64 {
	if claimCount == 0 {
		return 0
	}
	largest := 0
	for _, size := range topo.ComponentSizes {
		if size > largest {
			largest = size
		}
	}
	return 1 - float64(largest)/float64(claimCount)
}

// chainDepth normalizes the longest prerequisite chain by claim count.
func chainDepth(topo *graph.Topology, claimCount int) float64 {
	if claimCount == 0 {
		return 0
	}
	return clamp01(float64(len(topo.Analysis.LongestChain)) / float64(claimCount))
}
