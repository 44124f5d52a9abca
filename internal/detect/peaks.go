// Package detect finds structural anomalies in an enriched claim graph and
// classifies its overall shape: support tiers, signal strength, pattern
// records, and the primary/secondary problem structure.
package detect

import (
	"gonum.org/v1/gonum/stat"

	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// Tiers partitions the claim set by support ratio and carries the composite
// signal strength. Peaks, hills, and floor always partition the claim set
// exactly.
type Tiers struct {
	Peaks []int // arena indexes, supportRatio > peak threshold
	Hills []int // above hill threshold, at or below peak threshold
	Floor []int // everything else

	EdgeSignal     float64
	SupportSignal  float64
	CoverageSignal float64
	SignalStrength float64
}

// TierOf returns which tier an enriched claim falls in.
func (t *Tiers) TierOf(idx int) string {
	for _, p := range t.Peaks {
		if p == idx {
			return "peak"
		}
	}
	for _, h := range t.Hills {
		if h == idx {
			return "hill"
		}
	}
	return "floor"
}

// ClassifyTiers tiers the claims and computes the signal strength composite:
// 0.4*edge + 0.3*support + 0.3*coverage. With zero claims every sub-signal
// and the composite are 0.
func ClassifyTiers(g *graph.Graph, enriched []model.EnrichedClaim, modelCount int, th model.ThresholdConfig) *Tiers {
	t := &Tiers{}

	for i, e := range enriched {
		switch {
		case e.SupportRatio > th.PeakRatio:
			t.Peaks = append(t.Peaks, i)
		case e.SupportRatio > th.HillRatio:
			t.Hills = append(t.Hills, i)
		default:
			t.Floor = append(t.Floor, i)
		}
	}

	claimCount := len(enriched)
	if claimCount == 0 {
		return t
	}

	denom := float64(claimCount) * 0.15
	if denom < 3 {
		denom = 3
	}
	t.EdgeSignal = clamp01(float64(g.EdgeCount()) / denom)
	t.SupportSignal = clamp01(supportVariance(enriched) * 5)
	if modelCount > 0 {
		t.CoverageSignal = clamp01(float64(uniqueSources(enriched)) / float64(modelCount))
	}
	t.SignalStrength = 0.4*t.EdgeSignal + 0.3*t.SupportSignal + 0.3*t.CoverageSignal
	return t
}

// supportVariance is the sample variance of support counts normalized by
// the largest count.
func supportVariance(enriched []model.EnrichedClaim) float64 {
	if len(enriched) < 2 {
		return 0
	}
	largest := 0
	for _, e := range enriched {
		if e.SupportCount > largest {
			largest = e.SupportCount
		}
	}
	if largest == 0 {
		return 0
	}
	normalized := make([]float64, len(enriched))
	for i, e := range enriched {
		normalized[i] = float64(e.SupportCount) / float64(largest)
	}
	return stat.Variance(normalized, nil)
}

func uniqueSources(enriched []model.EnrichedClaim) int {
	sources := make(map[string]bool)
	for _, e := range enriched {
		for _, s := range e.Supporters {
			sources[s] = true
		}
	}
	return len(sources)
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
