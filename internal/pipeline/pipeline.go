// Package pipeline orchestrates the analysis stages in dependency order and
// adds the re-entrancy conveniences callers need: content-derived
// fingerprints, result memoization, and stale-result tracking.
package pipeline

import (
	"encoding/json"

	"github.com/reliefmap/relief/internal/cache"
	"github.com/reliefmap/relief/internal/detect"
	"github.com/reliefmap/relief/internal/enrich"
	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/insight"
	"github.com/reliefmap/relief/internal/model"
)

// Analyzer runs the full pipeline. It is stateless apart from an optional
// result cache; given the same input it returns the same output every time,
// so re-running, memoizing, or running speculatively are all safe.
type Analyzer struct {
	config *model.Config
	cache  cache.Cache
}

// NewAnalyzer creates an analyzer with the given configuration. A nil
// config uses the defaults.
func NewAnalyzer(cfg *model.Config) *Analyzer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	a := &Analyzer{config: cfg}
	if cfg.Cache.Enabled {
		a.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	return a
}

// Fingerprint derives the content key identifying an input. Byte-identical
// inputs share a fingerprint; callers use it to match results against their
// current target and to memoize.
func Fingerprint(in *model.Input) string {
	data, err := json.Marshal(in)
	if err != nil {
		// Input is plain data; marshaling cannot fail in practice.
		return cache.Key(nil)
	}
	return cache.Key(data)
}

// Analyze runs all nine components on one aggregate input. The analysis is
// total: degenerate input (no claims, no edges, cyclic prerequisites)
// produces zeros and low-confidence classifications, never an error.
// Callers must treat the result as read-only; cached runs share it.
func (a *Analyzer) Analyze(in *model.Input) *model.StructuralAnalysis {
	fp := Fingerprint(in)
	if a.cache != nil {
		if hit, ok := a.cache.Get(fp); ok {
			return hit
		}
	}

	th := a.config.Thresholds

	g := graph.Build(in)
	topo := graph.AnalyzeTopology(g)
	landscape := enrich.Landscape(g)
	enriched := enrich.Enrich(g, topo, landscape.ModelCount, th)
	ratios := enrich.Ratios(g, topo, enriched)
	patterns := detect.DetectPatterns(g, topo, enriched, in.Ghosts, th)
	tiers := detect.ClassifyTiers(g, enriched, landscape.ModelCount, th)
	shape := detect.ClassifyShape(g, topo, enriched, tiers, th)
	insights := insight.Generate(enriched, topo.Analysis, patterns, shape)

	result := &model.StructuralAnalysis{
		Graph:              topo.Analysis,
		Landscape:          landscape,
		ClaimsWithLeverage: enriched,
		Ratios:             ratios,
		Patterns:           patterns,
		GhostAnalysis:      model.GhostAnalysis{Count: len(in.Ghosts), Topics: in.Ghosts},
		Shape:              shape,
		Insights:           insights,
		Fingerprint:        fp,
	}

	if a.cache != nil {
		a.cache.Set(fp, result)
	}
	return result
}

// Classify is the lighter-weight entry point: it produces only the problem
// structure, skipping pattern detection, core ratios, and insight
// generation. Callers use it for fast above-the-fold display before the
// heavier pass completes.
func (a *Analyzer) Classify(in *model.Input) model.ProblemStructure {
	th := a.config.Thresholds

	g := graph.Build(in)
	topo := graph.AnalyzeTopology(g)
	landscape := enrich.Landscape(g)
	enriched := enrich.Enrich(g, topo, landscape.ModelCount, th)
	tiers := detect.ClassifyTiers(g, enriched, landscape.ModelCount, th)
	return detect.ClassifyShape(g, topo, enriched, tiers, th)
}
