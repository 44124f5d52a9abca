package detect

import (
	"math"

	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// DetectPatterns scans enriched claims and edges for structural anomalies.
// Ghost topics are passed through unchanged.
func DetectPatterns(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim, ghosts []string, th model.ThresholdConfig) model.PatternBundle {
	return model.PatternBundle{
		LeverageInversions: leverageInversions(g, enriched),
		CascadeRisks:       cascadeRisks(g, topo, th),
		ConflictPairs:      conflictPairs(g, enriched),
		Tradeoffs:          tradeoffs(g, enriched, th),
		ConvergencePoints:  convergencePoints(g, enriched),
		IsolatedClaims:     isolatedClaims(enriched),
		Ghosts:             ghosts,
	}
}

// leverageInversions reports claims flagged by the enricher, distinguishing
// a claim that is the sole supportive feeder of some dependent (a singular
// foundation) from one that is merely well connected while thinly supported.
func leverageInversions(g *graph.Graph, enriched []model.EnrichedClaim) []model.LeverageInversion {
	var out []model.LeverageInversion
	for i, e := range enriched {
		if !e.IsLeverageInversion {
			continue
		}

		var affected []string
		singular := false
		for _, kind := range []model.EdgeKind{model.KindSupports, model.KindPrerequisite} {
			for _, dep := range g.Out(kind, i) {
				if dep == i {
					continue
				}
				affected = append(affected, g.Claim(dep).ID)
				if supportiveInDegree(g, dep) == 1 {
					singular = true
				}
			}
		}

		reason := model.ReasonHighConnectivity
		if singular {
			reason = model.ReasonSingularFoundation
		}
		out = append(out, model.LeverageInversion{
			ClaimID:        e.ID,
			Reason:         reason,
			AffectedClaims: affected,
		})
	}
	return out
}

func supportiveInDegree(g *graph.Graph, idx int) int {
	return len(g.In(model.KindSupports, idx)) + len(g.In(model.KindPrerequisite, idx))
}

// cascadeRisks reports, for each claim, the transitive closure of dependents
// reachable via supports/prerequisite edges. A fan-out or depth at the
// configured threshold qualifies as reportable.
func cascadeRisks(g *graph.Graph, topo *graph.Topology, th model.ThresholdConfig) []model.CascadeRisk {
	var out []model.CascadeRisk
	for i := 0; i < g.ClaimCount(); i++ {
		dependents := topo.Downstream[i]
		depth := topo.Height[i]
		if len(dependents) < th.CascadeMinFanout && depth < th.CascadeMinDepth {
			continue
		}
		risk := model.CascadeRisk{
			SourceID: g.Claim(i).ID,
			Depth:    depth,
		}
		for _, dep := range dependents {
			c := g.Claim(dep)
			risk.DependentIDs = append(risk.DependentIDs, c.ID)
			risk.DependentLabels = append(risk.DependentLabels, c.Label)
		}
		out = append(out, risk)
	}
	return out
}

// conflictPairs reports both endpoints of every conflicts edge.
func conflictPairs(g *graph.Graph, enriched []model.EnrichedClaim) []model.ConflictPair {
	var out []model.ConflictPair
	for _, e := range g.Edges() {
		if e.Kind != model.KindConflicts {
			continue
		}
		from, _ := g.Index(e.From)
		to, _ := g.Index(e.To)

		dynamics := model.DynamicsBalanced
		if math.Abs(enriched[from].SupportRatio-enriched[to].SupportRatio) > 0.25 {
			dynamics = model.DynamicsAsymmetric
		}
		out = append(out, model.ConflictPair{
			ClaimA:          e.From,
			ClaimB:          e.To,
			IsBothConsensus: enriched[from].IsHighSupport && enriched[to].IsHighSupport,
			Dynamics:        dynamics,
		})
	}
	return out
}

// tradeoffs reports both endpoints of every tradeoff edge with a symmetry
// classification and, where one option strictly subsumes the other's
// support, a dominance relation.
func tradeoffs(g *graph.Graph, enriched []model.EnrichedClaim, th model.ThresholdConfig) []model.TradeoffPair {
	var out []model.TradeoffPair
	for _, e := range g.Edges() {
		if e.Kind != model.KindTradeoff {
			continue
		}
		from, _ := g.Index(e.From)
		to, _ := g.Index(e.To)
		a, b := enriched[from], enriched[to]

		symmetry := model.SymmetryAsymmetric
		switch {
		case a.SupportRatio > th.PeakRatio && b.SupportRatio > th.PeakRatio:
			symmetry = model.SymmetryBothHigh
		case a.SupportRatio <= th.HillRatio && b.SupportRatio <= th.HillRatio:
			symmetry = model.SymmetryBothLow
		}

		pair := model.TradeoffPair{ClaimA: a.ID, ClaimB: b.ID, Symmetry: symmetry}
		if dominates(a, b) {
			pair.Dominates = a.ID
		} else if dominates(b, a) {
			pair.Dominates = b.ID
		}
		out = append(out, pair)
	}
	return out
}

// dominates reports whether a strictly subsumes b: every supporter of b also
// backs a, and a carries strictly more support.
func dominates(a, b model.EnrichedClaim) bool {
	if a.SupportCount <= b.SupportCount || len(b.Supporters) == 0 {
		return false
	}
	backers := make(map[string]bool, len(a.Supporters))
	for _, s := range a.Supporters {
		backers[s] = true
	}
	for _, s := range b.Supporters {
		if !backers[s] {
			return false
		}
	}
	return true
}

// convergencePoints finds claims that at least two supportive feeders with
// pairwise-disjoint supporter sets connect to: independent lines of
// reasoning arriving at the same place.
func convergencePoints(g *graph.Graph, enriched []model.EnrichedClaim) []model.ConvergencePoint {
	var out []model.ConvergencePoint
	for i := range enriched {
		var feeders []int
		for _, f := range g.In(model.KindSupports, i) {
			if f != i && len(enriched[f].Supporters) > 0 {
				feeders = append(feeders, f)
			}
		}
		if len(feeders) < 2 {
			continue
		}

		// Greedily count feeders whose supporter sets stay disjoint.
		used := make(map[string]bool)
		disjoint := 0
		var feederIDs []string
		for _, f := range feeders {
			overlap := false
			for _, s := range enriched[f].Supporters {
				if used[s] {
					overlap = true
					break
				}
			}
			if overlap {
				continue
			}
			for _, s := range enriched[f].Supporters {
				used[s] = true
			}
			disjoint++
			feederIDs = append(feederIDs, enriched[f].ID)
		}
		if disjoint < 2 {
			continue
		}
		out = append(out, model.ConvergencePoint{
			ClaimID:    enriched[i].ID,
			SourceSets: disjoint,
			FeederIDs:  feederIDs,
		})
	}
	return out
}

func isolatedClaims(enriched []model.EnrichedClaim) []string {
	var out []string
	for _, e := range enriched {
		if e.IsIsolated {
			out = append(out, e.ID)
		}
	}
	return out
}
