package detect

import (
	"testing"

	"github.com/reliefmap/relief/internal/model"
)

func TestDetectPatterns_TradeoffDominance(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{
		{ID: "a", Supporters: []string{"m1", "m2", "m3", "m4"}},
		{ID: "b", Supporters: []string{"m1", "m2"}},
	}, []model.RawEdge{
		{From: "a", To: "b", Kind: "tradeoff"},
	})
	enriched := enrichedFixture(g, map[string]float64{"a": 0.8, "b": 0.4})

	bundle := DetectPatterns(g, topo, enriched, nil, model.DefaultConfig().Thresholds)
	if len(bundle.Tradeoffs) != 1 {
		t.Fatalf("tradeoffs = %v, want one pair", bundle.Tradeoffs)
	}
	pair := bundle.Tradeoffs[0]
	if pair.Dominates != "a" {
		t.Errorf("dominates = %q, want a (superset supporters, more support)", pair.Dominates)
	}
	if pair.Symmetry != model.SymmetryAsymmetric {
		t.Errorf("symmetry = %s, want asymmetric", pair.Symmetry)
	}
}

func TestDetectPatterns_TradeoffSymmetry(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{
		{ID: "a", Supporters: []string{"m1"}},
		{ID: "b", Supporters: []string{"m2"}},
		{ID: "c", Supporters: []string{"m3"}},
		{ID: "d", Supporters: []string{"m4"}},
	}, []model.RawEdge{
		{From: "a", To: "b", Kind: "tradeoff"},
		{From: "c", To: "d", Kind: "tradeoff"},
	})
	enriched := enrichedFixture(g, map[string]float64{"a": 0.8, "b": 0.6, "c": 0.2, "d": 0.1})

	bundle := DetectPatterns(g, topo, enriched, nil, model.DefaultConfig().Thresholds)
	symmetries := map[string]model.TradeoffSymmetry{}
	for _, p := range bundle.Tradeoffs {
		symmetries[p.ClaimA] = p.Symmetry
		if p.Dominates != "" {
			t.Errorf("pair %s/%s: no dominance expected with disjoint supporters, got %q",
				p.ClaimA, p.ClaimB, p.Dominates)
		}
	}
	if symmetries["a"] != model.SymmetryBothHigh {
		t.Errorf("a/b symmetry = %s, want both_high", symmetries["a"])
	}
	if symmetries["c"] != model.SymmetryBothLow {
		t.Errorf("c/d symmetry = %s, want both_low", symmetries["c"])
	}
}

func TestDetectPatterns_ConflictPairs(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}, []model.RawEdge{
		{From: "a", To: "b", Kind: "conflicts"},
		{From: "a", To: "c", Kind: "conflicts"},
	})
	enriched := enrichedFixture(g, map[string]float64{"a": 0.8, "b": 0.7, "c": 0.2})
	for i := range enriched {
		enriched[i].IsHighSupport = enriched[i].SupportRatio > 0.5
	}

	bundle := DetectPatterns(g, topo, enriched, nil, model.DefaultConfig().Thresholds)
	if len(bundle.ConflictPairs) != 2 {
		t.Fatalf("conflict pairs = %v, want two", bundle.ConflictPairs)
	}
	for _, p := range bundle.ConflictPairs {
		switch p.ClaimB {
		case "b":
			if !p.IsBothConsensus || p.Dynamics != model.DynamicsBalanced {
				t.Errorf("a/b pair = %+v, want both-consensus balanced", p)
			}
		case "c":
			if p.IsBothConsensus || p.Dynamics != model.DynamicsAsymmetric {
				t.Errorf("a/c pair = %+v, want asymmetric, not both-consensus", p)
			}
		}
	}
}

func TestDetectPatterns_CascadeRisk(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{
		{ID: "root"}, {ID: "mid"}, {ID: "leaf"}, {ID: "tip"},
	}, []model.RawEdge{
		{From: "root", To: "mid", Kind: "prerequisite"},
		{From: "mid", To: "leaf", Kind: "prerequisite"},
		{From: "leaf", To: "tip", Kind: "supports"},
	})
	enriched := enrichedFixture(g, nil)

	bundle := DetectPatterns(g, topo, enriched, nil, model.DefaultConfig().Thresholds)
	if len(bundle.CascadeRisks) != 1 {
		t.Fatalf("cascade risks = %v, want only the root", bundle.CascadeRisks)
	}
	risk := bundle.CascadeRisks[0]
	if risk.SourceID != "root" || risk.Depth != 3 || len(risk.DependentIDs) != 3 {
		t.Errorf("risk = %+v, want root with depth 3 and 3 dependents", risk)
	}
}

func TestDetectPatterns_LeverageInversionReasons(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{
		{ID: "solo"}, {ID: "dep1"},
		{ID: "crowd"}, {ID: "dep2"}, {ID: "other"},
	}, []model.RawEdge{
		{From: "solo", To: "dep1", Kind: "supports"},
		{From: "crowd", To: "dep2", Kind: "supports"},
		{From: "other", To: "dep2", Kind: "supports"},
	})
	enriched := enrichedFixture(g, nil)
	for i := range enriched {
		switch enriched[i].ID {
		case "solo", "crowd":
			enriched[i].IsLeverageInversion = true
		}
	}

	bundle := DetectPatterns(g, topo, enriched, nil, model.DefaultConfig().Thresholds)
	reasons := map[string]model.InversionReason{}
	for _, inv := range bundle.LeverageInversions {
		reasons[inv.ClaimID] = inv.Reason
	}
	if reasons["solo"] != model.ReasonSingularFoundation {
		t.Errorf("solo reason = %s, want singular_foundation", reasons["solo"])
	}
	if reasons["crowd"] != model.ReasonHighConnectivity {
		t.Errorf("crowd reason = %s, want high_connectivity_low_support", reasons["crowd"])
	}
}

func TestDetectPatterns_ConvergencePoints(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{
		{ID: "target"},
		{ID: "f1", Supporters: []string{"m1", "m2"}},
		{ID: "f2", Supporters: []string{"m3"}},
		{ID: "f3", Supporters: []string{"m2", "m4"}},
	}, []model.RawEdge{
		{From: "f1", To: "target", Kind: "supports"},
		{From: "f2", To: "target", Kind: "supports"},
		{From: "f3", To: "target", Kind: "supports"},
	})
	enriched := enrichedFixture(g, nil)

	bundle := DetectPatterns(g, topo, enriched, nil, model.DefaultConfig().Thresholds)
	if len(bundle.ConvergencePoints) != 1 {
		t.Fatalf("convergence points = %v, want one", bundle.ConvergencePoints)
	}
	cp := bundle.ConvergencePoints[0]
	if cp.ClaimID != "target" || cp.SourceSets != 2 {
		t.Errorf("convergence = %+v, want target with 2 disjoint source sets", cp)
	}
}

func TestDetectPatterns_GhostsPassThrough(t *testing.T) {
	g, topo := buildFixture(t, []model.RawClaim{{ID: "a"}}, nil)
	enriched := enrichedFixture(g, nil)
	enriched[0].IsIsolated = true

	ghosts := []string{"latency", "cost"}
	bundle := DetectPatterns(g, topo, enriched, ghosts, model.DefaultConfig().Thresholds)
	if len(bundle.Ghosts) != 2 || bundle.Ghosts[0] != "latency" {
		t.Errorf("ghosts = %v, want pass-through unchanged", bundle.Ghosts)
	}
	if len(bundle.IsolatedClaims) != 1 || bundle.IsolatedClaims[0] != "a" {
		t.Errorf("isolated = %v, want [a]", bundle.IsolatedClaims)
	}
}
