package insight

import (
	"testing"

	"github.com/reliefmap/relief/internal/model"
)

func enrichedSet(ids ...string) []model.EnrichedClaim {
	out := make([]model.EnrichedClaim, len(ids))
	for i, id := range ids {
		out[i] = model.EnrichedClaim{Claim: model.Claim{ID: id, Label: "claim " + id}}
	}
	return out
}

func kinds(insights []model.InsightData) []model.InsightKind {
	out := make([]model.InsightKind, len(insights))
	for i, ins := range insights {
		out[i] = ins.Kind
	}
	return out
}

func TestGenerate_SecondaryPatternsBecomeInsights(t *testing.T) {
	enriched := enrichedSet("a", "b", "c")
	shape := model.ProblemStructure{
		Patterns: []model.SecondaryPattern{
			{
				Kind:     model.SecondaryDissent,
				Severity: model.SeverityHigh,
				Data: model.DissentData{Voices: []model.DissentVoice{
					{ClaimID: "a", Leverage: 4},
				}},
			},
			{
				Kind:     model.SecondaryKeystone,
				Severity: model.SeverityMedium,
				Data:     model.KeystoneData{ClaimID: "b", DependentIDs: []string{"c"}},
			},
		},
	}

	insights := Generate(enriched, model.GraphAnalysis{}, model.PatternBundle{}, shape)
	if len(insights) != 2 {
		t.Fatalf("insights = %v, want 2", kinds(insights))
	}
	if insights[0].Kind != model.InsightDissent || insights[0].Claim.ID != "a" {
		t.Errorf("first insight = %+v, want dissent anchored at a", insights[0])
	}
	if insights[0].Source != model.SourcePattern {
		t.Errorf("source = %s, want pattern", insights[0].Source)
	}
}

func TestGenerate_HubFallsBackWhenNoKeystonePattern(t *testing.T) {
	enriched := enrichedSet("hub", "x")
	analysis := model.GraphAnalysis{HubClaim: "hub", HubDominance: 3}

	insights := Generate(enriched, analysis, model.PatternBundle{}, model.ProblemStructure{})
	if len(insights) != 1 {
		t.Fatalf("insights = %v, want exactly the hub fallback", kinds(insights))
	}
	ins := insights[0]
	if ins.Kind != model.InsightKeystone || ins.Source != model.SourceGraph {
		t.Errorf("insight = %+v, want graph-sourced keystone", ins)
	}
	if ins.Severity != model.SeverityMedium {
		t.Errorf("severity = %s, want medium", ins.Severity)
	}
}

func TestGenerate_KeystonePatternSuppressesHubFallback(t *testing.T) {
	enriched := enrichedSet("key", "hub")
	analysis := model.GraphAnalysis{HubClaim: "hub", HubDominance: 2}
	shape := model.ProblemStructure{
		Patterns: []model.SecondaryPattern{{
			Kind:     model.SecondaryKeystone,
			Severity: model.SeverityHigh,
			Data:     model.KeystoneData{ClaimID: "key"},
		}},
	}

	insights := Generate(enriched, analysis, model.PatternBundle{}, shape)
	if len(insights) != 1 || insights[0].Claim.ID != "key" {
		t.Errorf("insights = %v, want only the pattern keystone", kinds(insights))
	}
}

func TestGenerate_DissentSuppressesInversionSupplement(t *testing.T) {
	enriched := enrichedSet("a", "b")
	shape := model.ProblemStructure{
		Patterns: []model.SecondaryPattern{{
			Kind:     model.SecondaryDissent,
			Severity: model.SeverityMedium,
			Data:     model.DissentData{Voices: []model.DissentVoice{{ClaimID: "a"}}},
		}},
	}
	patterns := model.PatternBundle{
		LeverageInversions: []model.LeverageInversion{
			{ClaimID: "a", Reason: model.ReasonHighConnectivity},
			{ClaimID: "b", Reason: model.ReasonSingularFoundation},
		},
	}

	insights := Generate(enriched, model.GraphAnalysis{}, patterns, shape)
	var supplements []model.InsightData
	for _, ins := range insights {
		if ins.Kind == model.InsightLeverageInversion {
			supplements = append(supplements, ins)
		}
	}
	if len(supplements) != 1 || supplements[0].Claim.ID != "b" {
		t.Fatalf("supplements = %+v, want only the uncovered claim b", supplements)
	}
	if supplements[0].Severity != model.SeverityHigh {
		t.Errorf("severity = %s, want high for a singular foundation", supplements[0].Severity)
	}
}

func TestGenerate_ConsensusConflictIsHighSeverity(t *testing.T) {
	enriched := enrichedSet("a", "b")
	patterns := model.PatternBundle{
		ConflictPairs: []model.ConflictPair{
			{ClaimA: "a", ClaimB: "b", IsBothConsensus: true, Dynamics: model.DynamicsBalanced},
			{ClaimA: "b", ClaimB: "a", IsBothConsensus: false},
		},
	}

	insights := Generate(enriched, model.GraphAnalysis{}, patterns, model.ProblemStructure{})
	if len(insights) != 1 {
		t.Fatalf("insights = %v, want one consensus conflict", kinds(insights))
	}
	ins := insights[0]
	if ins.Kind != model.InsightConsensusConflict || ins.Claim.ID != "a" {
		t.Errorf("insight = %+v, want consensus_conflict anchored at a", ins)
	}
	if ins.Severity != model.SeverityHigh {
		t.Errorf("severity = %s, want high", ins.Severity)
	}
}

func TestGenerate_CascadeRiskRules(t *testing.T) {
	enriched := enrichedSet("shallow", "deep", "wide", "covered")
	patterns := model.PatternBundle{
		CascadeRisks: []model.CascadeRisk{
			{SourceID: "shallow", Depth: 2, DependentIDs: []string{"a", "b", "c"}},
			{SourceID: "deep", Depth: 3, DependentIDs: []string{"a", "b"}},
			{SourceID: "wide", Depth: 4, DependentIDs: []string{"a", "b", "c", "d", "e"}},
			{SourceID: "covered", Depth: 5, DependentIDs: []string{"a"}},
		},
	}
	shape := model.ProblemStructure{
		Patterns: []model.SecondaryPattern{{
			Kind:     model.SecondaryKeystone,
			Severity: model.SeverityMedium,
			Data:     model.KeystoneData{ClaimID: "covered"},
		}},
	}

	insights := Generate(enriched, model.GraphAnalysis{}, patterns, shape)
	got := map[string]model.Severity{}
	for _, ins := range insights {
		if ins.Kind == model.InsightCascadeRisk {
			got[ins.Claim.ID] = ins.Severity
		}
	}
	if _, found := got["shallow"]; found {
		t.Error("shallow cascade below the depth floor must not surface")
	}
	if _, found := got["covered"]; found {
		t.Error("cascade already covered by a keystone insight must not surface")
	}
	if got["deep"] != model.SeverityMedium {
		t.Errorf("deep severity = %s, want medium", got["deep"])
	}
	if got["wide"] != model.SeverityHigh {
		t.Errorf("wide severity = %s, want high at 5 dependents", got["wide"])
	}
}

func TestGenerate_OrderingBySourceThenSeverity(t *testing.T) {
	enriched := enrichedSet("a", "b", "c", "d")
	for i := range enriched {
		if enriched[i].ID == "d" {
			enriched[i].IsOutlier = true
			enriched[i].SupportSkew = 0.9
		}
	}
	analysis := model.GraphAnalysis{HubClaim: "c"}
	shape := model.ProblemStructure{
		Patterns: []model.SecondaryPattern{
			{
				Kind:     model.SecondaryOrphaned,
				Severity: model.SeverityLow,
				Data:     model.OrphanedData{ClaimIDs: []string{"b"}},
			},
			{
				Kind:     model.SecondaryDissent,
				Severity: model.SeverityHigh,
				Data:     model.DissentData{Voices: []model.DissentVoice{{ClaimID: "a"}}},
			},
		},
	}

	insights := Generate(enriched, analysis, model.PatternBundle{}, shape)
	want := []model.InsightKind{
		model.InsightDissent,        // pattern, high
		model.InsightOrphaned,       // pattern, low
		model.InsightKeystone,       // graph fallback
		model.InsightSupportOutlier, // claim flag
	}
	got := kinds(insights)
	if len(got) != len(want) {
		t.Fatalf("insights = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestGenerate_DedupeKeepsFirstOccurrence(t *testing.T) {
	enriched := enrichedSet("a")
	enriched[0].IsEvidenceGap = true
	patterns := model.PatternBundle{
		ConflictPairs: []model.ConflictPair{
			{ClaimA: "a", ClaimB: "a", IsBothConsensus: true, Dynamics: model.DynamicsBalanced},
			{ClaimA: "a", ClaimB: "a", IsBothConsensus: true, Dynamics: model.DynamicsAsymmetric},
		},
	}

	insights := Generate(enriched, model.GraphAnalysis{}, patterns, model.ProblemStructure{})
	seen := map[model.InsightKey]int{}
	for _, ins := range insights {
		seen[ins.Key()]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("key %+v appears %d times, want unique", key, n)
		}
	}
	for _, ins := range insights {
		if ins.Kind == model.InsightConsensusConflict {
			if ins.Metadata["dynamics"] != "balanced" {
				t.Errorf("dedupe kept %v, want the first occurrence", ins.Metadata["dynamics"])
			}
		}
	}
}

func TestGenerate_NothingToReport(t *testing.T) {
	insights := Generate(nil, model.GraphAnalysis{}, model.PatternBundle{}, model.ProblemStructure{})
	if len(insights) != 0 {
		t.Errorf("insights = %v, want none", kinds(insights))
	}
}
