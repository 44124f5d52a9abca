package detect

import (
	"sort"

	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// detectSecondary finds the zero or more secondary patterns layered under
// the primary, in a fixed deterministic order.
func detectSecondary(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim, tiers *Tiers, th model.ThresholdConfig) []model.SecondaryPattern {
	var patterns []model.SecondaryPattern
	if p, ok := dissentPattern(enriched); ok {
		patterns = append(patterns, p)
	}
	if p, ok := keystonePattern(g, topo, enriched, th); ok {
		patterns = append(patterns, p)
	}
	if p, ok := chainPattern(g, topo, enriched, th); ok {
		patterns = append(patterns, p)
	}
	if p, ok := fragilePattern(g, enriched, tiers, th); ok {
		patterns = append(patterns, p)
	}
	if p, ok := challengedPattern(g, enriched, tiers); ok {
		patterns = append(patterns, p)
	}
	if p, ok := orphanedPattern(enriched); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

// dissentPattern collects minority claims with outsized argumentative
// leverage, ranked strongest first.
func dissentPattern(enriched []model.EnrichedClaim) (model.SecondaryPattern, bool) {
	var voices []model.DissentVoice
	for _, e := range enriched {
		if !e.IsLeverageInversion {
			continue
		}
		voices = append(voices, model.DissentVoice{
			ClaimID:      e.ID,
			Label:        e.Label,
			Leverage:     e.Leverage,
			SupportRatio: e.SupportRatio,
		})
	}
	if len(voices) == 0 {
		return model.SecondaryPattern{}, false
	}
	sort.SliceStable(voices, func(i, j int) bool { return voices[i].Leverage > voices[j].Leverage })

	severity := model.SeverityMedium
	if len(voices) >= 2 {
		severity = model.SeverityHigh
	}
	return model.SecondaryPattern{
		Kind:     model.SecondaryDissent,
		Severity: severity,
		Data:     model.DissentData{Voices: voices},
	}, true
}

// keystonePattern picks the single strongest keystone candidate: the
// flagged claim with the highest keystone score.
func keystonePattern(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim, th model.ThresholdConfig) (model.SecondaryPattern, bool) {
	best := -1
	for i, e := range enriched {
		if !e.IsKeystone {
			continue
		}
		if best < 0 || e.KeystoneScore > enriched[best].KeystoneScore {
			best = i
		}
	}
	if best < 0 {
		return model.SecondaryPattern{}, false
	}

	dependents := topo.Downstream[best]
	severity := model.SeverityMedium
	if len(dependents) >= th.CascadeMinFanout {
		severity = model.SeverityHigh
	}
	data := model.KeystoneData{
		ClaimID:       enriched[best].ID,
		Label:         enriched[best].Label,
		KeystoneScore: enriched[best].KeystoneScore,
	}
	for _, dep := range dependents {
		data.DependentIDs = append(data.DependentIDs, g.Claim(dep).ID)
	}
	return model.SecondaryPattern{
		Kind:     model.SecondaryKeystone,
		Severity: severity,
		Data:     data,
	}, true
}

// chainPattern reports a long prerequisite sequence with its weak links:
// members at or below the floor tier.
func chainPattern(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim, th model.ThresholdConfig) (model.SecondaryPattern, bool) {
	chain := topo.Analysis.LongestChain
	if len(chain) < th.ChainMinLength {
		return model.SecondaryPattern{}, false
	}

	data := model.ChainData{Sequence: chain}
	for _, id := range chain {
		idx, ok := g.Index(id)
		if ok && enriched[idx].SupportRatio <= th.HillRatio {
			data.WeakLinks = append(data.WeakLinks, id)
		}
	}

	severity := model.SeverityMedium
	if len(data.WeakLinks) > 0 {
		severity = model.SeverityHigh
	}
	return model.SecondaryPattern{
		Kind:     model.SecondaryChain,
		Severity: severity,
		Data:     data,
	}, true
}

// fragilePattern finds peaks resting on weakly supported foundations: a
// prerequisite at the floor tier under a peak.
func fragilePattern(g *graph.Graph, enriched []model.EnrichedClaim, tiers *Tiers, th model.ThresholdConfig) (model.SecondaryPattern, bool) {
	var pairs []model.FragilePair
	for _, peak := range tiers.Peaks {
		for _, foundation := range g.In(model.KindPrerequisite, peak) {
			if foundation == peak {
				continue
			}
			f := enriched[foundation]
			if f.SupportRatio <= th.HillRatio {
				pairs = append(pairs, model.FragilePair{
					PeakID:          enriched[peak].ID,
					FoundationID:    f.ID,
					FoundationRatio: f.SupportRatio,
				})
			}
		}
	}
	if len(pairs) == 0 {
		return model.SecondaryPattern{}, false
	}
	return model.SecondaryPattern{
		Kind:     model.SecondaryFragile,
		Severity: model.SeverityHigh,
		Data:     model.FragileData{Pairs: pairs},
	}, true
}

// challengedPattern finds low-support claims directly attacking peaks.
func challengedPattern(g *graph.Graph, enriched []model.EnrichedClaim, tiers *Tiers) (model.SecondaryPattern, bool) {
	isPeak := make(map[int]bool, len(tiers.Peaks))
	for _, p := range tiers.Peaks {
		isPeak[p] = true
	}

	var challenges []model.Challenge
	for i, e := range enriched {
		if !e.IsChallenger {
			continue
		}
		for _, target := range g.Out(model.KindConflicts, i) {
			if !isPeak[target] {
				continue
			}
			challenges = append(challenges, model.Challenge{
				ChallengerID:    e.ID,
				PeakID:          enriched[target].ID,
				ChallengerRatio: e.SupportRatio,
				PeakRatio:       enriched[target].SupportRatio,
			})
		}
	}
	if len(challenges) == 0 {
		return model.SecondaryPattern{}, false
	}
	return model.SecondaryPattern{
		Kind:     model.SecondaryChallenged,
		Severity: model.SeverityMedium,
		Data:     model.ChallengedData{Challenges: challenges},
	}, true
}

// orphanedPattern finds claims with high support but no structural
// connections at all.
func orphanedPattern(enriched []model.EnrichedClaim) (model.SecondaryPattern, bool) {
	var ids []string
	for _, e := range enriched {
		if e.IsHighSupport && e.IsIsolated {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return model.SecondaryPattern{}, false
	}
	return model.SecondaryPattern{
		Kind:     model.SecondaryOrphaned,
		Severity: model.SeverityLow,
		Data:     model.OrphanedData{ClaimIDs: ids},
	}, true
}
