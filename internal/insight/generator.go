// Package insight converts detected patterns and the classified shape into
// a ranked, deduplicated list of human-facing findings.
package insight

import (
	"sort"

	"github.com/reliefmap/relief/internal/model"
)

// Generate runs the five-phase insight algorithm: secondary-pattern insights
// first, a topology-hub keystone fallback, claim-flag supplements, a stable
// sort by source then severity, and finally deduplication by (kind, claim)
// keeping the first occurrence. The ordering is a load-bearing contract: it
// decides which explanation for a claim surfaces to the reader.
func Generate(enriched []model.EnrichedClaim, analysis model.GraphAnalysis, patterns model.PatternBundle, shape model.ProblemStructure) []model.InsightData {
	byID := make(map[string]model.EnrichedClaim, len(enriched))
	for _, e := range enriched {
		byID[e.ID] = e
	}
	anchor := func(id string) model.InsightClaim {
		e := byID[id]
		return model.InsightClaim{ID: e.ID, Label: e.Label, Supporters: e.Supporters}
	}

	var insights []model.InsightData
	dissentCovered := make(map[string]bool)
	keystoneCovered := make(map[string]bool)
	keystoneEmitted := false

	// Phase 1: one insight per secondary pattern instance.
	for _, p := range shape.Patterns {
		switch data := p.Data.(type) {
		case model.DissentData:
			if len(data.Voices) == 0 {
				continue
			}
			for _, v := range data.Voices {
				dissentCovered[v.ClaimID] = true
			}
			insights = append(insights, model.InsightData{
				Kind:     model.InsightDissent,
				Claim:    anchor(data.Voices[0].ClaimID),
				Severity: p.Severity,
				Source:   model.SourcePattern,
				Metadata: map[string]any{
					"voices":   data.Voices,
					"minority": len(data.Voices),
				},
			})
		case model.KeystoneData:
			keystoneEmitted = true
			keystoneCovered[data.ClaimID] = true
			insights = append(insights, model.InsightData{
				Kind:     model.InsightKeystone,
				Claim:    anchor(data.ClaimID),
				Severity: p.Severity,
				Source:   model.SourcePattern,
				Metadata: map[string]any{
					"dependent_ids":  data.DependentIDs,
					"keystone_score": data.KeystoneScore,
				},
			})
		case model.ChainData:
			if len(data.Sequence) == 0 {
				continue
			}
			insights = append(insights, model.InsightData{
				Kind:     model.InsightChain,
				Claim:    anchor(data.Sequence[0]),
				Severity: p.Severity,
				Source:   model.SourcePattern,
				Metadata: map[string]any{
					"sequence":   data.Sequence,
					"weak_links": data.WeakLinks,
				},
			})
		case model.FragileData:
			if len(data.Pairs) == 0 {
				continue
			}
			insights = append(insights, model.InsightData{
				Kind:     model.InsightFragile,
				Claim:    anchor(data.Pairs[0].FoundationID),
				Severity: p.Severity,
				Source:   model.SourcePattern,
				Metadata: map[string]any{"pairs": data.Pairs},
			})
		case model.ChallengedData:
			if len(data.Challenges) == 0 {
				continue
			}
			insights = append(insights, model.InsightData{
				Kind:     model.InsightChallenged,
				Claim:    anchor(data.Challenges[0].ChallengerID),
				Severity: p.Severity,
				Source:   model.SourcePattern,
				Metadata: map[string]any{"challenges": data.Challenges},
			})
		case model.OrphanedData:
			if len(data.ClaimIDs) == 0 {
				continue
			}
			insights = append(insights, model.InsightData{
				Kind:     model.InsightOrphaned,
				Claim:    anchor(data.ClaimIDs[0]),
				Severity: p.Severity,
				Source:   model.SourcePattern,
				Metadata: map[string]any{"claim_ids": data.ClaimIDs},
			})
		}
	}

	// Phase 2: topology hub as keystone fallback.
	if !keystoneEmitted && analysis.HubClaim != "" {
		keystoneCovered[analysis.HubClaim] = true
		insights = append(insights, model.InsightData{
			Kind:     model.InsightKeystone,
			Claim:    anchor(analysis.HubClaim),
			Severity: model.SeverityMedium,
			Source:   model.SourceGraph,
			Metadata: map[string]any{"hub_dominance": analysis.HubDominance},
		})
	}

	// Phase 3: claim-flag supplements not already covered above.
	for _, inv := range patterns.LeverageInversions {
		if dissentCovered[inv.ClaimID] {
			continue
		}
		severity := model.SeverityMedium
		if inv.Reason == model.ReasonSingularFoundation {
			severity = model.SeverityHigh
		}
		insights = append(insights, model.InsightData{
			Kind:     model.InsightLeverageInversion,
			Claim:    anchor(inv.ClaimID),
			Severity: severity,
			Source:   model.SourceClaimFlag,
			Metadata: map[string]any{
				"reason":          string(inv.Reason),
				"affected_claims": inv.AffectedClaims,
			},
		})
	}

	for _, e := range enriched {
		if !e.IsEvidenceGap {
			continue
		}
		insights = append(insights, model.InsightData{
			Kind:     model.InsightEvidenceGap,
			Claim:    anchor(e.ID),
			Severity: model.SeverityMedium,
			Source:   model.SourceClaimFlag,
			Metadata: map[string]any{"evidence_gap_score": e.EvidenceGapScore},
		})
	}

	for _, pair := range patterns.ConflictPairs {
		if !pair.IsBothConsensus {
			continue
		}
		insights = append(insights, model.InsightData{
			Kind:     model.InsightConsensusConflict,
			Claim:    anchor(pair.ClaimA),
			Severity: model.SeverityHigh,
			Source:   model.SourceClaimFlag,
			Metadata: map[string]any{
				"other_claim": pair.ClaimB,
				"dynamics":    string(pair.Dynamics),
			},
		})
	}

	for _, risk := range patterns.CascadeRisks {
		if risk.Depth < 3 || keystoneCovered[risk.SourceID] {
			continue
		}
		severity := model.SeverityMedium
		if len(risk.DependentIDs) >= 5 {
			severity = model.SeverityHigh
		}
		insights = append(insights, model.InsightData{
			Kind:     model.InsightCascadeRisk,
			Claim:    anchor(risk.SourceID),
			Severity: severity,
			Source:   model.SourceClaimFlag,
			Metadata: map[string]any{
				"dependent_ids": risk.DependentIDs,
				"depth":         risk.Depth,
			},
		})
	}

	for _, e := range enriched {
		if !e.IsOutlier {
			continue
		}
		insights = append(insights, model.InsightData{
			Kind:     model.InsightSupportOutlier,
			Claim:    anchor(e.ID),
			Severity: model.SeverityLow,
			Source:   model.SourceClaimFlag,
			Metadata: map[string]any{"support_skew": e.SupportSkew},
		})
	}

	// Phase 4: stable sort by source priority, then severity.
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Source.Rank() != insights[j].Source.Rank() {
			return insights[i].Source.Rank() < insights[j].Source.Rank()
		}
		return insights[i].Severity.Rank() < insights[j].Severity.Rank()
	})

	// Phase 5: dedupe by (kind, claim), keeping the first occurrence.
	seen := make(map[model.InsightKey]bool, len(insights))
	deduped := insights[:0]
	for _, ins := range insights {
		key := ins.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, ins)
	}
	return deduped
}
