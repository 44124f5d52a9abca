package model

// InsightKind classifies a generated finding.
type InsightKind string

const (
	InsightDissent           InsightKind = "dissent"
	InsightKeystone          InsightKind = "keystone"
	InsightChain             InsightKind = "chain"
	InsightFragile           InsightKind = "fragile"
	InsightChallenged        InsightKind = "challenged"
	InsightOrphaned          InsightKind = "orphaned"
	InsightLeverageInversion InsightKind = "leverage_inversion"
	InsightEvidenceGap       InsightKind = "evidence_gap"
	InsightConsensusConflict InsightKind = "consensus_conflict"
	InsightCascadeRisk       InsightKind = "cascade_risk"
	InsightSupportOutlier    InsightKind = "support_outlier"
)

// InsightSource records which phase produced an insight. Source order is a
// load-bearing contract: pattern-sourced insights outrank graph-sourced ones,
// which outrank claim-flag supplements.
type InsightSource string

const (
	SourcePattern   InsightSource = "pattern"
	SourceGraph     InsightSource = "graph"
	SourceClaimFlag InsightSource = "claim_flag"
)

var sourceRank = map[InsightSource]int{
	SourcePattern:   0,
	SourceGraph:     1,
	SourceClaimFlag: 2,
}

// Rank returns the sort rank of a source. Unknown sources sort last.
func (s InsightSource) Rank() int {
	if r, ok := sourceRank[s]; ok {
		return r
	}
	return len(sourceRank)
}

// InsightClaim is the claim an insight is anchored to.
type InsightClaim struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Supporters []string `json:"supporters"`
}

// InsightData is one ranked, human-facing finding.
type InsightData struct {
	Kind     InsightKind    `json:"kind"`
	Claim    InsightClaim   `json:"claim"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Severity Severity       `json:"severity"`
	Source   InsightSource  `json:"source"`
}

// InsightKey is the composite deduplication key: no two insights in a final
// list share the same key.
type InsightKey struct {
	Kind    InsightKind
	ClaimID string
}

// Key returns the deduplication key for an insight.
func (d InsightData) Key() InsightKey {
	return InsightKey{Kind: d.Kind, ClaimID: d.Claim.ID}
}
