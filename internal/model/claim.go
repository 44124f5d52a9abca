package model

// Claim represents a discrete assertion with measurable support from one or
// more reasoning sources. Claims are immutable once produced by the graph
// builder.
type Claim struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Text         string   `json:"text"`
	Supporters   []string `json:"supporters"`    // distinct source identifiers, first-seen order
	SupportCount int      `json:"support_count"` // defaults to max(1, len(Supporters))
	Category     string   `json:"category,omitempty"`
	Role         string   `json:"role,omitempty"`
}

// EdgeKind classifies the relationship carried by an edge.
type EdgeKind string

const (
	KindSupports     EdgeKind = "supports"
	KindConflicts    EdgeKind = "conflicts"
	KindTradeoff     EdgeKind = "tradeoff"
	KindPrerequisite EdgeKind = "prerequisite"
)

// Edge is a directed relationship between two claims. From underpins To for
// supports and prerequisite edges; multiple edges between the same pair are
// permitted.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// legacyKinds maps relationship names from older schema versions onto the
// four canonical kinds.
var legacyKinds = map[string]EdgeKind{
	"supports":       KindSupports,
	"supported_by":   KindSupports,
	"reinforces":     KindSupports,
	"agrees":         KindSupports,
	"conflicts":      KindConflicts,
	"conflicts_with": KindConflicts,
	"contradicts":    KindConflicts,
	"disagrees":      KindConflicts,
	"tradeoff":       KindTradeoff,
	"trade_off":      KindTradeoff,
	"tension":        KindTradeoff,
	"prerequisite":   KindPrerequisite,
	"requires":       KindPrerequisite,
	"depends_on":     KindPrerequisite,
	"builds_on":      KindPrerequisite,
}

// CanonicalKind normalizes a raw relationship name. Unrecognized names map
// to supports with ok=false so the caller can record a data-quality note
// instead of failing.
func CanonicalKind(raw string) (EdgeKind, bool) {
	if k, found := legacyKinds[raw]; found {
		return k, true
	}
	return KindSupports, false
}

// EnrichedClaim is a Claim plus the per-claim scores and population-relative
// flags computed by the enricher. Flags are percentile-derived over the
// current claim population and are recomputed whenever the claim set changes.
type EnrichedClaim struct {
	Claim

	SupportRatio     float64 `json:"support_ratio"`      // SupportCount / modelCount, in [0,1]
	Leverage         float64 `json:"leverage"`           // structural centrality
	KeystoneScore    float64 `json:"keystone_score"`     // leverage scaled by inverse support
	EvidenceGapScore float64 `json:"evidence_gap_score"` // dependents per unit of support
	SupportSkew      float64 `json:"support_skew"`       // share held by the largest source

	IsHighSupport       bool `json:"is_high_support"`
	IsLeverageInversion bool `json:"is_leverage_inversion"`
	IsKeystone          bool `json:"is_keystone"`
	IsEvidenceGap       bool `json:"is_evidence_gap"`
	IsOutlier           bool `json:"is_outlier"`
	IsContested         bool `json:"is_contested"`
	IsConditional       bool `json:"is_conditional"`
	IsChallenger        bool `json:"is_challenger"`
	IsIsolated          bool `json:"is_isolated"`
	IsChainRoot         bool `json:"is_chain_root"`
}
