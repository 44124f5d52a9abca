package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Input is the single aggregate record the pipeline consumes. Order of
// Claims and Edges affects only tie-breaks, never correctness.
type Input struct {
	Claims      []RawClaim `json:"claims"`
	Edges       []RawEdge  `json:"edges"`
	Ghosts      []string   `json:"ghosts,omitempty"`
	SourceQuery string     `json:"source_query,omitempty"`
}

// RawClaim is a claim record as delivered by a collection transport, possibly
// from an older schema version. Supporter identifiers may be numbers or
// strings; SupportCount may be absent or non-positive.
type RawClaim struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Text         string   `json:"text"`
	Supporters   []string `json:"-"`
	SupportCount int      `json:"support_count"`
	Category     string   `json:"category"`
	Role         string   `json:"role"`
}

// rawClaimJSON mirrors RawClaim with supporters left untyped so numeric
// identifiers from legacy schemas decode without error.
type rawClaimJSON struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Text         string `json:"text"`
	Supporters   []any  `json:"supporters"`
	SupportCount int    `json:"support_count"`
	Category     string `json:"category"`
	Role         string `json:"role"`
}

// UnmarshalJSON accepts numeric or string supporter identifiers and
// normalizes them to strings.
func (c *RawClaim) UnmarshalJSON(data []byte) error {
	var raw rawClaimJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.Label = raw.Label
	c.Text = raw.Text
	c.SupportCount = raw.SupportCount
	c.Category = raw.Category
	c.Role = raw.Role
	c.Supporters = c.Supporters[:0]
	for _, s := range raw.Supporters {
		switch v := s.(type) {
		case string:
			c.Supporters = append(c.Supporters, v)
		case float64:
			c.Supporters = append(c.Supporters, strconv.FormatInt(int64(v), 10))
		default:
			return fmt.Errorf("claim %q: unsupported supporter identifier type %T", raw.ID, s)
		}
	}
	return nil
}

// MarshalJSON round-trips supporters so content fingerprints cover them.
func (c RawClaim) MarshalJSON() ([]byte, error) {
	raw := rawClaimJSON{
		ID:           c.ID,
		Label:        c.Label,
		Text:         c.Text,
		SupportCount: c.SupportCount,
		Category:     c.Category,
		Role:         c.Role,
		Supporters:   make([]any, len(c.Supporters)),
	}
	for i, s := range c.Supporters {
		raw.Supporters[i] = s
	}
	return json.Marshal(raw)
}

// RawEdge is an edge record with its relationship name not yet normalized.
type RawEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// DecodeInput parses and validates an aggregate input record. Missing
// required fields are a contract violation and fail fast here; everything
// past this boundary is total.
func DecodeInput(data []byte) (*Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Validate checks the input for contract violations: claims without ids and
// edges without endpoints. Edges referencing unknown claims are not errors;
// the graph builder drops those.
func (in *Input) Validate() error {
	for i, c := range in.Claims {
		if c.ID == "" {
			return fmt.Errorf("claim at index %d: missing required field id", i)
		}
	}
	for i, e := range in.Edges {
		if e.From == "" || e.To == "" {
			return fmt.Errorf("edge at index %d: missing required endpoint (from=%q, to=%q)", i, e.From, e.To)
		}
	}
	return nil
}
