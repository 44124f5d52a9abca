package model

import (
	"strings"
	"testing"
)

func TestDecodeInput_NumericSupporters(t *testing.T) {
	in, err := DecodeInput([]byte(`{
		"claims": [
			{"id": "a", "supporters": ["gpt", 7, 12]},
			{"id": "b", "supporters": []}
		],
		"edges": [{"from": "a", "to": "b", "kind": "supports"}]
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := in.Claims[0].Supporters
	if len(got) != 3 || got[1] != "7" || got[2] != "12" {
		t.Errorf("supporters = %v, want numeric ids normalized to strings", got)
	}
}

func TestDecodeInput_RejectsUnsupportedSupporterType(t *testing.T) {
	_, err := DecodeInput([]byte(`{"claims": [{"id": "a", "supporters": [{"bad": true}]}]}`))
	if err == nil {
		t.Fatal("expected an error for an object supporter id")
	}
}

func TestDecodeInput_MissingClaimID(t *testing.T) {
	_, err := DecodeInput([]byte(`{"claims": [{"label": "unnamed"}]}`))
	if err == nil || !strings.Contains(err.Error(), "id") {
		t.Errorf("err = %v, want a missing-id contract violation", err)
	}
}

func TestDecodeInput_MissingEdgeEndpoint(t *testing.T) {
	_, err := DecodeInput([]byte(`{
		"claims": [{"id": "a"}],
		"edges": [{"from": "a", "kind": "supports"}]
	}`))
	if err == nil || !strings.Contains(err.Error(), "endpoint") {
		t.Errorf("err = %v, want a missing-endpoint contract violation", err)
	}
}

func TestDecodeInput_MalformedJSON(t *testing.T) {
	_, err := DecodeInput([]byte(`{"claims": [`))
	if err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestCanonicalKind(t *testing.T) {
	cases := map[string]EdgeKind{
		"supports":     KindSupports,
		"supported_by": KindSupports,
		"depends_on":   KindPrerequisite,
		"tension":      KindTradeoff,
		"contradicts":  KindConflicts,
	}
	for raw, want := range cases {
		got, ok := CanonicalKind(raw)
		if !ok || got != want {
			t.Errorf("CanonicalKind(%q) = (%s, %v), want (%s, true)", raw, got, ok, want)
		}
	}

	got, ok := CanonicalKind("quibbles")
	if ok || got != KindSupports {
		t.Errorf("CanonicalKind(quibbles) = (%s, %v), want supports fallback", got, ok)
	}
}
