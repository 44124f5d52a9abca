package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/reliefmap/relief/internal/model"
)

func TestKey_ContentDerived(t *testing.T) {
	a := Key([]byte(`{"claims":[]}`))
	b := Key([]byte(`{"claims":[]}`))
	c := Key([]byte(`{"claims":[{"id":"x"}]}`))

	if a != b {
		t.Error("identical content must produce identical keys")
	}
	if a == c {
		t.Error("different content must not collide")
	}
	if !strings.HasPrefix(a, "relief:v1:") {
		t.Errorf("key %q missing version prefix", a)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	result := &model.StructuralAnalysis{Fingerprint: "relief:v1:abc"}

	if _, found := c.Get("missing"); found {
		t.Error("empty cache reported a hit")
	}

	c.Set("k", result)
	got, found := c.Get("k")
	if !found || got != result {
		t.Error("expected the stored pointer back")
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("deleted entry still present")
	}

	c.Set("k1", result)
	c.Set("k2", result)
	c.Clear()
	if _, found := c.Get("k1"); found {
		t.Error("clear left entries behind")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)
	c.Set("k", &model.StructuralAnalysis{})

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("entry survived past its TTL")
	}
}
