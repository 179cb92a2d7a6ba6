package ident

import (
	"strings"
	"testing"
)

func TestNew_Format(t *testing.T) {
	id := New("node")
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "node" {
		t.Fatalf("id = %q, want three dash-separated parts with prefix", id)
	}
	if len(parts[2]) != 8 {
		t.Errorf("random suffix = %q, want 8 hex chars", parts[2])
	}
}

func TestNew_UniqueWithinBurst(t *testing.T) {
	// Tree synthesis mints a dozen ids inside one millisecond; only the
	// random suffix keeps them apart.
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New("node")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d mints", id, i)
		}
		seen[id] = struct{}{}
	}
}
