package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/raido/internal/models"
)

func flat(pairs ...[2]string) []models.FeatureNode {
	out := make([]models.FeatureNode, len(pairs))
	for i, p := range pairs {
		out[i] = models.FeatureNode{ID: p[0], ParentID: p[1], Title: p[0]}
	}
	return out
}

func TestBuild_PreservesInsertionOrder(t *testing.T) {
	nodes := flat(
		[2]string{"a", ""},
		[2]string{"b", ""},
		[2]string{"a1", "a"},
		[2]string{"a2", "a"},
	)
	roots := Build(nodes)
	if len(roots) != 2 || roots[0].ID != "a" || roots[1].ID != "b" {
		t.Fatalf("roots = %v", roots)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("children of a = %d, want 2", len(roots[0].Children))
	}
	if roots[0].Children[0].ID != "a1" || roots[0].Children[1].ID != "a2" {
		t.Errorf("child order = %s, %s", roots[0].Children[0].ID, roots[0].Children[1].ID)
	}
}

func TestBuild_UnresolvedParentBecomesRoot(t *testing.T) {
	nodes := flat([2]string{"orphan", "gone"})
	roots := Build(nodes)
	if len(roots) != 1 || roots[0].ID != "orphan" {
		t.Fatalf("roots = %v, want orphan promoted", roots)
	}
}

func TestBuild_SelfParentBecomesRoot(t *testing.T) {
	nodes := flat([2]string{"loop", "loop"})
	roots := Build(nodes)
	if len(roots) != 1 || roots[0].ID != "loop" {
		t.Fatalf("self-parented node should be a root, got %v", roots)
	}
}

func TestFlattenBuildRoundTrip(t *testing.T) {
	nodes := flat(
		[2]string{"a", ""},
		[2]string{"a1", "a"},
		[2]string{"a1x", "a1"},
		[2]string{"b", ""},
	)
	got := Flatten(Build(nodes))
	if diff := cmp.Diff(nodes, got); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestValidate_DuplicateID(t *testing.T) {
	nodes := flat([2]string{"a", ""}, [2]string{"a", ""})
	if err := Validate(nodes); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestValidate_Cycle(t *testing.T) {
	nodes := flat([2]string{"a", "b"}, [2]string{"b", "a"})
	if err := Validate(nodes); err == nil {
		t.Error("expected cycle error")
	}
}

func TestValidate_UnresolvedParentAllowed(t *testing.T) {
	nodes := flat([2]string{"a", "missing"})
	if err := Validate(nodes); err != nil {
		t.Errorf("unresolved parent should be allowed: %v", err)
	}
}

func TestDescendants(t *testing.T) {
	nodes := flat(
		[2]string{"a", ""},
		[2]string{"a1", "a"},
		[2]string{"a2", "a"},
		[2]string{"a1x", "a1"},
		[2]string{"b", ""},
	)
	got := Descendants(nodes, "a")
	want := []string{"a1", "a2", "a1x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descendants mismatch (-want +got):\n%s", diff)
	}
	if ds := Descendants(nodes, "b"); len(ds) != 0 {
		t.Errorf("leaf descendants = %v, want none", ds)
	}
}
