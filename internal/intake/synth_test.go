package intake

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/raido/internal/models"
)

func testCitations() []models.Citation {
	return []models.Citation{
		{Kind: models.CiteIdea, ID: "idea-1"},
		{Kind: models.CiteQuestion, ID: "q-1"},
	}
}

func TestSynthesizeTree_SoftwareShape(t *testing.T) {
	nodes := SynthesizeTree(TypeSoftware, testCitations())

	roots := 0
	children := 0
	for _, n := range nodes {
		if n.ParentID == "" {
			roots++
			if n.Priority != models.P1 {
				t.Errorf("root %q priority = %q, want P1", n.Title, n.Priority)
			}
		} else {
			children++
			if n.Priority != models.P2 {
				t.Errorf("child %q priority = %q, want P2", n.Title, n.Priority)
			}
		}
	}
	if roots != 3 {
		t.Errorf("roots = %d, want 3", roots)
	}
	if children != 8 {
		t.Errorf("children = %d, want 8", children)
	}
}

func TestSynthesizeTree_HybridHasOpsRoot(t *testing.T) {
	nodes := SynthesizeTree(TypeHybrid, testCitations())
	found := false
	for _, n := range nodes {
		if n.ParentID == "" && n.Title == "Ops & SOP" {
			found = true
		}
	}
	if !found {
		t.Error("hybrid forest missing the Ops & SOP root")
	}
}

func TestSynthesizeTree_EveryNodeCitesSources(t *testing.T) {
	cites := testCitations()
	for _, n := range SynthesizeTree(TypeOps, cites) {
		if len(n.Sources) == 0 {
			t.Errorf("node %q has no provenance", n.Title)
			continue
		}
		if diff := cmp.Diff(cites, n.Sources); diff != "" {
			t.Errorf("node %q sources mismatch (-want +got):\n%s", n.Title, diff)
		}
	}
}

func TestSynthesizeTree_ChildrenResolveToRoots(t *testing.T) {
	nodes := SynthesizeTree(TypeSoftware, nil)
	rootIDs := map[string]bool{}
	for _, n := range nodes {
		if n.ParentID == "" {
			rootIDs[n.ID] = true
		}
	}
	for _, n := range nodes {
		if n.ParentID != "" && !rootIDs[n.ParentID] {
			t.Errorf("child %q parent %q is not a produced root", n.Title, n.ParentID)
		}
	}
}

func TestSynthesizeTree_FreshIDsPerCall(t *testing.T) {
	a := SynthesizeTree(TypeOps, nil)
	b := SynthesizeTree(TypeOps, nil)
	seen := map[string]bool{}
	for _, n := range a {
		seen[n.ID] = true
	}
	for _, n := range b {
		if seen[n.ID] {
			t.Fatalf("id %q reused across calls", n.ID)
		}
	}
}
