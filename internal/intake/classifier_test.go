package intake

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify_Software(t *testing.T) {
	c := Classify("I want to build a mobile app with an API and auth")
	if c.Type != TypeSoftware {
		t.Errorf("type = %q, want %q", c.Type, TypeSoftware)
	}
	want := map[string]bool{"software": true, "mobile": true, "api": true}
	got := map[string]bool{}
	for _, tag := range c.Tags {
		got[tag] = true
	}
	for tag := range want {
		if !got[tag] {
			t.Errorf("missing tag %q in %v", tag, c.Tags)
		}
	}
}

func TestClassify_Ops(t *testing.T) {
	c := Classify("Organize the cleaning crew schedule for the warehouse")
	if c.Type != TypeOps {
		t.Errorf("type = %q, want %q", c.Type, TypeOps)
	}
}

func TestClassify_HybridBothSignals(t *testing.T) {
	c := Classify("A dashboard app to manage crew shift scheduling")
	if c.Type != TypeHybrid {
		t.Errorf("type = %q, want %q", c.Type, TypeHybrid)
	}
}

func TestClassify_HybridNoSignals(t *testing.T) {
	c := Classify("Something vague with no useful keywords")
	if c.Type != TypeHybrid {
		t.Errorf("type = %q, want %q", c.Type, TypeHybrid)
	}
	if diff := cmp.Diff([]string{"hybrid"}, c.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_Risks(t *testing.T) {
	c := Classify("A team app with payments, push notifications, and GDPR compliance")
	want := []string{"multi-user", "notifications", "payments", "pii-privacy"}
	if diff := cmp.Diff(want, c.Risks); diff != "" {
		t.Errorf("risks mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_NoRisksIsEmptyNotNil(t *testing.T) {
	c := Classify("a simple app")
	if c.Risks == nil {
		t.Error("risks should be an empty slice, not nil")
	}
	if len(c.Risks) != 0 {
		t.Errorf("risks = %v, want none", c.Risks)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "mobile app for tracking motorcycle trips with offline maps and a REST API"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Classify(text)); diff != "" {
			t.Fatalf("classification changed between runs (-first +now):\n%s", diff)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	lower := Classify("a mobile app with an api")
	upper := Classify("A MOBILE APP WITH AN API")
	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Errorf("case changed the result (-lower +upper):\n%s", diff)
	}
}
