package collector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/unbound-force/spec-collector/internal/placeholder"
	"github.com/unbound-force/spec-collector/internal/playwright"
	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

func TestLevelValueSet_Add(t *testing.T) {
	s := NewLevelValueSet(3)
	s.Add([]string{"Auth", "Login"})
	s.Add([]string{"Shop", "Cart", "Add item", "Ignored"})
	s.Add([]string{"Auth", "Logout"})
	s.Add(nil)

	want := [][]string{
		{"Auth", "Shop"},
		{"Login", "Cart", "Logout"},
		{"Add item"},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, s.Values(i)); diff != "" {
			t.Errorf("level %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	if s.Values(3) != nil || s.Values(-1) != nil {
		t.Error("out-of-range levels should be nil")
	}
	if !s.contains(1, "Cart") || s.contains(0, "Cart") || s.contains(5, "Cart") {
		t.Error("Contains reported wrong membership")
	}
}

func TestLevelValueSet_ValuesIsCopy(t *testing.T) {
	s := NewLevelValueSet(1)
	s.Add([]string{"A"})
	v := s.Values(0)
	v[0] = "mutated"
	if s.Values(0)[0] != "A" {
		t.Error("Values must return a copy")
	}
}

func TestLevelValueSet_Union(t *testing.T) {
	a := NewLevelValueSet(1)
	a.Add([]string{"Auth"})

	b := NewLevelValueSet(2)
	b.Add([]string{"Shop", "Cart"})
	b.Add([]string{"Auth", "Login"})

	a.Union(b)
	a.Union(nil)

	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if diff := cmp.Diff([]string{"Auth", "Shop"}, a.Values(0)); diff != "" {
		t.Errorf("level 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Cart", "Login"}, a.Values(1)); diff != "" {
		t.Errorf("level 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelValueSet_RunsAreIndependent(t *testing.T) {
	first := Merge(&playwright.Report{Suites: []playwright.Suite{{
		File: "auth/login.spec.ts", Specs: []playwright.Spec{spec("a", "auth/login.spec.ts", "passed")},
	}}}, "", nil)
	second := Merge(nil, "", []placeholder.Test{{TestName: "b", FileName: "shop/cart.spec.ts"}})

	r1 := Aggregate(first.Specs, first.Placeholders, Options{})
	r2 := Aggregate(second.Specs, second.Placeholders, Options{})

	if r1.Levels.contains(0, "Shop") || r2.Levels.contains(0, "Auth") {
		t.Fatal("aggregation runs share level state")
	}

	combined := NewLevelValueSet(0)
	combined.Union(r1.Levels)
	combined.Union(r2.Levels)
	if diff := cmp.Diff([]string{"Auth", "Shop"}, combined.Values(0)); diff != "" {
		t.Errorf("combined level 0 mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTrees(t *testing.T) {
	s := NewLevelValueSet(2)
	s.Add([]string{"Auth", "Login"})
	s.Add([]string{"", "Orphan"})

	attrs, trees := BuildTrees(s)

	want := []taxonomy.ProjectAttribute{
		{Title: "lvl0", Code: "lvl0", Values: []taxonomy.AttributeValue{
			{Code: "lvl0_Auth", Title: "Auth"},
		}},
		{Title: "lvl1", Code: "lvl1", Values: []taxonomy.AttributeValue{
			{Code: "lvl1_Login", Title: "Login"},
			{Code: "lvl1_Orphan", Title: "Orphan"},
		}},
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
	if len(trees) != 1 {
		t.Fatalf("expected exactly one tree, got %d", len(trees))
	}
	if diff := cmp.Diff([]string{"lvl0", "lvl1"}, trees[0].Attributes); diff != "" {
		t.Errorf("tree levels mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTrees_Nil(t *testing.T) {
	attrs, trees := BuildTrees(nil)
	if len(attrs) != 0 {
		t.Errorf("expected no attributes, got %d", len(attrs))
	}
	if len(trees) != 1 {
		t.Fatalf("expected one tree, got %d", len(trees))
	}
	if diff := cmp.Diff([]string{}, trees[0].Attributes, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("tree levels mismatch (-want +got):\n%s", diff)
	}
}
