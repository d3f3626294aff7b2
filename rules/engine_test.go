package rules

import (
	"slices"
	"testing"
)

type testEnv struct {
	A int
	B bool
}

func TestGateOrdersByPriority(t *testing.T) {
	g, err := NewGate("test", testEnv{}, []*Rule{
		{Name: "low", Priority: 1, ConditionSrc: "A > 0"},
		{Name: "high", Priority: 10, ConditionSrc: "B"},
		{Name: "mid-first", Priority: 5, ConditionSrc: "true"},
		{Name: "mid-second", Priority: 5, ConditionSrc: "true"},
	})
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}
	want := []string{"high", "mid-first", "mid-second", "low"}
	if got := g.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestGateReportsFirstBlockingRule(t *testing.T) {
	g, err := NewGate("test", testEnv{}, []*Rule{
		{Name: "positive", Priority: 2, ConditionSrc: "A > 0"},
		{Name: "flag", Priority: 1, ConditionSrc: "B"},
	})
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	tests := []struct {
		env         testEnv
		wantOK      bool
		wantBlocked string
	}{
		{testEnv{A: 1, B: true}, true, ""},
		{testEnv{A: 0, B: true}, false, "positive"},
		{testEnv{A: 1, B: false}, false, "flag"},
		{testEnv{A: 0, B: false}, false, "positive"},
	}
	for _, tc := range tests {
		ok, blocked := g.Allow(tc.env)
		if ok != tc.wantOK || blocked != tc.wantBlocked {
			t.Errorf("Allow(%+v) = (%v, %q), want (%v, %q)", tc.env, ok, blocked, tc.wantOK, tc.wantBlocked)
		}
	}
}

func TestGateRejectsInvalidExpressions(t *testing.T) {
	bad := [][]*Rule{
		{{Name: "syntax", ConditionSrc: "A >"}},
		{{Name: "unknown-field", ConditionSrc: "Missing > 1"}},
		{{Name: "not-bool", ConditionSrc: "A + 1"}},
	}
	for _, rules := range bad {
		if _, err := NewGate("test", testEnv{}, rules); err == nil {
			t.Errorf("NewGate(%q) succeeded, want compile error", rules[0].ConditionSrc)
		}
	}
}

func TestEmptyGateAllows(t *testing.T) {
	g, err := NewGate("empty", testEnv{}, nil)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}
	if ok, blocked := g.Allow(testEnv{}); !ok || blocked != "" {
		t.Errorf("empty gate Allow = (%v, %q), want (true, \"\")", ok, blocked)
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}
