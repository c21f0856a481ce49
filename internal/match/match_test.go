package match

import "testing"

type labelled struct {
	id   string
	name string
}

func name(l labelled) string { return l.name }

func TestClosest_ExactMatchWinsBeforeFuzzy(t *testing.T) {
	// "Kitchen Light" is an exact (case-insensitive) hit and must win even
	// though "kitchen light 2" would also score very high fuzzily.
	items := []labelled{
		{id: "d1", name: "kitchen light 2"},
		{id: "d2", name: "Kitchen Light"},
	}

	got, ok := Closest(items, "KITCHEN LIGHT", 0.99, name)
	if !ok {
		t.Fatal("Closest() no match, want exact match")
	}
	if got.id != "d2" {
		t.Errorf("Closest() = %q, want d2 (exact match before fuzzy)", got.id)
	}
}

func TestClosest_ExactMatchFirstInOrder(t *testing.T) {
	items := []labelled{
		{id: "d1", name: "Lamp"},
		{id: "d2", name: "lamp"},
	}

	got, ok := Closest(items, "lamp", 0.5, name)
	if !ok || got.id != "d1" {
		t.Errorf("Closest() = %v, %v; want first exact candidate d1", got, ok)
	}
}

func TestClosest_FuzzyAboveThreshold(t *testing.T) {
	items := []labelled{
		{id: "d1", name: "Living Room Lamp"},
		{id: "d2", name: "Bedroom Fan"},
	}

	got, ok := Closest(items, "living room lam", 0.5, name)
	if !ok {
		t.Fatal("Closest() no match, want fuzzy match")
	}
	if got.id != "d1" {
		t.Errorf("Closest() = %q, want d1", got.id)
	}
}

func TestClosest_ThresholdIsStrict(t *testing.T) {
	items := []labelled{{id: "d1", name: "Lamp"}}

	score := Similarity("Lamp", "Lamp")
	if score != 1.0 {
		t.Fatalf("Similarity(identical) = %v, want 1.0", score)
	}

	// Bypass the exact pass with a different candidate, then pin the
	// threshold exactly at the score: s <= t must reject.
	items = []labelled{{id: "d1", name: "Kitchen"}}
	s := Similarity("Kitchen", "kithen")

	if _, ok := Closest(items, "kithen", s, name); ok {
		t.Errorf("Closest() matched at threshold == score %v, want rejection (strict >)", s)
	}
	if _, ok := Closest(items, "kithen", s-0.0001, name); !ok {
		t.Errorf("Closest() rejected just below score %v, want match", s)
	}
}

func TestClosest_GroupConflictCase(t *testing.T) {
	// Speech-recognition slip: "kithen" for an existing group "Kitchen"
	// must still be caught by the strict 0.9 conflict threshold.
	s := Similarity("Kitchen", "kithen")
	if s <= 0.9 {
		t.Fatalf("Similarity(Kitchen, kithen) = %v, want > 0.9", s)
	}

	items := []labelled{{id: "g1", name: "Kitchen"}}
	if _, ok := Closest(items, "kithen", 0.9, name); !ok {
		t.Error("Closest() missed near-duplicate group name at 0.9 threshold")
	}
}

func TestClosest_NoMatchBelowThreshold(t *testing.T) {
	items := []labelled{{id: "d1", name: "Bedroom Fan"}}

	if _, ok := Closest(items, "garage door", 0.5, name); ok {
		t.Error("Closest() matched dissimilar strings, want no match")
	}
}

func TestClosest_EmptyInputs(t *testing.T) {
	tests := []struct {
		name   string
		items  []labelled
		target string
	}{
		{name: "empty candidate list", items: nil, target: "lamp"},
		{name: "blank target", items: []labelled{{id: "d1", name: "Lamp"}}, target: ""},
		{name: "whitespace target", items: []labelled{{id: "d1", name: "Lamp"}}, target: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Closest(tt.items, tt.target, 0.1, name); ok {
				t.Error("Closest() matched, want no match")
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Kitchen", "kithen"},
		{"Living Room Lamp", "living lamp"},
		{"abc", "xyz"},
		{"", "lamp"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v, want symmetric", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Kitchen", "kithen"},
		{"a", "completely different"},
		{"", ""},
		{"same", "same"},
	}

	for _, tt := range tests {
		s := Similarity(tt.a, tt.b)
		if s < 0 || s > 1 {
			t.Errorf("Similarity(%q, %q) = %v, want within [0,1]", tt.a, tt.b, s)
		}
	}
}
