package grammar

import (
	"fmt"
	"testing"
)

// Terminals are 1..3 (a, b, c); symbols encoded as in SyntacticSpec.Alts.
func TestGenFirstSet(t *testing.T) {
	tests := []struct {
		caption string
		alts    [][][]int
		first   []map[int]struct{}
		empty   []bool
	}{
		{
			caption: "a terminal heads its alternative",
			// s → a b
			alts: [][][]int{
				{{1, 2}},
			},
			first: []map[int]struct{}{
				{1: {}},
			},
			empty: []bool{false},
		},
		{
			caption: "a leading rule contributes its own first set",
			// s → t c; t → a | b
			alts: [][][]int{
				{{^1, 3}},
				{{1}, {2}},
			},
			first: []map[int]struct{}{
				{1: {}, 2: {}},
				{1: {}, 2: {}},
			},
			empty: []bool{false, false},
		},
		{
			caption: "an empty leading rule exposes the next symbol",
			// s → t c; t → a | ε
			alts: [][][]int{
				{{^1, 3}},
				{{1}, {}},
			},
			first: []map[int]struct{}{
				{1: {}, 3: {}},
				{1: {}},
			},
			empty: []bool{false, true},
		},
		{
			caption: "a rule of only empty-capable rules is empty-capable",
			// s → t u; t → a | ε; u → b | ε
			alts: [][][]int{
				{{^1, ^2}},
				{{1}, {}},
				{{2}, {}},
			},
			first: []map[int]struct{}{
				{1: {}, 2: {}},
				{1: {}},
				{2: {}},
			},
			empty: []bool{true, true, true},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			fst := genFirstSet(tt.alts)
			for rule, want := range tt.first {
				got := fst.set[rule]
				if len(got.terms) != len(want) {
					t.Fatalf("unexpected FIRST(%v): want: %v, got: %v", rule, want, got.terms)
				}
				for term := range want {
					if _, ok := got.terms[term]; !ok {
						t.Fatalf("FIRST(%v) must contain terminal %v, got: %v", rule, term, got.terms)
					}
				}
				if got.empty != tt.empty[rule] {
					t.Fatalf("unexpected emptiness of rule %v: want: %v, got: %v", rule, tt.empty[rule], got.empty)
				}
			}
		})
	}
}
