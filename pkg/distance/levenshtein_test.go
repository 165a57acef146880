package distance

import (
	"fmt"
	"testing"
)

// full-table reference, only used to check the banded version
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, prev[j]+1, curr[j-1]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func TestBounded(t *testing.T) {
	testCases := []struct {
		a, b     string
		k        int
		expected int
	}{
		{"", "", 1, 0},
		{"a", "", 1, 1},
		{"", "a", 1, 1},
		{"", "ab", 1, NotWithinK},
		{"cat", "cat", 0, 0},
		{"cat", "bat", 1, 1},
		{"cat", "cot", 1, 1},
		{"cat", "cats", 1, 1},
		{"cat", "at", 1, 1},
		{"bat", "cot", 1, NotWithinK},
		{"bat", "cot", 2, 2},
		{"dog", "cot", 1, NotWithinK},
		{"kitten", "sitting", 3, 3},
		{"kitten", "sitting", 2, NotWithinK},
		{"saturday", "sunday", 3, 3},
		{"book", "back", 2, 2},
		{"book", "back", 1, NotWithinK},
		{"hello", "hallo", 1, 1},
		{"abc", "acb", 1, NotWithinK},
		{"abc", "acb", 2, 2},
		{"ice cream", "icecream", 1, 1},
		{"café", "cafe", 1, 1},
		{"naïve", "naive", 0, NotWithinK},
		{"x", "y", -1, NotWithinK},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s/k=%d", tc.a, tc.b, tc.k), func(t *testing.T) {
			if got := Bounded(tc.a, tc.b, tc.k); got != tc.expected {
				t.Errorf("Bounded(%q, %q, %d): expected %d, got %d", tc.a, tc.b, tc.k, tc.expected, got)
			}
			if got := Bounded(tc.b, tc.a, tc.k); got != tc.expected {
				t.Errorf("Bounded(%q, %q, %d) not symmetric: expected %d, got %d", tc.b, tc.a, tc.k, tc.expected, got)
			}
		})
	}
}

// every string over {a,b,c} up to length 4 against the full table
func TestBoundedMatchesReference(t *testing.T) {
	words := []string{""}
	frontier := []string{""}
	for n := 0; n < 4; n++ {
		var next []string
		for _, w := range frontier {
			for _, c := range "abc" {
				next = append(next, w+string(c))
			}
		}
		words = append(words, next...)
		frontier = next
	}

	for _, a := range words {
		for _, b := range words {
			want := levenshtein(a, b)
			for k := 0; k <= 3; k++ {
				expected := want
				if want > k {
					expected = NotWithinK
				}
				if got := Bounded(a, b, k); got != expected {
					t.Fatalf("Bounded(%q, %q, %d): expected %d, got %d", a, b, k, expected, got)
				}
			}
		}
	}
}

func TestSelfDistanceIsZero(t *testing.T) {
	for _, w := range []string{"", "a", "pineapple", "ice cream", "日本語"} {
		for k := 0; k <= 3; k++ {
			if got := Bounded(w, w, k); got != 0 {
				t.Errorf("Bounded(%q, %q, %d): expected 0, got %d", w, w, k, got)
			}
		}
	}
}

func TestHelpers(t *testing.T) {
	if !Within("cat", "hat", DefaultK) {
		t.Error("cat and hat should be within one edit")
	}
	if Within("cat", "dog", DefaultK) {
		t.Error("cat and dog should not be within one edit")
	}
	if !IsClose("cat", "cot") {
		t.Error("cat and cot should be close")
	}
	if IsClose("cat", "cat") {
		t.Error("identical words are not close")
	}
	if IsClose("bat", "cot") {
		t.Error("bat and cot are two edits apart")
	}
}

func BenchmarkBounded(b *testing.B) {
	pairs := [][2]string{
		{"pineapple", "pineaple"},
		{"lighthouse", "lighthouses"},
		{"cat", "dog"},
		{"submarine", "trampoline"},
		{"helicopter", "helicoptre"},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pairs[i%len(pairs)]
		Bounded(p[0], p[1], DefaultK)
	}
}
