package hints

import (
	"slices"
	"testing"
)

type recorder struct {
	words []string
}

func (r *recorder) RecordAnswer(word string) {
	r.words = append(r.words, word)
}

func TestParseAndString(t *testing.T) {
	testCases := []struct {
		input    string
		length   int
		revealed int
	}{
		{"", 0, 0},
		{"___", 3, 0},
		{"c_t", 3, 2},
		{"ice_cr__m", 9, 6},
		{"CAT", 3, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			cells := Parse(tc.input)
			if len(cells) != tc.length {
				t.Fatalf("expected %d cells, got %d", tc.length, len(cells))
			}
			n := 0
			for _, c := range cells {
				if c.Revealed {
					n++
				}
			}
			if n != tc.revealed {
				t.Errorf("expected %d revealed cells, got %d", tc.revealed, n)
			}
			if got := cells.String(); got != tc.input {
				t.Errorf("expected String() %q, got %q", tc.input, got)
			}
		})
	}
}

func TestPatternMatch(t *testing.T) {
	testCases := []struct {
		pattern  string
		word     string
		expected bool
	}{
		{"___", "cat", true},
		{"___", "cats", false},
		{"c__", "cat", true},
		{"c__", "bat", false},
		{"C_T", "cat", true},
		{"c_t", "CAT", true},
		{"_a_", "hat", true},
		{"_a_", "dog", false},
		{"___ _____", "ice cream", true},
		{"__é", "café", false},
		{"___é", "café", true},
		{"_________", "ice cream", false},
		{"a_", "a-", false},
		{"a_", "a ", false},
		{"a_", "a1", false},
		{"a_", "aé", true},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern+"/"+tc.word, func(t *testing.T) {
			if got := Compile(Parse(tc.pattern)).Match(tc.word); got != tc.expected {
				t.Errorf("Match(%q, %q): expected %v, got %v", tc.pattern, tc.word, tc.expected, got)
			}
		})
	}
}

func TestApplyFiltersByLengthAndPosition(t *testing.T) {
	candidates := []string{"dog", "cat", "horse", "cot", "bat", "cart", "cut"}
	rec := &recorder{}

	got := Apply(candidates, Parse("c_t"), rec)
	want := []string{"cat", "cot", "cut"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if len(rec.words) != 0 {
		t.Errorf("partial reveal must not record answers, got %v", rec.words)
	}

	got = Apply(candidates, Parse("___"), rec)
	want = []string{"dog", "cat", "cot", "bat", "cut"}
	if !slices.Equal(got, want) {
		t.Errorf("all-blank row: expected %v, got %v", want, got)
	}
}

func TestApplyBlankNeedsLetter(t *testing.T) {
	got := Apply([]string{"ab", "a-", "a ", "a1"}, Parse("a_"), nil)
	if !slices.Equal(got, []string{"ab"}) {
		t.Errorf("expected only [ab], got %v", got)
	}
}

func TestApplyFullReveal(t *testing.T) {
	rec := &recorder{}
	got := Apply([]string{"cat", "cot"}, Parse("Cat"), rec)

	if len(got) != 0 {
		t.Errorf("full reveal should empty the candidates, got %v", got)
	}
	if len(rec.words) != 1 || rec.words[0] != "cat" {
		t.Errorf("expected exactly one recorded answer \"cat\", got %v", rec.words)
	}
}

func TestApplyEmptyRowIsNoPattern(t *testing.T) {
	rec := &recorder{}
	candidates := []string{"cat", "horse"}
	got := Apply(candidates, nil, rec)

	if !slices.Equal(got, candidates) {
		t.Errorf("expected %v, got %v", candidates, got)
	}
	if len(rec.words) != 0 {
		t.Errorf("empty row must not record answers, got %v", rec.words)
	}
	got[0] = "changed"
	if candidates[0] != "cat" {
		t.Error("Apply must not return the caller's slice")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	cells := Parse("_a_")
	once := Apply([]string{"cat", "bat", "dog", "cart"}, cells, nil)
	twice := Apply(once, cells, nil)
	if !slices.Equal(once, twice) {
		t.Errorf("second application changed the set: %v -> %v", once, twice)
	}
}

func TestCellsEqual(t *testing.T) {
	if !Parse("c_t").Equal(Parse("C_T")) {
		t.Error("rows differing only by case should be equal")
	}
	if Parse("c_t").Equal(Parse("ca_")) {
		t.Error("rows with different reveals should differ")
	}
	if Parse("c_t").Equal(Parse("c_ts")) {
		t.Error("rows with different lengths should differ")
	}
}
