package rank

import (
	"slices"
	"testing"

	"github.com/bastiangx/guessr/pkg/config"
)

type freqMap map[string]int

func (f freqMap) Frequency(w string) int { return f[w] }

func TestRank(t *testing.T) {
	freq := freqMap{"cat": 5, "bat": 5, "hat": 2}
	candidates := []string{"hat", "cat", "bat", "ant"}

	testCases := []struct {
		name     string
		settings config.Settings
		expected []string
	}{
		{"insertion order", config.Settings{}, []string{"hat", "cat", "bat", "ant"}},
		{"alphabetical", config.Settings{AlphabeticalSort: true}, []string{"ant", "bat", "cat", "hat"}},
		{"frequency with alpha ties", config.Settings{SortByFrequency: true}, []string{"bat", "cat", "hat", "ant"}},
		{"frequency wins over alphabetical", config.Settings{SortByFrequency: true, AlphabeticalSort: true}, []string{"bat", "cat", "hat", "ant"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rank(candidates, freq, tc.settings)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}

	if !slices.Equal(candidates, []string{"hat", "cat", "bat", "ant"}) {
		t.Errorf("Rank mutated its input: %v", candidates)
	}
}

func TestRankFrequencyExample(t *testing.T) {
	got := Rank([]string{"cat", "bat", "hat"}, freqMap{"cat": 5, "bat": 5, "hat": 2}, config.Settings{SortByFrequency: true})
	if want := []string{"bat", "cat", "hat"}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestShouldAutoSubmit(t *testing.T) {
	four := []string{"a", "b", "c", "d"}
	testCases := []struct {
		name       string
		candidates []string
		threshold  int
		expected   bool
	}{
		{"above threshold", four, 3, false},
		{"at threshold", four[:3], 3, true},
		{"below threshold", four[:1], 3, true},
		{"threshold off", four, 0, true},
		{"empty set", nil, 0, false},
		{"empty set with threshold", nil, 3, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := config.Settings{ConfidenceThreshold: tc.threshold}
			if got := ShouldAutoSubmit(tc.candidates, s); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestFilterPrefix(t *testing.T) {
	words := []string{"cart", "cat", "dog", "carpet"}
	if got := FilterPrefix(words, " CAR "); !slices.Equal(got, []string{"cart", "carpet"}) {
		t.Errorf("unexpected %v", got)
	}
	if got := FilterPrefix(words, ""); !slices.Equal(got, words) {
		t.Errorf("empty prefix should keep all, got %v", got)
	}
	if got := FilterPrefix(words, "z"); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestModeOf(t *testing.T) {
	if ModeOf(config.Settings{}) != ModeInsertion {
		t.Error("default should be insertion")
	}
	if ModeOf(config.Settings{AlphabeticalSort: true}) != ModeAlphabetical {
		t.Error("expected alphabetical")
	}
	if ModeOf(config.Settings{SortByFrequency: true, AlphabeticalSort: true}) != ModeFrequency {
		t.Error("frequency should win")
	}
}
