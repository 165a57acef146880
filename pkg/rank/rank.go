// Package rank orders candidates for display and decides when an automatic
// submission is allowed.
package rank

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/bastiangx/guessr/pkg/config"
)

// FrequencySource supplies per-word counts; missing words count as 0.
type FrequencySource interface {
	Frequency(word string) int
}

// Mode is the effective sort order derived from settings.
type Mode int

const (
	ModeInsertion Mode = iota
	ModeAlphabetical
	ModeFrequency
)

func (m Mode) String() string {
	switch m {
	case ModeAlphabetical:
		return "alphabetical"
	case ModeFrequency:
		return "frequency"
	default:
		return "insertion"
	}
}

// ModeOf resolves the sort flags. Frequency wins if both are set.
func ModeOf(s config.Settings) Mode {
	switch {
	case s.SortByFrequency:
		return ModeFrequency
	case s.AlphabeticalSort:
		return ModeAlphabetical
	default:
		return ModeInsertion
	}
}

// Rank returns a sorted copy of candidates. Sorting is stable and byte-wise
// on the words themselves.
func Rank(candidates []string, freq FrequencySource, s config.Settings) []string {
	out := slices.Clone(candidates)

	switch ModeOf(s) {
	case ModeFrequency:
		counts := make(map[string]int, len(out))
		if freq != nil {
			for _, w := range out {
				counts[w] = freq.Frequency(w)
			}
		}
		slices.SortStableFunc(out, func(a, b string) int {
			if c := cmp.Compare(counts[b], counts[a]); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})
	case ModeAlphabetical:
		slices.SortStableFunc(out, strings.Compare)
	}
	return out
}

// ShouldAutoSubmit reports whether the timer may submit now: there is at
// least one candidate and the threshold is off or satisfied.
func ShouldAutoSubmit(candidates []string, s config.Settings) bool {
	if len(candidates) == 0 {
		return false
	}
	return s.ConfidenceThreshold == 0 || len(candidates) <= s.ConfidenceThreshold
}

// FilterPrefix keeps the words starting with the typed prefix, in order.
// An empty prefix keeps everything.
func FilterPrefix(words []string, prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return slices.Clone(words)
	}
	return lo.Filter(words, func(w string, _ int) bool {
		return strings.HasPrefix(w, prefix)
	})
}
