// Package lexicon holds the persistent vocabulary: the ordered list of
// confirmed answers and per-word frequency counters.
package lexicon

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/guessr/internal/utils"
	"github.com/bastiangx/guessr/pkg/storage"
)

// Saver persists a value under a key without blocking the caller.
type Saver interface {
	Save(key string, v any)
}

// Suggestion is a vocabulary lookup result.
type Suggestion struct {
	Word      string
	Frequency int
}

// Lexicon is safe for concurrent use, though the engine is its only writer.
type Lexicon struct {
	mu      sync.RWMutex
	answers []string
	freq    map[string]int
	// word -> position in answers
	index *patricia.Trie
	saver Saver
}

// New creates an empty lexicon. A nil saver keeps everything in memory.
func New(saver Saver) *Lexicon {
	return &Lexicon{
		freq:  make(map[string]int),
		index: patricia.NewTrie(),
		saver: saver,
	}
}

// Load merges the persisted answers and frequencies into memory. Persisted
// answers form the base order and words that only exist in memory follow
// them. Persisted counts win over in-memory ones.
func (l *Lexicon) Load(ctx context.Context, store storage.Store) error {
	var answers []string
	hasAnswers, err := storage.LoadInto(ctx, store, storage.KeyAnswers, &answers)
	if err != nil {
		return fmt.Errorf("load answers: %w", err)
	}
	var freq map[string]int
	hasFreq, err := storage.LoadInto(ctx, store, storage.KeyFrequency, &freq)
	if err != nil {
		return fmt.Errorf("load frequencies: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if hasAnswers {
		seen := utils.NewSeenFilter()
		merged := make([]string, 0, len(answers)+len(l.answers))
		for _, w := range answers {
			w = utils.NormalizeWord(w)
			if w != "" && seen.ShouldInclude(w) {
				merged = append(merged, w)
			}
		}
		for _, w := range l.answers {
			if seen.ShouldInclude(w) {
				merged = append(merged, w)
			}
		}
		l.answers = merged
		l.reindex()
	}
	if hasFreq {
		for w, n := range freq {
			w = utils.NormalizeWord(w)
			if w == "" || n < 0 {
				continue
			}
			l.freq[w] = n
		}
	}

	log.Debugf("Lexicon loaded: %d answers, %d tracked frequencies", len(l.answers), len(l.freq))
	return nil
}

// reindex rebuilds the trie from answers. Caller holds mu.
func (l *Lexicon) reindex() {
	l.index = patricia.NewTrie()
	for i, w := range l.answers {
		l.index.Insert(patricia.Prefix(w), i)
	}
}

// position of word in answers, or -1. Caller holds mu.
func (l *Lexicon) position(word string) int {
	item := l.index.Get(patricia.Prefix(word))
	if item == nil {
		return -1
	}
	return item.(int)
}

// RecordAnswer confirms word as a correct answer. A new word is appended;
// a known word swaps one place toward the front. Its count always grows.
func (l *Lexicon) RecordAnswer(word string) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.position(word)
	switch {
	case i < 0:
		l.answers = append(l.answers, word)
		l.index.Insert(patricia.Prefix(word), len(l.answers)-1)
	case i > 0:
		prev := l.answers[i-1]
		l.answers[i-1], l.answers[i] = word, prev
		l.index.Set(patricia.Prefix(word), i-1)
		l.index.Set(patricia.Prefix(prev), i)
	}
	l.freq[word]++

	l.persistAnswers()
	l.persistFrequency()
}

// RecordSeen counts a word that was shown but not confirmed this session.
func (l *Lexicon) RecordSeen(word string) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.freq[word]++
	l.persistFrequency()
}

// MergeRemoteWordlist appends every word not already known, in input order,
// and returns how many were added. Existing order and counts are untouched.
func (l *Lexicon) MergeRemoteWordlist(words []string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := 0
	for _, w := range words {
		w = utils.NormalizeWord(w)
		if w == "" || l.position(w) >= 0 {
			continue
		}
		l.answers = append(l.answers, w)
		l.index.Insert(patricia.Prefix(w), len(l.answers)-1)
		added++
	}
	if added > 0 {
		l.persistAnswers()
	}
	return added
}

func (l *Lexicon) persistAnswers() {
	if l.saver != nil {
		l.saver.Save(storage.KeyAnswers, l.answers)
	}
}

func (l *Lexicon) persistFrequency() {
	if l.saver != nil {
		l.saver.Save(storage.KeyFrequency, l.freq)
	}
}

// Words returns a copy of the answers in priority order.
func (l *Lexicon) Words() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.answers)
}

// Len is the number of known answers.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.answers)
}

// Contains reports whether word is a known answer.
func (l *Lexicon) Contains(word string) bool {
	return l.IndexOf(word) >= 0
}

// IndexOf returns the position of word in the answers, or -1.
func (l *Lexicon) IndexOf(word string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position(utils.NormalizeWord(word))
}

// Frequency returns the count for word, 0 when untracked.
func (l *Lexicon) Frequency(word string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.freq[utils.NormalizeWord(word)]
}

// Complete lists known answers starting with prefix, most frequent first,
// ties alphabetical. limit <= 0 returns every match.
func (l *Lexicon) Complete(prefix string, limit int) []Suggestion {
	prefix = utils.NormalizeWord(prefix)

	l.mu.RLock()
	var out []Suggestion
	err := l.index.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		w := string(p)
		out = append(out, Suggestion{Word: w, Frequency: l.freq[w]})
		return nil
	})
	l.mu.RUnlock()

	if err != nil {
		log.Errorf("Error visiting lexicon subtree: %v", err)
	}

	slices.SortFunc(out, func(a, b Suggestion) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
