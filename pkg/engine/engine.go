// Package engine narrows the candidate words for the current round from
// hint reveals and chat feedback, and runs the auto-guess timer.
package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/bastiangx/guessr/internal/logger"
	"github.com/bastiangx/guessr/internal/utils"
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/distance"
	"github.com/bastiangx/guessr/pkg/hints"
	"github.com/bastiangx/guessr/pkg/lexicon"
	"github.com/bastiangx/guessr/pkg/rank"
	"github.com/bastiangx/guessr/pkg/storage"
)

// Phase of the round state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRoundActive
)

func (p Phase) String() string {
	if p == PhaseRoundActive {
		return "round-active"
	}
	return "idle"
}

// Submitter types and sends a guess.
type Submitter interface {
	Submit(word string)
}

// Display receives the ranked view after every change.
type Display interface {
	Show(v View)
}

// View is the display state: ranked candidates filtered by the typed
// prefix, and how many candidates remain in total.
type View struct {
	Words     []string `msgpack:"words"`
	Remaining int      `msgpack:"remaining"`
	Prefix    string   `msgpack:"prefix,omitempty"`
}

// Options wires an Engine to its collaborators. Nil fields are no-ops.
type Options struct {
	Saver     lexicon.Saver
	Submitter Submitter
	Display   Display
	Logger    *log.Logger
	Settings  config.Settings
}

// Engine is not safe for concurrent use; a Session serializes access.
type Engine struct {
	lex       *lexicon.Lexicon
	saver     lexicon.Saver
	submitter Submitter
	display   Display
	log       *log.Logger

	settings     config.Settings
	stats        Stats
	phase        Phase
	candidates   []string
	previous     []string
	username     string
	autoGuessing bool
	prefix       string

	// a full reveal is recorded once per round
	confirmed bool
}

// New builds an Engine around lex.
func New(lex *lexicon.Lexicon, opts Options) *Engine {
	l := opts.Logger
	if l == nil {
		l = logger.New("engine")
	}
	return &Engine{
		lex:       lex,
		saver:     opts.Saver,
		submitter: opts.Submitter,
		display:   opts.Display,
		log:       l,
		settings:  opts.Settings.Sanitize(config.DefaultSettings()),
	}
}

// Load restores stats and settings. Persisted settings are laid over the
// current ones, so fields missing from the store keep their value.
func (e *Engine) Load(ctx context.Context, store storage.Store) error {
	var st Stats
	if ok, err := storage.LoadInto(ctx, store, storage.KeyStats, &st); err != nil {
		return fmt.Errorf("load stats: %w", err)
	} else if ok {
		e.stats = Stats{
			TotalRounds:  max(st.TotalRounds, 0),
			TotalGuesses: max(st.TotalGuesses, 0),
		}
	}

	s := e.settings
	if ok, err := storage.LoadInto(ctx, store, storage.KeySettings, &s); err != nil {
		return fmt.Errorf("load settings: %w", err)
	} else if ok {
		e.settings = s.Sanitize(e.settings)
	}

	e.log.Debug("state loaded", "rounds", e.stats.TotalRounds, "guesses", e.stats.TotalGuesses,
		"timer", e.settings.AutoGuessTimer, "threshold", e.settings.ConfidenceThreshold)
	return nil
}

// Dispatch applies one event. It is the only path that mutates the
// candidate sets.
func (e *Engine) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case RoundStart:
		e.startRound(ev)
	case HintsChanged:
		e.candidates = hints.Apply(e.candidates, ev.Hints, answerRecorderFunc(e.confirm))
		e.afterNarrowing()
	case ChatGuess:
		e.chatGuess(ev)
	case CloseSignal:
		word := utils.NormalizeWord(ev.Word)
		e.candidates = lo.Filter(e.previous, func(w string, _ int) bool {
			return distance.IsClose(w, word)
		})
		e.afterNarrowing()
	case InputChanged:
		e.prefix = ev.Text
		e.publish()
	case UsernameDetected:
		e.username = strings.TrimSpace(ev.Name)
		e.log.Debug("username detected", "name", e.username)
	case WordsRevealed:
		for _, w := range ev.Words {
			e.lex.RecordSeen(w)
		}
	case SettingsSaved:
		e.settings = ev.Settings.Sanitize(e.settings)
		e.save(storage.KeySettings, e.settings)
		e.publish()
	case AutoGuessToggled:
		e.autoGuessing = ev.On
	case StatsReset:
		e.stats = Stats{}
		e.save(storage.KeyStats, e.stats)
	case SubmitTop:
		if v := e.View(); len(v.Words) > 0 {
			e.submit(v.Words[0])
		}
	case inspect:
		ev.fn(e)
		close(ev.done)
	default:
		e.log.Warnf("unhandled event %T", ev)
	}
}

func (e *Engine) startRound(ev RoundStart) {
	e.confirmed = false
	e.previous = nil
	e.candidates = hints.Apply(e.lex.Words(), ev.Hints, answerRecorderFunc(e.confirm))
	e.phase = PhaseRoundActive
	e.stats.TotalRounds++
	e.save(storage.KeyStats, e.stats)
	e.log.Debug("round started", "drawer", ev.Drawer, "candidates", len(e.candidates))
	e.afterNarrowing()
}

func (e *Engine) chatGuess(ev ChatGuess) {
	guess := utils.NormalizeWord(ev.Guess)
	e.previous = slices.Clone(e.candidates)
	e.candidates = lo.Without(e.candidates, guess)

	if e.isLocalPlayer(ev.User) {
		e.stats.TotalGuesses++
		e.save(storage.KeyStats, e.stats)
		// a one-edit neighbour would have drawn a close signal
		e.candidates = lo.Reject(e.candidates, func(w string, _ int) bool {
			return distance.Within(w, guess, distance.DefaultK)
		})
	}
	e.afterNarrowing()
}

func (e *Engine) isLocalPlayer(user string) bool {
	return e.username != "" && strings.TrimSpace(user) == e.username
}

func (e *Engine) confirm(word string) {
	if e.confirmed {
		return
	}
	e.confirmed = true
	e.lex.RecordAnswer(word)
	e.log.Debug("answer confirmed", "word", word)
}

// afterNarrowing submits the last remaining candidate, then publishes.
func (e *Engine) afterNarrowing() {
	if len(e.candidates) == 1 {
		e.consumeHead()
		return
	}
	e.publish()
}

// Tick is one auto-guess timer firing. It submits the head of the
// unranked candidates when the policy allows.
func (e *Engine) Tick() {
	if !e.autoGuessing || !rank.ShouldAutoSubmit(e.candidates, e.settings) {
		return
	}
	e.consumeHead()
}

// consumeHead submits and removes the head. Removing it can leave a single
// candidate, which goes out straight away.
func (e *Engine) consumeHead() {
	word := e.candidates[0]
	e.candidates = slices.Delete(slices.Clone(e.candidates), 0, 1)
	e.submit(word)
	e.afterNarrowing()
}

func (e *Engine) submit(word string) {
	e.log.Debug("submitting", "word", word)
	if e.submitter != nil {
		e.submitter.Submit(word)
	}
}

func (e *Engine) publish() {
	if e.display != nil {
		e.display.Show(e.View())
	}
}

func (e *Engine) save(key string, v any) {
	if e.saver != nil {
		e.saver.Save(key, v)
	}
}

// View ranks the candidates and applies the typed prefix.
func (e *Engine) View() View {
	ranked := rank.Rank(e.candidates, e.lex, e.settings)
	return View{
		Words:     rank.FilterPrefix(ranked, e.prefix),
		Remaining: len(e.candidates),
		Prefix:    e.prefix,
	}
}

// Candidates returns a copy of the current candidate set.
func (e *Engine) Candidates() []string { return slices.Clone(e.candidates) }

// Previous returns a copy of the snapshot used by close signals.
func (e *Engine) Previous() []string { return slices.Clone(e.previous) }

func (e *Engine) Phase() Phase { return e.phase }
func (e *Engine) Stats() Stats { return e.stats }
func (e *Engine) Settings() config.Settings { return e.settings }
func (e *Engine) AutoGuessing() bool { return e.autoGuessing }
func (e *Engine) Username() string { return e.username }
func (e *Engine) Lexicon() *lexicon.Lexicon { return e.lex }

// Summary combines the counters with the vocabulary size.
func (e *Engine) Summary() Summary {
	return Summary{
		Stats:        e.stats,
		Average:      e.stats.AverageGuesses(),
		WordsLearned: e.lex.Len(),
	}
}

type answerRecorderFunc func(word string)

func (f answerRecorderFunc) RecordAnswer(word string) { f(word) }
