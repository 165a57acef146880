package engine

import (
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/hints"
)

// Event is anything the engine can dispatch. The set is closed.
type Event interface {
	isEvent()
}

// RoundStart marks a new drawer. Hints is the row at that moment; nil
// means the row is not known yet and every word stays a candidate.
type RoundStart struct {
	Drawer string
	Hints  hints.Cells
}

// HintsChanged carries the full hint row after a reveal.
type HintsChanged struct {
	Hints hints.Cells
}

// ChatGuess is a "user: guess" chat line.
type ChatGuess struct {
	User  string
	Guess string
}

// CloseSignal is the game's "<word> is close!" notice.
type CloseSignal struct {
	Word string
}

// InputChanged is the partially typed chat input. It filters the display
// only.
type InputChanged struct {
	Text string
}

// UsernameDetected names the local player.
type UsernameDetected struct {
	Name string
}

// WordsRevealed lists the word choices offered on the local player's
// drawing turn.
type WordsRevealed struct {
	Words []string
}

// SettingsSaved is an explicit save from the configuration surface.
type SettingsSaved struct {
	Settings config.Settings
}

// AutoGuessToggled switches timed submission on or off.
type AutoGuessToggled struct {
	On bool
}

// StatsReset clears the round and guess counters.
type StatsReset struct{}

// SubmitTop submits the first word of the current display.
type SubmitTop struct{}

// inspect runs fn on the session goroutine.
type inspect struct {
	fn   func(*Engine)
	done chan struct{}
}

func (RoundStart) isEvent()       {}
func (HintsChanged) isEvent()     {}
func (ChatGuess) isEvent()        {}
func (CloseSignal) isEvent()      {}
func (InputChanged) isEvent()     {}
func (UsernameDetected) isEvent() {}
func (WordsRevealed) isEvent()    {}
func (SettingsSaved) isEvent()    {}
func (AutoGuessToggled) isEvent() {}
func (StatsReset) isEvent()       {}
func (SubmitTop) isEvent()        {}
func (inspect) isEvent()          {}
