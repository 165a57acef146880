// Package cli drives a session from typed commands, for debugging the
// narrowing rules without a game page.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/guessr/internal/utils"
	"github.com/bastiangx/guessr/pkg/adapter"
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
	"github.com/bastiangx/guessr/pkg/hints"
)

const helpText = `commands:
  /draw <name>            drawing banner, starts a round
  /hints <c_t>            hint row, '_' is unrevealed
  /close <word>           "<word> is close!"
  /type <prefix>          typed input, filters the display
  /user <name>            set the local player name
  /reveal <w1,w2,...>     drawing-turn word choices
  /auto on|off            toggle timed guessing
  /timer <ms>             auto-guess interval
  /threshold <n>          confidence threshold, 0 disables
  /sort none|alpha|freq   display order
  /enter                  submit the top suggestion
  /complete <prefix>      vocabulary lookup
  /state                  show candidates and settings
  /stats                  show stats
  /reset                  reset stats
  user: guess             any other line is a chat message`

// InputHandler reads commands line by line and posts them to a session.
type InputHandler struct {
	session    *engine.Session
	classifier *adapter.Classifier
	row        adapter.HintRow
	reader     io.Reader
	log        *log.Logger
	limit      int
}

// NewInputHandler reads from r and prints through l.
func NewInputHandler(session *engine.Session, classifier *adapter.Classifier, r io.Reader, l *log.Logger, limit int) *InputHandler {
	if limit < 1 {
		limit = 10
	}
	return &InputHandler{
		session:    session,
		classifier: classifier,
		reader:     r,
		log:        l,
		limit:      limit,
	}
}

// Start runs the loop until input ends. EOF is a clean exit.
func (h *InputHandler) Start(ctx context.Context) error {
	h.log.Print("guessr CLI [BETA]")
	h.log.Print("type /help for commands (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := h.handleInput(ctx, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// handleInput returns an error only when the session can no longer accept
// events.
func (h *InputHandler) handleInput(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, "/") {
		ev, ok := h.classifier.Classify(adapter.Message{Text: line})
		if !ok {
			h.log.Warnf("Ignored: %q", line)
			return nil
		}
		return h.post(ctx, h.row.Attach(ev))
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "help":
		h.log.Print(helpText)
	case "draw":
		return h.post(ctx, h.row.Attach(engine.RoundStart{Drawer: arg}))
	case "hints":
		return h.post(ctx, h.row.Update(hints.Parse(arg)))
	case "close":
		return h.post(ctx, engine.CloseSignal{Word: arg})
	case "type":
		return h.post(ctx, engine.InputChanged{Text: arg})
	case "user":
		return h.post(ctx, engine.UsernameDetected{Name: h.classifier.ParseUsername(arg)})
	case "reveal":
		return h.post(ctx, engine.WordsRevealed{Words: strings.Split(arg, ",")})
	case "auto":
		return h.post(ctx, engine.AutoGuessToggled{On: arg == "on" || arg == "true"})
	case "timer", "threshold", "sort":
		return h.saveSetting(ctx, cmd, arg)
	case "enter":
		return h.post(ctx, engine.SubmitTop{})
	case "reset":
		return h.post(ctx, engine.StatsReset{})
	case "complete":
		return h.inspect(ctx, func(e *engine.Engine) {
			found := e.Lexicon().Complete(arg, h.limit)
			if len(found) == 0 {
				h.log.Warnf("No words found for prefix: '%s'", arg)
				return
			}
			h.log.Printf("Found %d words for prefix '%s':", len(found), arg)
			for i, s := range found {
				h.log.Printf("%2d. %-40s (freq: %8s)", i+1, colorWord(s.Word), utils.FormatWithCommas(s.Frequency))
			}
		})
	case "state":
		return h.inspect(ctx, func(e *engine.Engine) {
			s := e.Settings()
			h.log.Printf("phase=%s user=%q auto=%v timer=%dms threshold=%d sort=%s",
				e.Phase(), e.Username(), e.AutoGuessing(), s.AutoGuessTimer, s.ConfidenceThreshold, sortName(s))
			PrintView(h.log, e.View())
		})
	case "stats":
		return h.inspect(ctx, func(e *engine.Engine) {
			sum := e.Summary()
			h.log.Printf("rounds: %s  guesses: %s  avg/round: %.2f  words learned: %s",
				utils.FormatWithCommas(sum.TotalRounds), utils.FormatWithCommas(sum.TotalGuesses),
				sum.Average, utils.FormatWithCommas(sum.WordsLearned))
		})
	default:
		h.log.Errorf("Unknown command: /%s", cmd)
	}
	return nil
}

// saveSetting edits one field the way the settings form does: bad numbers
// keep the previous value.
func (h *InputHandler) saveSetting(ctx context.Context, field, arg string) error {
	var current config.Settings
	if err := h.session.Inspect(ctx, func(e *engine.Engine) { current = e.Settings() }); err != nil {
		return err
	}

	in := config.SettingsInput{
		Timer:            strconv.Itoa(current.AutoGuessTimer),
		Threshold:        strconv.Itoa(current.ConfidenceThreshold),
		AlphabeticalSort: current.AlphabeticalSort,
		SortByFrequency:  current.SortByFrequency,
	}
	switch field {
	case "timer":
		in.Timer = arg
	case "threshold":
		in.Threshold = arg
	case "sort":
		in.AlphabeticalSort = arg == "alpha"
		in.SortByFrequency = arg == "freq"
	}
	return h.post(ctx, engine.SettingsSaved{Settings: in.Apply(current)})
}

func (h *InputHandler) post(ctx context.Context, ev engine.Event) error {
	if err := h.session.Post(ctx, ev); err != nil {
		return fmt.Errorf("post %T: %w", ev, err)
	}
	return nil
}

func (h *InputHandler) inspect(ctx context.Context, fn func(*engine.Engine)) error {
	if err := h.session.Inspect(ctx, fn); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

func sortName(s config.Settings) string {
	switch {
	case s.SortByFrequency:
		return "freq"
	case s.AlphabeticalSort:
		return "alpha"
	default:
		return "none"
	}
}

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

func colorWord(w string) string {
	return wordStyle.Render(w)
}
