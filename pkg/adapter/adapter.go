// Package adapter turns raw chat lines from the game page into engine
// events.
//
// Classification leans on the game's current presentation: the colour of
// system lines and the fixed wording of the drawing and close notices.
// Those conventions are unversioned, so they come from config.ChatConfig.
package adapter

import (
	"strings"

	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
)

// Message is one chat line as rendered on the page.
type Message struct {
	Text  string `msgpack:"text"`
	Color string `msgpack:"color"`
}

// Classifier maps chat lines to events.
type Classifier struct {
	cfg config.ChatConfig
}

// NewClassifier uses cfg, filling any empty field from the defaults.
func NewClassifier(cfg config.ChatConfig) *Classifier {
	def := config.DefaultChatConfig()
	if cfg.DrawingColor == "" {
		cfg.DrawingColor = def.DrawingColor
	}
	if cfg.DrawingSuffix == "" {
		cfg.DrawingSuffix = def.DrawingSuffix
	}
	if cfg.CloseColor == "" {
		cfg.CloseColor = def.CloseColor
	}
	if cfg.CloseSuffix == "" {
		cfg.CloseSuffix = def.CloseSuffix
	}
	if cfg.Separator == "" {
		cfg.Separator = def.Separator
	}
	if cfg.SelfMarker == "" {
		cfg.SelfMarker = def.SelfMarker
	}
	return &Classifier{cfg: cfg}
}

// Classify checks, in order, for the drawing banner, a "user: guess" line
// and the close notice. Anything else reports ok=false.
func (c *Classifier) Classify(m Message) (ev engine.Event, ok bool) {
	text := strings.TrimSpace(m.Text)
	if text == "" {
		return nil, false
	}

	if sameColor(m.Color, c.cfg.DrawingColor) && strings.HasSuffix(text, strings.TrimSpace(c.cfg.DrawingSuffix)) {
		drawer := strings.TrimSpace(strings.TrimSuffix(text, strings.TrimSpace(c.cfg.DrawingSuffix)))
		return engine.RoundStart{Drawer: drawer}, true
	}

	if user, guess, found := strings.Cut(text, c.cfg.Separator); found {
		guess = strings.TrimSpace(guess)
		if guess == "" {
			return nil, false
		}
		return engine.ChatGuess{User: strings.TrimSpace(user), Guess: guess}, true
	}

	if sameColor(m.Color, c.cfg.CloseColor) && strings.HasSuffix(text, strings.TrimSpace(c.cfg.CloseSuffix)) {
		word := strings.TrimSuffix(text, strings.TrimSpace(c.cfg.CloseSuffix))
		word = strings.Trim(strings.TrimSpace(word), `'"`)
		if word == "" {
			return nil, false
		}
		return engine.CloseSignal{Word: word}, true
	}

	return nil, false
}

// ParseUsername strips the self marker the player list appends to the
// local player's name.
func (c *Classifier) ParseUsername(raw string) string {
	return ParseUsername(raw, c.cfg.SelfMarker)
}

// ParseUsername removes marker from raw and trims it.
func ParseUsername(raw, marker string) string {
	raw = strings.TrimSpace(raw)
	if marker != "" {
		raw = strings.ReplaceAll(raw, strings.TrimSpace(marker), "")
	}
	return strings.TrimSpace(raw)
}

// colours are compared ignoring spacing, "rgb(1,2,3)" equals "rgb(1, 2, 3)"
func sameColor(a, b string) bool {
	return strings.EqualFold(strings.ReplaceAll(a, " ", ""), strings.ReplaceAll(b, " ", ""))
}
