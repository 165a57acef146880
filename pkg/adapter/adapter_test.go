package adapter

import (
	"reflect"
	"testing"

	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
)

const (
	blue   = "rgb(57, 117, 206)"
	yellow = "rgb(226, 203, 0)"
	black  = "rgb(0, 0, 0)"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(config.DefaultChatConfig())

	testCases := []struct {
		name     string
		msg      Message
		expected engine.Event
		ok       bool
	}{
		{"drawing banner", Message{"alice is drawing now!", blue}, engine.RoundStart{Drawer: "alice"}, true},
		{"drawing banner compact colour", Message{"alice is drawing now!", "rgb(57,117,206)"}, engine.RoundStart{Drawer: "alice"}, true},
		{"banner text in wrong colour", Message{"alice is drawing now!", black}, nil, false},
		{"chat guess", Message{"bob: pineapple", black}, engine.ChatGuess{User: "bob", Guess: "pineapple"}, true},
		{"guess with separator inside", Message{"bob: a: b", black}, engine.ChatGuess{User: "bob", Guess: "a: b"}, true},
		{"empty guess", Message{"bob: ", black}, nil, false},
		{"close notice", Message{"pineapple is close!", yellow}, engine.CloseSignal{Word: "pineapple"}, true},
		{"quoted close notice", Message{"'pineapple' is close!", yellow}, engine.CloseSignal{Word: "pineapple"}, true},
		{"close text in wrong colour", Message{"pineapple is close!", black}, nil, false},
		{"system noise", Message{"bob joined the room!", "rgb(86, 206, 39)"}, nil, false},
		{"empty", Message{"", black}, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := c.Classify(tc.msg)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v (%#v)", tc.ok, ok, ev)
			}
			if !reflect.DeepEqual(ev, tc.expected) {
				t.Errorf("expected %#v, got %#v", tc.expected, ev)
			}
		})
	}
}

func TestClassifyUsesConfiguredConstants(t *testing.T) {
	cfg := config.ChatConfig{DrawingColor: "blue", DrawingSuffix: " zeichnet jetzt!"}
	c := NewClassifier(cfg)

	ev, ok := c.Classify(Message{"alice zeichnet jetzt!", "BLUE"})
	if !ok || !reflect.DeepEqual(ev, engine.RoundStart{Drawer: "alice"}) {
		t.Errorf("custom banner not recognised: %#v %v", ev, ok)
	}
	if _, ok := c.Classify(Message{"x is close!", yellow}); !ok {
		t.Error("unset fields should fall back to defaults")
	}
}

func TestParseUsername(t *testing.T) {
	c := NewClassifier(config.DefaultChatConfig())
	testCases := map[string]string{
		"alice (You)":   "alice",
		"  alice (You)": "alice",
		"alice":         "alice",
		"":              "",
	}
	for raw, want := range testCases {
		if got := c.ParseUsername(raw); got != want {
			t.Errorf("ParseUsername(%q): expected %q, got %q", raw, want, got)
		}
	}
}
