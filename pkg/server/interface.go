/*
Package server carries a guessr session over msgpack IPC on stdin/stdout.

The page-side script (browser extension, userscript or test harness) is the
client. It streams what it observes on the game page as requests, and the
server streams back the ranked candidate view and the words to submit.

# Requests

Every request is a msgpack map with an id and an op:

	{"id": "1", "op": "chat", "text": "alice is drawing now!", "color": "rgb(57, 117, 206)"}
	{"id": "2", "op": "hints", "hints": "c__"}
	{"id": "3", "op": "input", "text": "ca"}
	{"id": "4", "op": "username", "text": "alice (You)"}
	{"id": "5", "op": "reveal", "words": ["lamp", "chair", "boat"]}
	{"id": "6", "op": "settings", "settings": {"autoGuessTimer": "3000", "confidenceThreshold": "2"}}
	{"id": "7", "op": "auto", "on": true}
	{"id": "8", "op": "reset_stats"}
	{"id": "9", "op": "submit_top"}
	{"id": "10", "op": "state"}
	{"id": "11", "op": "complete", "p": "ca", "l": 10}
	{"id": "12", "op": "health"}

Chat lines are classified server-side; unrecognised lines are acknowledged
with status "ignored".

# Outbound messages

Responses echo the request id. Pushes carry no id and are sent whenever
the engine changes state:

	{"type": "view", "words": ["cat", "cot"], "remaining": 2}
	{"type": "submit", "word": "cat"}

Settings numbers arrive as text, the way a form field delivers them;
non-numeric values keep the previous setting.
*/
package server

import (
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
)

// Outbound message types.
const (
	TypeReady      = "ready"
	TypeResponse   = "response"
	TypeState      = "state"
	TypeCompletion = "completion"
	TypeView       = "view"
	TypeSubmit     = "submit"
)

// Request status values.
const (
	StatusOK      = "ok"
	StatusIgnored = "ignored"
	StatusError   = "error"
)

// Request is the single inbound shape; fields are used per op.
type Request struct {
	ID       string           `msgpack:"id"`
	Op       string           `msgpack:"op"`
	Text     string           `msgpack:"text,omitempty"`
	Color    string           `msgpack:"color,omitempty"`
	Hints    string           `msgpack:"hints,omitempty"`
	Words    []string         `msgpack:"words,omitempty"`
	On       bool             `msgpack:"on,omitempty"`
	Settings *SettingsRequest `msgpack:"settings,omitempty"`
	Prefix   string           `msgpack:"p,omitempty"`
	Limit    int              `msgpack:"l,omitempty"`
}

// SettingsRequest is a raw save from the settings form.
type SettingsRequest struct {
	AutoGuessTimer      string `msgpack:"autoGuessTimer"`
	ConfidenceThreshold string `msgpack:"confidenceThreshold"`
	AlphabeticalSort    bool   `msgpack:"alphabeticalSort"`
	SortByFrequency     bool   `msgpack:"sortByFrequency"`
}

// Response acknowledges a request.
type Response struct {
	Type   string `msgpack:"type"`
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
}

// StatsPayload is the stats surface.
type StatsPayload struct {
	TotalRounds  int     `msgpack:"totalRounds"`
	TotalGuesses int     `msgpack:"totalGuesses"`
	Average      float64 `msgpack:"average"`
	WordsLearned int     `msgpack:"wordsLearned"`
}

// StateResponse is a full snapshot of the session.
type StateResponse struct {
	Type         string          `msgpack:"type"`
	ID           string          `msgpack:"id"`
	Status       string          `msgpack:"status"`
	Phase        string          `msgpack:"phase"`
	Username     string          `msgpack:"username,omitempty"`
	AutoGuessing bool            `msgpack:"autoGuessing"`
	View         engine.View     `msgpack:"view"`
	Stats        StatsPayload    `msgpack:"stats"`
	Settings     config.Settings `msgpack:"settings"`
}

// CompletionSuggestion is one vocabulary match.
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Rank      uint16 `msgpack:"r"`
	Frequency int    `msgpack:"f,omitempty"`
}

// CompletionResponse lists vocabulary words for a prefix.
type CompletionResponse struct {
	Type        string                 `msgpack:"type"`
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// ViewMessage is pushed on every display change.
type ViewMessage struct {
	Type      string   `msgpack:"type"`
	Words     []string `msgpack:"words"`
	Remaining int      `msgpack:"remaining"`
	Prefix    string   `msgpack:"prefix,omitempty"`
}

// SubmitMessage asks the client to type and send a word.
type SubmitMessage struct {
	Type string `msgpack:"type"`
	Word string `msgpack:"word"`
}
