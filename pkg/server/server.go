package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/guessr/internal/utils"
	"github.com/bastiangx/guessr/pkg/adapter"
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
	"github.com/bastiangx/guessr/pkg/hints"
)

// Limits for completion requests.
const (
	DefaultLimit = 10
	MaxLimit     = 64
	MaxPrefix    = 60
)

// Outbox serializes every outbound message onto one writer. It is the
// engine's Display and the submitter's Sink.
type Outbox struct {
	mu  sync.Mutex
	enc *msgpack.Encoder
}

// NewOutbox writes msgpack values to w.
func NewOutbox(w io.Writer) *Outbox {
	return &Outbox{enc: msgpack.NewEncoder(w)}
}

// Write encodes one message.
func (o *Outbox) Write(v any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.enc.Encode(v); err != nil {
		return fmt.Errorf("encode %T: %w", v, err)
	}
	return nil
}

// Show implements engine.Display.
func (o *Outbox) Show(v engine.View) {
	msg := ViewMessage{Type: TypeView, Words: v.Words, Remaining: v.Remaining, Prefix: v.Prefix}
	if msg.Words == nil {
		msg.Words = []string{}
	}
	if err := o.Write(msg); err != nil {
		log.Errorf("Pushing view: %v", err)
	}
}

// Send implements submit.Sink.
func (o *Outbox) Send(_ context.Context, word string) error {
	return o.Write(SubmitMessage{Type: TypeSubmit, Word: word})
}

// Options configures a Server.
type Options struct {
	// Config and ConfigPath, when set, receive settings saves so the TOML
	// file stays the source of truth across restarts.
	Config     *config.Config
	ConfigPath string
}

// Server reads requests and forwards them to a session.
type Server struct {
	session    *engine.Session
	classifier *adapter.Classifier
	row        adapter.HintRow
	out        *Outbox
	dec        *msgpack.Decoder
	cfg        *config.Config
	configPath string
	requests   int
}

// NewServer reads requests from r and answers through out.
func NewServer(session *engine.Session, classifier *adapter.Classifier, out *Outbox, r io.Reader, opts Options) *Server {
	return &Server{
		session:    session,
		classifier: classifier,
		out:        out,
		dec:        msgpack.NewDecoder(r),
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
	}
}

// Start announces readiness and serves until the input ends or ctx is
// cancelled. A clean EOF returns nil.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.", "session", s.session.ID)
	if err := s.out.Write(Response{Type: TypeReady, Status: StatusOK}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server")
				return nil
			}
			return fmt.Errorf("decode request: %w", err)
		}
		s.requests++
		if err := s.handleRequest(ctx, req); err != nil {
			return err
		}
	}
}

// handleRequest returns an error only when the session is gone.
func (s *Server) handleRequest(ctx context.Context, req Request) error {
	log.Debug("Request", "id", req.ID, "op", req.Op)

	var ev engine.Event
	switch req.Op {
	case "health":
		return s.ack(req.ID, StatusOK, "")
	case "state":
		return s.handleState(ctx, req)
	case "complete":
		return s.handleComplete(ctx, req)
	case "settings":
		return s.handleSettings(ctx, req)
	case "chat":
		var ok bool
		ev, ok = s.classifier.Classify(adapter.Message{Text: req.Text, Color: req.Color})
		if !ok {
			return s.ack(req.ID, StatusIgnored, "")
		}
		ev = s.row.Attach(ev)
	case "hints":
		ev = s.row.Update(hints.Parse(req.Hints))
	case "input":
		ev = engine.InputChanged{Text: req.Text}
	case "username":
		ev = engine.UsernameDetected{Name: s.classifier.ParseUsername(req.Text)}
	case "reveal":
		ev = engine.WordsRevealed{Words: req.Words}
	case "auto":
		ev = engine.AutoGuessToggled{On: req.On}
	case "reset_stats":
		ev = engine.StatsReset{}
	case "submit_top":
		ev = engine.SubmitTop{}
	default:
		return s.ack(req.ID, StatusError, fmt.Sprintf("unknown op: %s", req.Op))
	}

	if err := s.session.Post(ctx, ev); err != nil {
		return fmt.Errorf("post %T: %w", ev, err)
	}
	return s.ack(req.ID, StatusOK, "")
}

func (s *Server) ack(id, status, msg string) error {
	if err := s.out.Write(Response{Type: TypeResponse, ID: id, Status: status, Error: msg}); err != nil {
		log.Errorf("Writing response: %v", err)
	}
	return nil
}

func (s *Server) handleState(ctx context.Context, req Request) error {
	resp := StateResponse{Type: TypeState, ID: req.ID, Status: StatusOK}
	err := s.session.Inspect(ctx, func(e *engine.Engine) {
		sum := e.Summary()
		resp.Phase = e.Phase().String()
		resp.Username = e.Username()
		resp.AutoGuessing = e.AutoGuessing()
		resp.View = e.View()
		resp.Settings = e.Settings()
		resp.Stats = StatsPayload{
			TotalRounds:  sum.TotalRounds,
			TotalGuesses: sum.TotalGuesses,
			Average:      sum.Average,
			WordsLearned: sum.WordsLearned,
		}
	})
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	if resp.View.Words == nil {
		resp.View.Words = []string{}
	}
	if err := s.out.Write(resp); err != nil {
		log.Errorf("Writing state: %v", err)
	}
	return nil
}

func (s *Server) handleComplete(ctx context.Context, req Request) error {
	if len(req.Prefix) > MaxPrefix {
		return s.ack(req.ID, StatusError, fmt.Sprintf("prefix exceeds maximum length of %d characters", MaxPrefix))
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	start := time.Now()
	resp := CompletionResponse{Type: TypeCompletion, ID: req.ID}
	err := s.session.Inspect(ctx, func(e *engine.Engine) {
		found := e.Lexicon().Complete(req.Prefix, limit)
		ranks := utils.CreateRankList(len(found))
		resp.Suggestions = make([]CompletionSuggestion, len(found))
		for i, sug := range found {
			resp.Suggestions[i] = CompletionSuggestion{Word: sug.Word, Rank: ranks[i], Frequency: sug.Frequency}
		}
	})
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	resp.Count = len(resp.Suggestions)
	resp.TimeTaken = time.Since(start).Microseconds()

	if err := s.out.Write(resp); err != nil {
		log.Errorf("Writing completion: %v", err)
	}
	return nil
}

func (s *Server) handleSettings(ctx context.Context, req Request) error {
	if req.Settings == nil {
		return s.ack(req.ID, StatusError, "missing settings")
	}

	var current config.Settings
	if err := s.session.Inspect(ctx, func(e *engine.Engine) { current = e.Settings() }); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	next := config.SettingsInput{
		Timer:            req.Settings.AutoGuessTimer,
		Threshold:        req.Settings.ConfidenceThreshold,
		AlphabeticalSort: req.Settings.AlphabeticalSort,
		SortByFrequency:  req.Settings.SortByFrequency,
	}.Apply(current)

	if err := s.session.Post(ctx, engine.SettingsSaved{Settings: next}); err != nil {
		return fmt.Errorf("post settings: %w", err)
	}

	if s.cfg != nil && s.configPath != "" {
		if err := s.cfg.UpdateSettings(s.configPath, next); err != nil {
			log.Warnf("Settings applied but not written to %s: %v", s.configPath, err)
		}
	}
	return s.ack(req.ID, StatusOK, "")
}

// RequestCount is how many requests were handled.
func (s *Server) RequestCount() int {
	return s.requests
}
