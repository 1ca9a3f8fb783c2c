// Package session owns one player's live game: the current state, the event
// bus with the core handlers registered, and the save slot it persists to.
// The simulation itself is pure; a Session is where it meets wall-clock time,
// storage and concurrent readers such as the TUI.
package session

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/handlers"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

// Store persists save slots and the event journal.
type Store interface {
	LoadState(slot string) (core.GameState, bool, error)
	SaveState(slot, runID string, state core.GameState) error
	AppendEvents(slot, runID string, at int64, events []event.Event) error
}

// Options configures a Session.
type Options struct {
	Slot   string
	Seed   uint32 // seed for a new game; 0 derives one from the clock
	Logger *log.Logger
	// LogSize bounds the in-memory activity log.
	LogSize int
}

// Command is a player action against the current state.
type Command func(e *sim.Engine, state core.GameState) sim.Result

// LogLine is one entry of the activity log.
type LogLine struct {
	At   int64
	Type event.Type
	Text string
}

type batch struct {
	at     int64
	events []event.Event
}

// Session is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	engine *sim.Engine
	bus    *bus.Bus
	store  Store
	logger *log.Logger

	slot    string
	seed    uint32
	runID   string
	state   core.GameState
	loaded  bool
	pending []batch
	log     []LogLine
	logSize int
}

// New creates a session for opts.Slot. store may be nil for an unsaved game.
func New(engine *sim.Engine, store Store, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Slot == "" {
		opts.Slot = "default"
	}
	if opts.LogSize <= 0 {
		opts.LogSize = 100
	}

	b := bus.New(logger, engine.Balance.Bus.MaxEvents)
	handlers.Register(b, engine)

	return &Session{
		engine:  engine,
		bus:     b,
		store:   store,
		logger:  logger.With("slot", opts.Slot),
		slot:    opts.Slot,
		seed:    opts.Seed,
		runID:   uuid.NewString(),
		logSize: opts.LogSize,
	}
}

// Load reads the slot and catches it up to now. A missing slot starts a new
// game. The returned result describes the offline catch-up, if any.
func (s *Session) Load(now int64) (sim.OfflineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		state core.GameState
		found bool
	)
	if s.store != nil {
		var err error
		state, found, err = s.store.LoadState(s.slot)
		if err != nil {
			return sim.OfflineResult{}, fmt.Errorf("session: load %q: %w", s.slot, err)
		}
	}

	if !found {
		seed := s.seed
		if seed == 0 {
			seed = uint32(now) ^ uint32(now>>32)
		}
		s.state = s.engine.NewGame(seed, now)
		s.loaded = true
		s.logger.Info("new game", "run", s.runID, "seed", seed)
		return sim.OfflineResult{State: s.state}, nil
	}

	res := s.engine.ProcessOfflineProgress(state, now)
	s.state = state
	s.loaded = true
	if res.ElapsedMs > 0 {
		s.apply(res.State, res.Events)
		res.State = s.state
	}
	s.logger.Info("game loaded",
		"run", s.runID,
		"away", time.Duration(res.ElapsedMs)*time.Millisecond,
		"credited", time.Duration(res.CappedMs)*time.Millisecond,
		"capped", res.WasCapped,
	)
	return res, nil
}

// Advance runs the simulation up to now and returns the events it produced,
// including handler follow-ups. Gaps longer than one offline chunk, such as
// after a suspended laptop, go through offline catch-up.
func (s *Session) Advance(now int64) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil
	}
	delta := now - s.state.LastTickAt
	if delta <= 0 {
		return nil
	}

	if chunk := s.engine.Balance.Offline.ChunkMs; chunk > 0 && delta > chunk {
		res := s.engine.ProcessOfflineProgress(s.state, now)
		s.logger.Debug("catching up", "gap", time.Duration(delta)*time.Millisecond)
		return s.apply(res.State, res.Events)
	}
	r := s.engine.ProcessTick(s.state, delta)
	return s.apply(r.State, r.Events)
}

// Do runs cmd against the current state. On success the new state is kept and
// its events are dispatched; on failure the state is unchanged.
func (s *Session) Do(cmd Command) sim.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := cmd(s.engine, s.state)
	if !res.Success {
		s.logger.Debug("command rejected", "err", res.Err)
		return res
	}
	s.apply(res.State, res.Events)
	res.State = s.state
	return res
}

// apply dispatches events against next and records them. Callers hold mu.
func (s *Session) apply(next core.GameState, events []event.Event) []event.Event {
	if len(events) == 0 {
		s.state = next
		return nil
	}

	ctx := bus.Context{Now: next.LastTickAt}
	var seen []event.Event
	s.state, seen = s.bus.Process(events, next, ctx)
	s.record(ctx.Now, seen)
	return seen
}

func (s *Session) record(at int64, events []event.Event) {
	var journal []event.Event
	for _, ev := range events {
		if !Journaled(ev) {
			continue
		}
		journal = append(journal, ev)
		s.log = append(s.log, LogLine{At: at, Type: ev.Type(), Text: event.Describe(ev)})
	}
	if over := len(s.log) - s.logSize; over > 0 {
		s.log = slices.Clone(s.log[over:])
	}
	if len(journal) > 0 && s.store != nil {
		s.pending = append(s.pending, batch{at: at, events: journal})
	}
}

// Journaled reports whether ev is kept in the journal and activity log.
// Per-tick progress reports are not.
func Journaled(ev event.Event) bool {
	switch ev.Type() {
	case event.TypeSkillActionsCompleted, event.TypeResourceGained, event.TypeQuestProgress:
		return false
	}
	return true
}

// Save writes the state and any unsaved journal entries to the store.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil || !s.loaded {
		return nil
	}
	state := handlers.Prune(s.state, s.state.LastTickAt)
	if err := s.store.SaveState(s.slot, s.runID, state); err != nil {
		return fmt.Errorf("session: save %q: %w", s.slot, err)
	}
	for len(s.pending) > 0 {
		b := s.pending[0]
		if err := s.store.AppendEvents(s.slot, s.runID, b.at, b.events); err != nil {
			return fmt.Errorf("session: journal %q: %w", s.slot, err)
		}
		s.pending = s.pending[1:]
	}
	s.pending = nil
	s.logger.Debug("saved", "tick", s.state.LastTickAt)
	return nil
}

// State returns the current snapshot. Snapshots are never mutated in place,
// so the caller may keep it.
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Log returns the most recent activity, oldest first.
func (s *Session) Log(n int) []LogLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.log) {
		n = len(s.log)
	}
	return slices.Clone(s.log[len(s.log)-n:])
}

// Engine returns the engine the session runs on.
func (s *Session) Engine() *sim.Engine { return s.engine }

// Bus returns the session's event bus.
func (s *Session) Bus() *bus.Bus { return s.bus }

// RunID identifies this process's run in the journal.
func (s *Session) RunID() string { return s.runID }

// Slot returns the save slot name.
func (s *Session) Slot() string { return s.slot }
