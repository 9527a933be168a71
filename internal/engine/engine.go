// Package engine implements the completion and earnings lifecycle: the
// per-date completion state machine, the cash-out ledger, the past-chore
// approval queue, bonus awards, and the potential-earnings projection.
//
// The engine is the single writer over the household state. Every operation
// takes the engine lock, mutates in memory, queues best-effort persistence,
// and broadcasts domain events before returning.
package engine

import (
	"log/slog"
	"sync"

	"github.com/dukerupert/farthing/internal/clock"
	"github.com/dukerupert/farthing/internal/events"
	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// Actor identifies who triggered an operation. Children are restricted in
// what they may do to past dates and settled completions.
type Actor string

const (
	ActorChild  Actor = "child"
	ActorParent Actor = "parent"
)

// Persister receives collection snapshots after each mutation. Writes are
// best-effort: the in-memory state is authoritative for the session.
type Persister interface {
	Save(profileID, name string, v any)
	DeleteProfile(profileID string)
}

// Broadcaster publishes domain events to connected clients.
type Broadcaster interface {
	Broadcast(ev events.Event)
}

type Engine struct {
	mu      sync.Mutex
	clock   clock.Clock
	logger  *slog.Logger
	persist Persister
	events  Broadcaster
	state   *store.State
}

// New builds an engine over previously loaded state. persist and broadcaster
// may be nil (tests, read-only tooling).
func New(state *store.State, persist Persister, broadcaster Broadcaster, clk clock.Clock, logger *slog.Logger) *Engine {
	if state == nil {
		state = store.NewState()
	}
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		clock:   clk,
		logger:  logger,
		persist: persist,
		events:  broadcaster,
		state:   state,
	}
}

// today returns the current local calendar-date key.
func (e *Engine) today() string {
	return model.DateKey(e.clock.Now())
}

func (e *Engine) save(profileID, name string, v any) {
	if e.persist != nil {
		e.persist.Save(profileID, name, v)
	}
}

func (e *Engine) broadcast(entity, action, profileID, id string, extra map[string]any) {
	if e.events != nil {
		e.events.Broadcast(events.New(entity, action, profileID, id, extra))
	}
}

func (e *Engine) profileLocked(id string) *model.Profile {
	for i := range e.state.Profiles {
		if e.state.Profiles[i].ID == id {
			return &e.state.Profiles[i]
		}
	}
	return nil
}

func (e *Engine) choreLocked(profileID, choreID string) *model.Chore {
	chores := e.state.Chores[profileID]
	for i := range chores {
		if chores[i].ID == choreID {
			return &chores[i]
		}
	}
	return nil
}
