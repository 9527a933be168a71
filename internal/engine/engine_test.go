package engine

import (
	"testing"
	"time"

	"github.com/dukerupert/farthing/internal/events"
	"github.com/dukerupert/farthing/internal/model"
)

// monday is the fixed reference instant for engine tests: Monday 2024-03-04
// 09:00 local. Friday of that week is 2024-03-08.
var monday = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakePersister struct {
	saves   []string
	deletes []string
}

func (p *fakePersister) Save(profileID, name string, v any) {
	p.saves = append(p.saves, profileID+"/"+name)
}

func (p *fakePersister) DeleteProfile(profileID string) {
	p.deletes = append(p.deletes, profileID)
}

type fakeBroadcaster struct {
	events []events.Event
}

func (b *fakeBroadcaster) Broadcast(ev events.Event) {
	b.events = append(b.events, ev)
}

func (b *fakeBroadcaster) count(eventType string) int {
	n := 0
	for _, ev := range b.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock, *fakePersister, *fakeBroadcaster) {
	t.Helper()
	clk := &fakeClock{now: monday}
	persist := &fakePersister{}
	bus := &fakeBroadcaster{}
	return New(nil, persist, bus, clk, nil), clk, persist, bus
}

func mustProfile(t *testing.T, e *Engine, name string) *model.Profile {
	t.Helper()
	p, err := e.CreateProfile(name)
	if err != nil {
		t.Fatalf("create profile %q: %v", name, err)
	}
	return p
}

func mustChore(t *testing.T, e *Engine, profileID, name string, value int, weekdays ...time.Weekday) *model.Chore {
	t.Helper()
	ch, err := e.CreateChore(profileID, name, value, weekdays, "", "general")
	if err != nil {
		t.Fatalf("create chore %q: %v", name, err)
	}
	return ch
}

func choreState(t *testing.T, e *Engine, profileID, choreID, date string) model.CompletionState {
	t.Helper()
	chores, err := e.Chores(profileID)
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	for _, ch := range chores {
		if ch.ID == choreID {
			return ch.Completions[date]
		}
	}
	t.Fatalf("chore %s not found", choreID)
	return ""
}
