package teststubs

import (
	"sync"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/filesync"
)

// StubSyncer is a test double for scoreboard.Syncer.
type StubSyncer struct {
	mu     sync.Mutex
	Err    error
	Calls  int
	Fields [][]filesync.Field
	Last   game.State
}

// Sync records the state and requested fields, returning Err.
func (s *StubSyncer) Sync(state game.State, fields ...filesync.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.Fields = append(s.Fields, append([]filesync.Field(nil), fields...))
	s.Last = state
	return s.Err
}

// CallCount returns the number of Sync calls so far.
func (s *StubSyncer) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// LastFields returns the fields passed to the most recent Sync call.
func (s *StubSyncer) LastFields() []filesync.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Fields) == 0 {
		return nil
	}
	return s.Fields[len(s.Fields)-1]
}

// StubNotifier is a test double for scoreboard.Notifier. Published states are
// delivered on States (never blocking) and kept in order.
type StubNotifier struct {
	mu        sync.Mutex
	published []game.State
	States    chan game.State
}

// NewStubNotifier returns a notifier with a buffered States channel.
func NewStubNotifier() *StubNotifier {
	return &StubNotifier{States: make(chan game.State, 64)}
}

// Publish records state.
func (n *StubNotifier) Publish(state game.State) {
	n.mu.Lock()
	n.published = append(n.published, state)
	n.mu.Unlock()
	if n.States == nil {
		return
	}
	select {
	case n.States <- state:
	default:
	}
}

// Published returns every state seen so far.
func (n *StubNotifier) Published() []game.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]game.State(nil), n.published...)
}

// Drain discards buffered states.
func (n *StubNotifier) Drain() {
	for {
		select {
		case <-n.States:
		default:
			return
		}
	}
}
