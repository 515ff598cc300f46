// Package events defines the notifications the questionnaire core emits and
// a small synchronous dispatcher that view layers subscribe to.
package events

import (
	"sync"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// Event is implemented by every notification
type Event interface {
	// Type is the wire name used when the event is forwarded to clients
	Type() string
}

// DataUpdate is emitted whenever a stage's answers change
type DataUpdate struct {
	Stage    domain.StageName   `json:"stage"`
	Data     domain.StageAnswer `json:"data"`
	Progress domain.Progress    `json:"progress"`
}

// StepChange is emitted when a collector moves to another step
type StepChange struct {
	Stage    domain.StageName `json:"stage"`
	Step     domain.StepName  `json:"step"`
	Dialogue domain.Dialogue  `json:"dialogue"`
	Options  []domain.Option  `json:"options"`
	Progress domain.Progress  `json:"progress"`
}

// CollectionComplete is emitted when a stage's terminal step validates.
// NextStage is empty for the final stage.
type CollectionComplete struct {
	Stage     domain.StageName   `json:"stage"`
	Data      domain.StageAnswer `json:"data"`
	NextStage domain.StageName   `json:"nextStage,omitempty"`
}

// ValidationError is emitted when a required step is not satisfied
type ValidationError struct {
	Stage   domain.StageName `json:"stage"`
	Step    domain.StepName  `json:"step"`
	Message string           `json:"message"`
}

// StageChanged is emitted when the orchestrator activates a stage
type StageChanged struct {
	Index    int              `json:"index"`
	Stage    domain.StageName `json:"stage"`
	Previous int              `json:"previous"`
}

// AdvisoryWarning carries cross-stage consistency warnings
type AdvisoryWarning struct {
	Messages []string `json:"messages"`
}

// SessionComplete is emitted after the documents have been generated
type SessionComplete struct {
	SessionID  string                     `json:"sessionId"`
	Complexity string                     `json:"complexity"`
	Documents  []domain.GeneratedDocument `json:"documents"`
}

func (DataUpdate) Type() string         { return "data_update" }
func (StepChange) Type() string         { return "step_change" }
func (CollectionComplete) Type() string { return "collection_complete" }
func (ValidationError) Type() string    { return "validation_error" }
func (StageChanged) Type() string       { return "stage_changed" }
func (AdvisoryWarning) Type() string    { return "advisory_warning" }
func (SessionComplete) Type() string    { return "session_complete" }

// Publisher accepts events
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a function to a Publisher
type PublisherFunc func(Event)

// Publish calls f(e)
func (f PublisherFunc) Publish(e Event) { f(e) }

// Handler receives published events
type Handler func(Event)

// Bus delivers every published event to all current subscribers, in
// subscription order, on the publishing goroutine.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	order    []int
	handlers map[int]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns a function that removes it
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e to every subscriber. Handlers may subscribe or
// unsubscribe while being called.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

// Len returns the number of subscribers
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
