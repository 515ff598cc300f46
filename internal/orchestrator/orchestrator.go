// Package orchestrator sequences the five stage collectors, merges their
// answers, persists the session and runs the parse and generate pipeline
// when the last stage completes.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/collector"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
	"github.com/robertguss/vibe-academy-go/internal/generator"
	"github.com/robertguss/vibe-academy-go/internal/parser"
	"github.com/robertguss/vibe-academy-go/internal/storage"
)

// DefaultCompletionDelay is the pause between a stage completing and the
// next stage opening
const DefaultCompletionDelay = 1500 * time.Millisecond

const storeTimeout = 5 * time.Second

// Scheduler runs f after d and returns a function that cancels it
type Scheduler func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithCompletionDelay overrides DefaultCompletionDelay
func WithCompletionDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.delay = d
	}
}

// WithScheduler replaces the timer used for completion callbacks
func WithScheduler(s Scheduler) Option {
	return func(o *Orchestrator) {
		o.schedule = s
	}
}

// WithLiveValidation enables advisory checks after every answer change
func WithLiveValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.liveValidation = enabled
	}
}

// WithClock overrides the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithDocumentStore archives generated documents when the session completes
func WithDocumentStore(ds storage.DocumentStore) Option {
	return func(o *Orchestrator) {
		o.docs = ds
	}
}

// WithParser overrides the requirement parser
func WithParser(p *parser.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = p
	}
}

// Result holds the outcome of a completed session
type Result struct {
	Requirement *parser.Requirement
	Documents   []domain.GeneratedDocument
}

// Orchestrator owns the collectors and the session state. All methods are
// safe for concurrent use; events are published after the state change
// that caused them has settled and the lock is released.
type Orchestrator struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	store   storage.KeyValueStore
	docs    storage.DocumentStore
	bus     *events.Bus
	parser  *parser.Parser

	delay          time.Duration
	schedule       Scheduler
	liveValidation bool
	now            func() time.Time

	collectors []*collector.Collector
	collected  map[domain.StageName]domain.StageAnswer
	sessionID  string
	active     int
	furthest   int
	state      domain.SessionState
	result     *Result
	warnings   []string

	generation int
	stopTimer  func() bool
	closed     bool
	pending    []events.Event
}

// New creates an orchestrator with one collector per stage. A nil store
// keeps the session in memory only; a nil bus gets a private one.
func New(cat *catalog.Catalog, store storage.KeyValueStore, bus *events.Bus, opts ...Option) (*Orchestrator, error) {
	if cat == nil {
		return nil, fmt.Errorf("orchestrator needs a catalog")
	}
	if bus == nil {
		bus = events.NewBus()
	}

	o := &Orchestrator{
		catalog:   cat,
		store:     store,
		bus:       bus,
		delay:     DefaultCompletionDelay,
		schedule:  afterFunc,
		now:       time.Now,
		collected: make(map[domain.StageName]domain.StageAnswer),
		sessionID: uuid.NewString(),
		state:     domain.SessionNotStarted,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.parser == nil {
		o.parser = parser.New(cat)
	}

	if err := o.buildCollectors(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) buildCollectors() error {
	configs := collector.Configs()
	collectors := make([]*collector.Collector, 0, len(configs))
	for _, cfg := range configs {
		c, err := collector.New(cfg, o.catalog, events.PublisherFunc(o.intercept),
			collector.WithPrior(o.priorLocked),
			collector.WithClock(o.now),
		)
		if err != nil {
			return fmt.Errorf("failed to build collector for %s: %w", cfg.Stage, err)
		}
		collectors = append(collectors, c)
	}
	o.collectors = collectors
	return nil
}

// Bus returns the event bus the orchestrator publishes to
func (o *Orchestrator) Bus() *events.Bus { return o.bus }

// Catalog returns the option catalog
func (o *Orchestrator) Catalog() *catalog.Catalog { return o.catalog }

// do runs fn under the lock and then publishes the events it queued
func (o *Orchestrator) do(fn func()) {
	o.mu.Lock()
	fn()
	pending := o.pending
	o.pending = nil
	o.mu.Unlock()

	for _, e := range pending {
		o.bus.Publish(e)
	}
}

func (o *Orchestrator) queue(e events.Event) {
	o.pending = append(o.pending, e)
}

// intercept receives collector events. Collectors only run under the lock.
func (o *Orchestrator) intercept(e events.Event) {
	switch ev := e.(type) {
	case events.DataUpdate:
		o.queue(e)
		o.stageDataUpdate(ev.Stage, ev.Data)
	case events.CollectionComplete:
		o.queue(e)
		o.stageComplete(ev.Stage, ev.Data)
	default:
		o.queue(e)
	}
}

func (o *Orchestrator) priorLocked() map[domain.StageName]domain.StageAnswer {
	return o.collected
}

// Start opens the active stage, which is the first stage unless a saved
// session was restored
func (o *Orchestrator) Start() {
	o.do(func() {
		if o.state == domain.SessionNotStarted {
			o.state = domain.SessionInProgress
		}
		o.goToStageLocked(o.active)
	})
}

// GoToStage activates stage i and resets it to its first step. Indices
// outside 0..4 are ignored.
func (o *Orchestrator) GoToStage(i int) bool {
	var ok bool
	o.do(func() { ok = o.goToStageLocked(i) })
	return ok
}

// Advance moves to the next stage
func (o *Orchestrator) Advance() bool {
	var ok bool
	o.do(func() { ok = o.goToStageLocked(o.active + 1) })
	return ok
}

// Retreat moves to the previous stage
func (o *Orchestrator) Retreat() bool {
	var ok bool
	o.do(func() { ok = o.goToStageLocked(o.active - 1) })
	return ok
}

// CanVisit reports whether a UI may jump to stage i: only stages up to the
// furthest one reached are open
func (o *Orchestrator) CanVisit(i int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return i >= 0 && i < len(o.collectors) && i <= o.furthest
}

func (o *Orchestrator) goToStageLocked(i int) bool {
	if i < 0 || i >= len(o.collectors) {
		log.Printf("orchestrator: ignoring navigation to stage %d", i)
		return false
	}

	o.cancelTimerLocked()
	prev := o.active
	o.active = i
	if i > o.furthest {
		o.furthest = i
	}
	if o.state != domain.SessionInProgress {
		if o.state == domain.SessionComplete {
			o.deleteKey(KeyProjectComplete)
		}
		o.state = domain.SessionInProgress
	}

	stage, _ := domain.StageAt(i)
	o.queue(events.StageChanged{Index: i, Stage: stage, Previous: prev})
	o.collectors[i].Reset()
	o.saveSessionLocked()
	return true
}

// Select records a card selection on the active stage's current step
func (o *Orchestrator) Select(step domain.StepName, value string, multiSelect bool) bool {
	var ok bool
	o.do(func() { ok = o.collectors[o.active].RecordSelection(step, value, multiSelect) })
	return ok
}

// Validate checks the active step and advances on success
func (o *Orchestrator) Validate() bool {
	var ok bool
	o.do(func() { ok = o.collectors[o.active].ValidateCurrentStep() })
	return ok
}

// StepBack moves the active stage to its previous step
func (o *Orchestrator) StepBack() {
	o.do(func() { o.collectors[o.active].RetreatStep() })
}

// OnStageDataUpdate merges a stage snapshot into the collected data and
// writes it through to the store
func (o *Orchestrator) OnStageDataUpdate(stage domain.StageName, data domain.StageAnswer) {
	o.do(func() { o.stageDataUpdate(stage, data) })
}

func (o *Orchestrator) stageDataUpdate(stage domain.StageName, data domain.StageAnswer) {
	if stage.Index() < 0 {
		log.Printf("orchestrator: ignoring data for unknown stage %q", stage)
		return
	}
	o.collected[stage] = data.Clone()
	o.saveStageLocked(stage)

	if !o.liveValidation {
		return
	}
	warnings := parser.Check(o.parser.Parse(o.collected))
	if !sameStrings(warnings, o.warnings) {
		o.warnings = warnings
		for _, w := range warnings {
			log.Printf("orchestrator: advisory: %s", w)
		}
		if len(warnings) > 0 {
			o.queue(events.AdvisoryWarning{Messages: append([]string(nil), warnings...)})
		}
	}
}

// OnStageComplete stores the final snapshot of a stage and schedules the
// transition to the next stage, or the final pipeline after the last one
func (o *Orchestrator) OnStageComplete(stage domain.StageName, data domain.StageAnswer) {
	o.do(func() { o.stageComplete(stage, data) })
}

func (o *Orchestrator) stageComplete(stage domain.StageName, data domain.StageAnswer) {
	if stage.Index() < 0 {
		log.Printf("orchestrator: ignoring completion of unknown stage %q", stage)
		return
	}
	o.collected[stage] = data.Clone()
	o.saveStageLocked(stage)
	o.saveSessionLocked()

	o.cancelTimerLocked()
	gen := o.generation
	o.stopTimer = o.schedule(o.delay, func() { o.completionFired(gen) })
}

func (o *Orchestrator) cancelTimerLocked() {
	o.generation++
	if o.stopTimer != nil {
		o.stopTimer()
		o.stopTimer = nil
	}
}

func (o *Orchestrator) completionFired(gen int) {
	o.do(func() {
		if o.closed || gen != o.generation {
			return
		}
		o.stopTimer = nil
		if o.active < len(o.collectors)-1 {
			o.goToStageLocked(o.active + 1)
			return
		}
		o.completeLocked()
	})
}

func (o *Orchestrator) completeLocked() {
	o.state = domain.SessionComplete
	o.setKey(KeyProjectComplete, "true")
	o.saveSessionLocked()

	r := o.parser.Parse(o.collected)
	docs := generator.GenerateAll(r)
	o.result = &Result{Requirement: r, Documents: docs}

	if o.docs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if _, err := o.docs.SaveDocuments(ctx, o.sessionID, docs); err != nil {
			log.Printf("orchestrator: failed to archive documents: %v", err)
		}
	}

	o.queue(events.SessionComplete{
		SessionID:  o.sessionID,
		Complexity: string(r.Complexity()),
		Documents:  docs,
	})
}

// Close cancels any pending completion callback. The orchestrator stays
// readable but no scheduled transition will fire.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.cancelTimerLocked()
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
