// Package collector implements the per-stage step state machine: one generic
// Collector driven by a StageConfig that names each step's selection mode,
// handler and validator.
package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
)

// ErrInvalidConfig is returned by New when a stage configuration is incomplete
var ErrInvalidConfig = errors.New("invalid stage configuration")

// Rejection is returned by a Handler when a value is well-formed for the
// step but unacceptable, such as a malformed URL. The message is shown to the user.
type Rejection struct {
	Message string
}

func (r *Rejection) Error() string { return r.Message }

// Handler applies a selection to the answer and reports whether it changed
type Handler func(a *domain.StageAnswer, value string) (bool, error)

// Validator reports whether a step is satisfied
type Validator func(a domain.StageAnswer, ctx catalog.Context) bool

// StepDef configures one step of a stage
type StepDef struct {
	Name     domain.StepName
	Mode     domain.SelectionMode
	Handler  Handler
	Validate Validator
}

// StageConfig configures a collector
type StageConfig struct {
	Stage domain.StageName
	Steps []StepDef
}

// Option configures a Collector
type Option func(*Collector)

// WithPrior supplies read access to the snapshots of other stages
func WithPrior(fn func() map[domain.StageName]domain.StageAnswer) Option {
	return func(c *Collector) {
		c.prior = fn
	}
}

// WithClock overrides the clock used to stamp answers
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// Collector drives one stage's step-by-step flow
type Collector struct {
	cfg     StageConfig
	catalog *catalog.Catalog
	pub     events.Publisher
	prior   func() map[domain.StageName]domain.StageAnswer
	now     func() time.Time

	index   int
	answers domain.StageAnswer
}

// New validates the step dispatch table and returns a collector positioned
// at the first step. Every step needs a handler, a validator and a dialogue.
func New(cfg StageConfig, cat *catalog.Catalog, pub events.Publisher, opts ...Option) (*Collector, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidConfig)
	}
	if len(cfg.Steps) == 0 {
		return nil, fmt.Errorf("%w: stage %s has no steps", ErrInvalidConfig, cfg.Stage)
	}

	seen := make(map[domain.StepName]bool, len(cfg.Steps))
	for _, step := range cfg.Steps {
		switch {
		case step.Name == "":
			return nil, fmt.Errorf("%w: stage %s has an unnamed step", ErrInvalidConfig, cfg.Stage)
		case seen[step.Name]:
			return nil, fmt.Errorf("%w: stage %s repeats step %s", ErrInvalidConfig, cfg.Stage, step.Name)
		case step.Handler == nil:
			return nil, fmt.Errorf("%w: step %s/%s has no handler", ErrInvalidConfig, cfg.Stage, step.Name)
		case step.Validate == nil:
			return nil, fmt.Errorf("%w: step %s/%s has no validator", ErrInvalidConfig, cfg.Stage, step.Name)
		case !cat.HasStep(cfg.Stage, step.Name):
			return nil, fmt.Errorf("%w: step %s/%s has no catalog entry", ErrInvalidConfig, cfg.Stage, step.Name)
		}
		seen[step.Name] = true
	}

	if pub == nil {
		pub = events.PublisherFunc(func(events.Event) {})
	}

	c := &Collector{
		cfg:     cfg,
		catalog: cat,
		pub:     pub,
		now:     time.Now,
		answers: domain.NewStageAnswer(cfg.Stage),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Stage returns the stage this collector drives
func (c *Collector) Stage() domain.StageName { return c.cfg.Stage }

// StepCount returns the number of steps
func (c *Collector) StepCount() int { return len(c.cfg.Steps) }

// CurrentStepIndex returns the zero-based index of the current step
func (c *Collector) CurrentStepIndex() int { return c.index }

// CurrentStep returns the name of the current step
func (c *Collector) CurrentStep() domain.StepName { return c.cfg.Steps[c.index].Name }

// CurrentMode returns the selection mode of the current step
func (c *Collector) CurrentMode() domain.SelectionMode { return c.cfg.Steps[c.index].Mode }

// StepNames returns the step order
func (c *Collector) StepNames() []domain.StepName {
	names := make([]domain.StepName, len(c.cfg.Steps))
	for i, s := range c.cfg.Steps {
		names[i] = s.Name
	}
	return names
}

// Progress returns the collector's position within the stage
func (c *Collector) Progress() domain.Progress {
	return domain.NewProgress(c.index, len(c.cfg.Steps))
}

// CurrentStepDialogue returns the guide dialogue of the current step
func (c *Collector) CurrentStepDialogue() domain.Dialogue {
	d, _ := c.catalog.Dialogue(c.cfg.Stage, c.CurrentStep())
	return d
}

// CurrentStepOptions returns the cards of the current step
func (c *Collector) CurrentStepOptions() []domain.Option {
	return c.catalog.StepOptions(c.cfg.Stage, c.CurrentStep(), c.context())
}

func (c *Collector) context() catalog.Context {
	ctx := catalog.Context{Current: c.answers}
	if c.prior != nil {
		ctx.Prior = c.prior()
	}
	return ctx
}

// RecordSelection applies a card selection to the current step. Selections
// for another step, with a mismatched multi-select flag, or for a value the
// step does not offer are ignored with a warning. It reports whether the
// answers changed.
func (c *Collector) RecordSelection(step domain.StepName, value string, multiSelect bool) bool {
	def := c.cfg.Steps[c.index]
	if step != def.Name {
		log.Printf("collector %s: ignoring selection for %s, current step is %s", c.cfg.Stage, step, def.Name)
		return false
	}
	if multiSelect != def.Mode.IsMulti() {
		log.Printf("collector %s: ignoring selection for %s, multiSelect=%v does not match mode %s",
			c.cfg.Stage, step, multiSelect, def.Mode)
		return false
	}
	if def.Mode != domain.ModeDisplay && !offers(c.CurrentStepOptions(), value) {
		log.Printf("collector %s: ignoring unknown value %q for %s", c.cfg.Stage, value, step)
		return false
	}

	changed, err := def.Handler(&c.answers, value)
	if err != nil {
		var rej *Rejection
		if errors.As(err, &rej) {
			c.pub.Publish(events.ValidationError{Stage: c.cfg.Stage, Step: def.Name, Message: rej.Message})
		} else {
			log.Printf("collector %s: selection for %s failed: %v", c.cfg.Stage, step, err)
		}
		return false
	}
	if !changed {
		return false
	}

	c.answers.Timestamp = c.now().UTC()
	c.pub.Publish(events.DataUpdate{Stage: c.cfg.Stage, Data: c.Snapshot(), Progress: c.Progress()})
	return true
}

// offers reports whether a value matches one of the step's cards. Input
// cards match any "key=text" value whose key is the card's value.
func offers(opts []domain.Option, value string) bool {
	for _, o := range opts {
		if o.Input {
			if key, _, ok := domain.SplitKeyed(value); ok && key == o.Value {
				return true
			}
			continue
		}
		if o.Value == value {
			return true
		}
	}
	return false
}

// ValidateCurrentStep checks the current step. On success it advances, or
// emits CollectionComplete on the terminal step. On failure it emits a
// ValidationError and changes nothing.
func (c *Collector) ValidateCurrentStep() bool {
	def := c.cfg.Steps[c.index]
	if !def.Validate(c.answers, c.context()) {
		c.pub.Publish(events.ValidationError{
			Stage:   c.cfg.Stage,
			Step:    def.Name,
			Message: c.catalog.ErrorMessage(c.cfg.Stage, def.Name),
		})
		return false
	}

	if c.index == len(c.cfg.Steps)-1 {
		next, _ := domain.StageAt(c.cfg.Stage.Index() + 1)
		c.pub.Publish(events.CollectionComplete{Stage: c.cfg.Stage, Data: c.Snapshot(), NextStage: next})
		return true
	}

	c.AdvanceStep()
	return true
}

// AdvanceStep moves to the next step; a no-op on the last step
func (c *Collector) AdvanceStep() {
	if c.index >= len(c.cfg.Steps)-1 {
		return
	}
	c.index++
	c.emitStepChange()
}

// RetreatStep moves to the previous step; a no-op on the first step
func (c *Collector) RetreatStep() {
	if c.index <= 0 {
		return
	}
	c.index--
	c.emitStepChange()
}

// Reset returns to the first step, keeping the answers
func (c *Collector) Reset() {
	c.index = 0
	c.emitStepChange()
}

func (c *Collector) emitStepChange() {
	c.pub.Publish(events.StepChange{
		Stage:    c.cfg.Stage,
		Step:     c.CurrentStep(),
		Dialogue: c.CurrentStepDialogue(),
		Options:  c.CurrentStepOptions(),
		Progress: c.Progress(),
	})
}

// IsStageComplete reports whether every step's validator passes,
// independent of the current step
func (c *Collector) IsStageComplete() bool {
	ctx := c.context()
	for _, step := range c.cfg.Steps {
		if !step.Validate(c.answers, ctx) {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the answers tagged with the stage and the
// time of the last change
func (c *Collector) Snapshot() domain.StageAnswer {
	return c.answers.Clone()
}

// Load replaces the answers, as when restoring a saved session
func (c *Collector) Load(a domain.StageAnswer) {
	a = a.Clone()
	a.Stage = c.cfg.Stage
	c.answers = a
}
