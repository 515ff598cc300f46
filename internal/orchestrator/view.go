package orchestrator

import (
	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// StepView describes the active step for rendering
type StepView struct {
	StageIndex int                  `json:"stageIndex"`
	Stage      domain.StageName     `json:"stage"`
	StageName  string               `json:"stageName"`
	StepIndex  int                  `json:"stepIndex"`
	StepCount  int                  `json:"stepCount"`
	Step       domain.StepName      `json:"step"`
	Mode       domain.SelectionMode `json:"mode"`
	Dialogue   domain.Dialogue      `json:"dialogue"`
	Options    []domain.Option      `json:"options"`
	Progress   domain.Progress      `json:"progress"`
	Answers    domain.StageAnswer   `json:"answers"`
}

// Selected reports whether an option value is part of the current answers
func (v StepView) Selected(value string) bool {
	// keyed values land in a map entry, or in the scalar field named by the key
	if key, text, ok := domain.SplitKeyed(value); ok {
		if v.Answers.Value(key) == text {
			return true
		}
		for _, field := range v.Answers.Fields() {
			if v.Answers.MapValue(field, key) == text {
				return true
			}
		}
		return false
	}
	for _, field := range v.Answers.Fields() {
		if v.Answers.Value(field) == value || v.Answers.Contains(field, value) {
			return true
		}
	}
	return false
}

// StageStatus summarizes one stage for navigation
type StageStatus struct {
	Index     int              `json:"index"`
	Stage     domain.StageName `json:"stage"`
	Name      string           `json:"name"`
	Active    bool             `json:"active"`
	Complete  bool             `json:"complete"`
	Visitable bool             `json:"visitable"`
}

// ActiveStep returns a snapshot of the active stage's current step
func (o *Orchestrator) ActiveStep() StepView {
	o.mu.Lock()
	defer o.mu.Unlock()

	c := o.collectors[o.active]
	return StepView{
		StageIndex: o.active,
		Stage:      c.Stage(),
		StageName:  c.Stage().DisplayName(),
		StepIndex:  c.CurrentStepIndex(),
		StepCount:  c.StepCount(),
		Step:       c.CurrentStep(),
		Mode:       c.CurrentMode(),
		Dialogue:   c.CurrentStepDialogue(),
		Options:    c.CurrentStepOptions(),
		Progress:   c.Progress(),
		Answers:    c.Snapshot(),
	}
}

// Stages returns the navigation status of every stage
func (o *Orchestrator) Stages() []StageStatus {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]StageStatus, len(o.collectors))
	for i, c := range o.collectors {
		out[i] = StageStatus{
			Index:     i,
			Stage:     c.Stage(),
			Name:      c.Stage().DisplayName(),
			Active:    i == o.active,
			Complete:  c.IsStageComplete(),
			Visitable: i <= o.furthest,
		}
	}
	return out
}
