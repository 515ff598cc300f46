package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/generator"
	"github.com/robertguss/vibe-academy-go/internal/parser"
	"github.com/robertguss/vibe-academy-go/internal/storage"
)

// Store keys
const (
	KeyStagePrefix     = "collector_data_"
	KeySessionState    = "session_state"
	KeyProjectComplete = "project_complete"
)

// StageKey returns the store key holding a stage's answers
func StageKey(stage domain.StageName) string {
	return KeyStagePrefix + string(stage)
}

type sessionRecord struct {
	SessionID          string    `json:"sessionId"`
	ActiveStageIndex   int       `json:"activeStageIndex"`
	FurthestStageIndex int       `json:"furthestStageIndex"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (o *Orchestrator) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

func (o *Orchestrator) setKey(key, value string) {
	if o.store == nil {
		return
	}
	ctx, cancel := o.storeContext()
	defer cancel()
	if err := o.store.Set(ctx, key, value); err != nil {
		log.Printf("orchestrator: failed to save %s: %v", key, err)
	}
}

func (o *Orchestrator) deleteKey(key string) {
	if o.store == nil {
		return
	}
	ctx, cancel := o.storeContext()
	defer cancel()
	if err := o.store.Delete(ctx, key); err != nil {
		log.Printf("orchestrator: failed to delete %s: %v", key, err)
	}
}

func (o *Orchestrator) saveStageLocked(stage domain.StageName) {
	data, err := json.Marshal(o.collected[stage])
	if err != nil {
		log.Printf("orchestrator: failed to encode %s: %v", stage, err)
		return
	}
	o.setKey(StageKey(stage), string(data))
}

func (o *Orchestrator) sessionRecordLocked() sessionRecord {
	return sessionRecord{
		SessionID:          o.sessionID,
		ActiveStageIndex:   o.active,
		FurthestStageIndex: o.furthest,
		UpdatedAt:          o.now().UTC(),
	}
}

func (o *Orchestrator) saveSessionLocked() {
	data, err := json.Marshal(o.sessionRecordLocked())
	if err != nil {
		log.Printf("orchestrator: failed to encode session: %v", err)
		return
	}
	o.setKey(KeySessionState, string(data))
}

// Persist writes every collected stage and the session pointer
func (o *Orchestrator) Persist(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.store == nil {
		return nil
	}

	var errs []error
	for stage, answer := range o.collected {
		data, err := json.Marshal(answer)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to encode %s: %w", stage, err))
			continue
		}
		if err := o.store.Set(ctx, StageKey(stage), string(data)); err != nil {
			errs = append(errs, fmt.Errorf("failed to save %s: %w", stage, err))
		}
	}

	data, err := json.Marshal(o.sessionRecordLocked())
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to encode session: %w", err))
	} else if err := o.store.Set(ctx, KeySessionState, string(data)); err != nil {
		errs = append(errs, fmt.Errorf("failed to save session: %w", err))
	}
	return errors.Join(errs...)
}

// Restore loads whatever the store holds. Each key is independent: a
// missing or unreadable entry is logged and skipped. It reports whether
// any stage answers were restored.
func (o *Orchestrator) Restore(ctx context.Context) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.store == nil {
		return false
	}

	restored := false
	for i, stage := range domain.AllStages() {
		raw, ok := o.get(ctx, StageKey(stage))
		if !ok {
			continue
		}
		var a domain.StageAnswer
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			log.Printf("orchestrator: dropping unreadable %s: %v", StageKey(stage), err)
			continue
		}
		a.Stage = stage
		o.collectors[i].Load(a)
		o.collected[stage] = o.collectors[i].Snapshot()
		restored = true
	}

	if raw, ok := o.get(ctx, KeySessionState); ok {
		var rec sessionRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			log.Printf("orchestrator: dropping unreadable %s: %v", KeySessionState, err)
		} else {
			if rec.SessionID != "" {
				o.sessionID = rec.SessionID
			}
			o.active = clamp(rec.ActiveStageIndex, 0, len(o.collectors)-1)
			o.furthest = clamp(rec.FurthestStageIndex, o.active, len(o.collectors)-1)
		}
	}

	if raw, ok := o.get(ctx, KeyProjectComplete); ok && raw == "true" {
		o.state = domain.SessionComplete
		r := o.parser.Parse(o.collected)
		o.result = &Result{Requirement: r, Documents: generator.GenerateAll(r)}
	}
	return restored
}

func (o *Orchestrator) get(ctx context.Context, key string) (string, bool) {
	raw, err := o.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("orchestrator: failed to load %s: %v", key, err)
		}
		return "", false
	}
	return raw, true
}

// Apply replaces the collected answers, as when applying a preset, and
// writes them through to the store
func (o *Orchestrator) Apply(data map[domain.StageName]domain.StageAnswer) {
	o.do(func() {
		for i, stage := range domain.AllStages() {
			a, ok := data[stage]
			if !ok {
				continue
			}
			o.collectors[i].Load(a)
			o.collected[stage] = o.collectors[i].Snapshot()
			o.saveStageLocked(stage)
		}
	})
}

// Reset discards the session, in memory and in the store, and starts a
// new one that has not been started yet
func (o *Orchestrator) Reset(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelTimerLocked()
	if err := o.buildCollectors(); err != nil {
		return err
	}
	o.collected = make(map[domain.StageName]domain.StageAnswer)
	o.sessionID = uuid.NewString()
	o.active = 0
	o.furthest = 0
	o.state = domain.SessionNotStarted
	o.result = nil
	o.warnings = nil
	o.pending = nil

	if o.store == nil {
		return nil
	}
	keys, err := o.store.Keys(ctx, KeyStagePrefix)
	if err != nil {
		return fmt.Errorf("failed to list saved stages: %w", err)
	}
	keys = append(keys, KeySessionState, KeyProjectComplete)
	for _, key := range keys {
		if err := o.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

// HasUnsavedProgress reports whether answers exist for a session that has
// not completed, which is when a UI offers to resume
func (o *Orchestrator) HasUnsavedProgress() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == domain.SessionComplete {
		return false
	}
	for _, a := range o.collected {
		if !a.IsEmpty() {
			return true
		}
	}
	return false
}

// CollectedData returns a copy of every stage's answers
func (o *Orchestrator) CollectedData() map[domain.StageName]domain.StageAnswer {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[domain.StageName]domain.StageAnswer, len(o.collected))
	for stage, a := range o.collected {
		out[stage] = a.Clone()
	}
	return out
}

// ActiveStageIndex returns the index of the active stage
func (o *Orchestrator) ActiveStageIndex() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// FurthestStageIndex returns the furthest stage reached
func (o *Orchestrator) FurthestStageIndex() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.furthest
}

// State returns the session lifecycle state
func (o *Orchestrator) State() domain.SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SessionID returns the id used to archive the session's documents
func (o *Orchestrator) SessionID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sessionID
}

// Result returns the parsed requirement and documents of a completed session
func (o *Orchestrator) Result() (*Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result, o.result != nil
}

// Requirement parses the answers collected so far
func (o *Orchestrator) Requirement() *parser.Requirement {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.parser.Parse(o.collected)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
