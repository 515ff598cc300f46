package collector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) last() events.Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func newCollector(t *testing.T, cfg StageConfig, opts ...Option) (*Collector, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := New(cfg, catalog.MustLoad(), rec, opts...)
	require.NoError(t, err)
	return c, rec
}

func TestNew_ValidatesDispatchTable(t *testing.T) {
	cat := catalog.MustLoad()

	tests := []struct {
		name string
		cfg  StageConfig
	}{
		{"no steps", StageConfig{Stage: domain.StageDesignStyle}},
		{"missing handler", StageConfig{Stage: domain.StageDesignStyle, Steps: []StepDef{
			{Name: domain.StepColorScheme, Mode: domain.ModeSingle, Validate: Always()},
		}}},
		{"missing validator", StageConfig{Stage: domain.StageDesignStyle, Steps: []StepDef{
			{Name: domain.StepColorScheme, Mode: domain.ModeSingle, Handler: SetValue("x")},
		}}},
		{"step without catalog entry", StageConfig{Stage: domain.StageDesignStyle, Steps: []StepDef{
			{Name: "font_choice", Mode: domain.ModeSingle, Handler: SetValue("x"), Validate: Always()},
		}}},
		{"duplicate step", StageConfig{Stage: domain.StageDesignStyle, Steps: []StepDef{
			single(domain.StepColorScheme, "a"),
			single(domain.StepColorScheme, "b"),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, cat, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := New(DesignStyle(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigs_AllBuild(t *testing.T) {
	cat := catalog.MustLoad()
	for _, cfg := range Configs() {
		c, err := New(cfg, cat, nil)
		require.NoError(t, err, "stage %s", cfg.Stage)
		assert.Equal(t, 0, c.CurrentStepIndex())
	}
	assert.Len(t, Configs(), domain.StageCount)
}

func TestCollector_IndexStaysInBounds(t *testing.T) {
	for _, cfg := range Configs() {
		t.Run(string(cfg.Stage), func(t *testing.T) {
			c, _ := newCollector(t, cfg)
			rng := rand.New(rand.NewSource(42))
			for i := 0; i < 200; i++ {
				if rng.Intn(2) == 0 {
					c.AdvanceStep()
				} else {
					c.RetreatStep()
				}
				assert.GreaterOrEqual(t, c.CurrentStepIndex(), 0)
				assert.Less(t, c.CurrentStepIndex(), c.StepCount())
				assert.Equal(t, c.StepNames()[c.CurrentStepIndex()], c.CurrentStep())
			}
		})
	}
}

func TestCollector_BoundaryMovesEmitNothing(t *testing.T) {
	c, rec := newCollector(t, DesignStyle())

	c.RetreatStep()
	assert.Empty(t, rec.events)

	for i := 0; i < 10; i++ {
		c.AdvanceStep()
	}
	assert.Equal(t, 4, c.CurrentStepIndex())
	assert.Len(t, rec.events, 4)
}

func TestCollector_MultiSelectToggle(t *testing.T) {
	c, rec := newCollector(t, FeatureRequirements())

	assert.True(t, c.RecordSelection(domain.StepContentTypes, "blog_posts", true))
	assert.Equal(t, []string{"blog_posts"}, c.Snapshot().List(domain.FieldContentTypes))

	update, ok := rec.last().(events.DataUpdate)
	require.True(t, ok)
	assert.Equal(t, domain.StageFeatureRequirements, update.Stage)

	assert.True(t, c.RecordSelection(domain.StepContentTypes, "blog_posts", true))
	assert.Empty(t, c.Snapshot().List(domain.FieldContentTypes))
}

func TestCollector_SingleSelectOverwrites(t *testing.T) {
	c, _ := newCollector(t, DesignStyle())

	c.RecordSelection(domain.StepColorScheme, "warm", false)
	c.RecordSelection(domain.StepColorScheme, "cool", false)
	assert.Equal(t, "cool", c.Snapshot().Value(domain.FieldColorScheme))

	// reselecting the same card is not a change
	assert.False(t, c.RecordSelection(domain.StepColorScheme, "cool", false))
}

func TestCollector_RejectsStraySelections(t *testing.T) {
	c, rec := newCollector(t, DesignStyle())

	tests := []struct {
		name  string
		step  domain.StepName
		value string
		multi bool
	}{
		{"not the current step", domain.StepLayoutStyle, "grid", false},
		{"multi flag on single step", domain.StepColorScheme, "warm", true},
		{"value not offered", domain.StepColorScheme, "ultraviolet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, c.RecordSelection(tt.step, tt.value, tt.multi))
			assert.True(t, c.Snapshot().IsEmpty())
		})
	}
	assert.Empty(t, rec.events)
}

func TestCollector_ValidateFailureChangesNothing(t *testing.T) {
	c, rec := newCollector(t, FeatureRequirements())

	assert.False(t, c.ValidateCurrentStep())
	assert.Equal(t, 0, c.CurrentStepIndex())
	assert.True(t, c.Snapshot().IsEmpty())

	verr, ok := rec.last().(events.ValidationError)
	require.True(t, ok)
	assert.Equal(t, domain.StepContentTypes, verr.Step)
	assert.Equal(t, "請至少選擇一種內容類型", verr.Message)
}

func TestCollector_ValidateSuccessAdvances(t *testing.T) {
	c, rec := newCollector(t, ProjectVision())

	c.RecordSelection(domain.StepProjectType, "portfolio", false)
	assert.True(t, c.ValidateCurrentStep())
	assert.Equal(t, 1, c.CurrentStepIndex())

	change, ok := rec.last().(events.StepChange)
	require.True(t, ok)
	assert.Equal(t, domain.StepTargetAudience, change.Step)
	assert.Equal(t, "確定目標受眾", change.Dialogue.Title)
	assert.Len(t, change.Options, 6)
	assert.Equal(t, 2, change.Progress.Current)
}

func TestCollector_TerminalStepEmitsCompletion(t *testing.T) {
	c, rec := newCollector(t, ProjectVision())

	c.RecordSelection(domain.StepProjectType, "portfolio", false)
	require.True(t, c.ValidateCurrentStep())
	c.RecordSelection(domain.StepTargetAudience, "creatives", false)
	require.True(t, c.ValidateCurrentStep())
	c.RecordSelection(domain.StepPurpose, "showcase_work", false)
	require.True(t, c.ValidateCurrentStep())

	// inspiration is optional
	require.True(t, c.ValidateCurrentStep())
	assert.Equal(t, 3, c.CurrentStepIndex())

	done, ok := rec.last().(events.CollectionComplete)
	require.True(t, ok)
	assert.Equal(t, domain.StageProjectVision, done.Stage)
	assert.Equal(t, domain.StageDesignStyle, done.NextStage)
	assert.Equal(t, "portfolio", done.Data.Value(domain.FieldProjectType))
}

func TestCollector_LastStageHasNoNextStage(t *testing.T) {
	c, rec := newCollector(t, DeploymentSpecs())

	require.True(t, c.ValidateCurrentStep()) // summary
	require.True(t, c.ValidateCurrentStep()) // nothing to confirm without feature data
	c.RecordSelection(domain.StepTimelineBudget, "timeline=standard", false)
	c.RecordSelection(domain.StepTimelineBudget, "budget=standard", false)
	require.True(t, c.ValidateCurrentStep())
	require.True(t, c.ValidateCurrentStep())
	require.True(t, c.ValidateCurrentStep())

	done, ok := rec.last().(events.CollectionComplete)
	require.True(t, ok)
	assert.Equal(t, domain.StageName(""), done.NextStage)
}

func TestCollector_InspirationEntries(t *testing.T) {
	c, rec := newCollector(t, ProjectVision())
	for i := 0; i < 3; i++ {
		c.AdvanceStep()
	}
	require.Equal(t, domain.StepInspiration, c.CurrentStep())

	assert.True(t, c.RecordSelection(domain.StepInspiration, "reference_sites=https://example.com", true))
	assert.True(t, c.RecordSelection(domain.StepInspiration, "inspiration_keywords= minimal ", true))
	assert.Equal(t, []string{"https://example.com"}, c.Snapshot().List(domain.FieldReferenceSites))
	assert.Equal(t, []string{"minimal"}, c.Snapshot().List(domain.FieldInspirationKeywords))

	assert.False(t, c.RecordSelection(domain.StepInspiration, "reference_sites=ftp://example.com", true))
	verr, ok := rec.last().(events.ValidationError)
	require.True(t, ok)
	assert.Equal(t, InvalidURLMessage, verr.Message)
	assert.Equal(t, []string{"https://example.com"}, c.Snapshot().List(domain.FieldReferenceSites))

	assert.False(t, c.RecordSelection(domain.StepInspiration, "colors=blue", true))
}

func TestCollector_PriorityAssessment(t *testing.T) {
	c, _ := newCollector(t, FeatureRequirements())

	c.RecordSelection(domain.StepContentTypes, "blog_posts", true)
	require.True(t, c.ValidateCurrentStep())
	require.True(t, c.ValidateCurrentStep())
	require.True(t, c.ValidateCurrentStep())
	c.RecordSelection(domain.StepAdminFeatures, "seo_tools", true)
	require.True(t, c.ValidateCurrentStep())
	require.Equal(t, domain.StepPriorityAssessment, c.CurrentStep())
	assert.Len(t, c.CurrentStepOptions(), 8)

	c.RecordSelection(domain.StepPriorityAssessment, "blog_posts=essential", false)
	assert.False(t, c.ValidateCurrentStep())
	assert.False(t, c.IsStageComplete())

	c.RecordSelection(domain.StepPriorityAssessment, "seo_tools=nice_to_have", false)
	assert.True(t, c.IsStageComplete())
	assert.True(t, c.ValidateCurrentStep())

	assert.False(t, c.RecordSelection(domain.StepPriorityAssessment, "video_content=essential", false))
}

func TestCollector_DeselectingFeatureDropsPriority(t *testing.T) {
	c, _ := newCollector(t, FeatureRequirements())
	a := domain.NewStageAnswer(domain.StageFeatureRequirements)
	a.Toggle(domain.FieldContentTypes, "blog_posts")
	a.SetMapValue(domain.FieldPriorities, "blog_posts", "essential")
	c.Load(a)

	c.RecordSelection(domain.StepContentTypes, "blog_posts", true)
	assert.Empty(t, c.Snapshot().Map(domain.FieldPriorities))
}

func TestCollector_IsStageCompleteIgnoresIndex(t *testing.T) {
	c, _ := newCollector(t, DesignStyle())
	a := domain.NewStageAnswer(domain.StageDesignStyle)
	for _, f := range []string{
		domain.FieldColorScheme, domain.FieldLayoutStyle, domain.FieldVisualStyle,
		domain.FieldAnimationLevel, domain.FieldMobilePriority,
	} {
		a.SetValue(f, "x")
	}
	c.Load(a)

	assert.Equal(t, 0, c.CurrentStepIndex())
	assert.True(t, c.IsStageComplete())
}

func TestCollector_PriorityConfirmationUsesPriorStage(t *testing.T) {
	features := domain.NewStageAnswer(domain.StageFeatureRequirements)
	features.Toggle(domain.FieldContentTypes, "blog_posts")
	prior := map[domain.StageName]domain.StageAnswer{domain.StageFeatureRequirements: features}

	c, rec := newCollector(t, DeploymentSpecs(), WithPrior(func() map[domain.StageName]domain.StageAnswer {
		return prior
	}))
	require.True(t, c.ValidateCurrentStep())

	opts := c.CurrentStepOptions()
	require.Len(t, opts, 1)
	assert.Equal(t, "部落格文章", opts[0].Title)

	assert.False(t, c.ValidateCurrentStep())
	_, ok := rec.last().(events.ValidationError)
	assert.True(t, ok)

	c.RecordSelection(domain.StepPriorityConfirmation, "blog_posts", true)
	assert.True(t, c.ValidateCurrentStep())
}

func TestCollector_NotesAndTimestamp(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c, _ := newCollector(t, DeploymentSpecs(), WithClock(func() time.Time { return at }))
	for i := 0; i < 3; i++ {
		c.AdvanceStep()
	}
	require.Equal(t, domain.StepFinalRequirements, c.CurrentStep())

	assert.True(t, c.RecordSelection(domain.StepFinalRequirements, "success_criteria=每月 1000 訪客", false))
	snap := c.Snapshot()
	assert.Equal(t, "每月 1000 訪客", snap.MapValue(domain.FieldNotes, "success_criteria"))
	assert.Equal(t, at, snap.Timestamp)
	assert.Equal(t, domain.StageDeploymentSpecs, snap.Stage)

	assert.True(t, c.RecordSelection(domain.StepFinalRequirements, "success_criteria=", false))
	assert.Empty(t, c.Snapshot().Map(domain.FieldNotes))
}

func TestCollector_DisplayStepIgnoresSelections(t *testing.T) {
	c, rec := newCollector(t, DeploymentSpecs())

	assert.False(t, c.RecordSelection(domain.StepSummaryReview, "project_overview", false))
	assert.Empty(t, rec.events)
}

func TestCollector_ResetKeepsAnswers(t *testing.T) {
	c, _ := newCollector(t, DesignStyle())
	c.RecordSelection(domain.StepColorScheme, "warm", false)
	c.ValidateCurrentStep()
	require.Equal(t, 1, c.CurrentStepIndex())

	c.Reset()
	assert.Equal(t, 0, c.CurrentStepIndex())
	assert.Equal(t, "warm", c.Snapshot().Value(domain.FieldColorScheme))
}
