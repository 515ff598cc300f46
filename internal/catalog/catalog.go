// Package catalog serves the immutable option cards, guide dialogues and
// labels for every questionnaire step.
//
// The catalog is data: an embedded YAML document, optionally replaced by a
// user-supplied file. Steps whose cards depend on earlier answers (priority
// assessment, summary review, priority confirmation) are derived on demand
// from a Context and never mutate it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

// Context carries the answers a dynamic step may derive its cards from
type Context struct {
	Current domain.StageAnswer
	Prior   map[domain.StageName]domain.StageAnswer
}

type stepData struct {
	Name     domain.StepName `yaml:"name"`
	Error    string          `yaml:"error"`
	Dialogue domain.Dialogue `yaml:"dialogue"`
	Options  []domain.Option `yaml:"options"`
}

type stageData struct {
	Name  domain.StageName `yaml:"name"`
	Steps []stepData       `yaml:"steps"`
}

type fileData struct {
	Intro          domain.Dialogue `yaml:"intro"`
	Resume         domain.Dialogue `yaml:"resume"`
	Hint           string          `yaml:"hint"`
	PriorityLevels []domain.Option `yaml:"priority_levels"`
	PriorityPrompt string          `yaml:"priority_prompt"`
	Stages         []stageData     `yaml:"stages"`
}

// Catalog is the parsed, indexed option catalog. It is safe for concurrent reads.
type Catalog struct {
	data   fileData
	steps  map[domain.StageName]map[domain.StepName]*stepData
	labels map[string]map[string]string
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad parses the embedded catalog and panics if it is malformed
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile parses a catalog override file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML
func Parse(data []byte) (*Catalog, error) {
	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		data:   fd,
		steps:  make(map[domain.StageName]map[domain.StepName]*stepData),
		labels: make(map[string]map[string]string),
	}

	for i := range c.data.PriorityLevels {
		opt := &c.data.PriorityLevels[i]
		if opt.Value == "" {
			opt.Value = opt.ID
		}
		opt.Category = domain.GroupPriorityLevel
		c.addLabel(domain.GroupPriorityLevel, opt.Value, opt.Title)
	}

	for si := range c.data.Stages {
		stage := &c.data.Stages[si]
		if stage.Name.Index() < 0 {
			return nil, fmt.Errorf("unknown stage %q in catalog", stage.Name)
		}
		byName := make(map[domain.StepName]*stepData, len(stage.Steps))
		for pi := range stage.Steps {
			step := &stage.Steps[pi]
			if step.Name == "" {
				return nil, fmt.Errorf("stage %s: step %d has no name", stage.Name, pi)
			}
			for oi := range step.Options {
				opt := &step.Options[oi]
				if opt.ID == "" {
					return nil, fmt.Errorf("stage %s step %s: option %d has no id", stage.Name, step.Name, oi)
				}
				if opt.Value == "" {
					opt.Value = opt.ID
				}
				opt.Category = string(step.Name)
				if group, token, ok := domain.SplitKeyed(opt.Value); ok {
					c.addLabel(group, token, opt.Title)
				} else {
					c.addLabel(string(step.Name), opt.Value, opt.Title)
				}
			}
			byName[step.Name] = step
		}
		c.steps[stage.Name] = byName
	}

	return c, nil
}

func (c *Catalog) addLabel(group, token, title string) {
	m, ok := c.labels[group]
	if !ok {
		m = make(map[string]string)
		c.labels[group] = m
	}
	m[token] = title
}

func (c *Catalog) step(stage domain.StageName, step domain.StepName) *stepData {
	return c.steps[stage][step]
}

// HasStep reports whether the catalog defines a step for a stage
func (c *Catalog) HasStep(stage domain.StageName, step domain.StepName) bool {
	return c.step(stage, step) != nil
}

// Dialogue returns the guide dialogue for a step
func (c *Catalog) Dialogue(stage domain.StageName, step domain.StepName) (domain.Dialogue, bool) {
	s := c.step(stage, step)
	if s == nil {
		return domain.Dialogue{}, false
	}
	return s.Dialogue, true
}

// ErrorMessage returns the validation message for a step
func (c *Catalog) ErrorMessage(stage domain.StageName, step domain.StepName) string {
	if s := c.step(stage, step); s != nil && s.Error != "" {
		return s.Error
	}
	return c.data.Hint
}

// Intro returns the welcome dialogue
func (c *Catalog) Intro() domain.Dialogue { return c.data.Intro }

// Resume returns the dialogue offered when saved progress exists
func (c *Catalog) Resume() domain.Dialogue { return c.data.Resume }

// Hint returns the generic "finish this step" message
func (c *Catalog) Hint() string { return c.data.Hint }

// PriorityLevels returns the priority level cards in phase order
func (c *Catalog) PriorityLevels() []domain.Option {
	return cloneOptions(c.data.PriorityLevels)
}

// Label returns the human title of a token within a label group.
// Groups are step names, plus "priority_level", "timeline" and "budget".
func (c *Catalog) Label(group, token string) (string, bool) {
	title, ok := c.labels[group][token]
	return title, ok
}

// LabelOr returns the label for a token, or the token itself when unknown
func (c *Catalog) LabelOr(group, token string) string {
	if title, ok := c.Label(group, token); ok {
		return title
	}
	return token
}

// FeatureLabel looks a feature token up across all feature categories
func (c *Catalog) FeatureLabel(token string) string {
	for _, cat := range domain.FeatureCategories() {
		if title, ok := c.Label(string(cat.Step), token); ok {
			return title
		}
	}
	return token
}

// Option returns the static card of a step with the given value
func (c *Catalog) Option(stage domain.StageName, step domain.StepName, value string) (domain.Option, bool) {
	s := c.step(stage, step)
	if s == nil {
		return domain.Option{}, false
	}
	for _, opt := range s.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return domain.Option{}, false
}

// StepOptions returns the ordered cards for a step. Unknown stages or steps,
// and dynamic steps without the answers they depend on, yield an empty slice.
func (c *Catalog) StepOptions(stage domain.StageName, step domain.StepName, ctx Context) []domain.Option {
	s := c.step(stage, step)
	if s == nil {
		return []domain.Option{}
	}

	switch {
	case stage == domain.StageFeatureRequirements && step == domain.StepPriorityAssessment:
		return c.priorityAssessmentOptions(ctx.Current)
	case stage == domain.StageDeploymentSpecs && step == domain.StepSummaryReview:
		return c.summaryOptions(s, ctx.Prior)
	case stage == domain.StageDeploymentSpecs && step == domain.StepPriorityConfirmation:
		return c.priorityConfirmationOptions(ctx.Prior)
	}

	return cloneOptions(s.Options)
}

// priorityAssessmentOptions builds one card per selected feature and level
func (c *Catalog) priorityAssessmentOptions(current domain.StageAnswer) []domain.Option {
	out := []domain.Option{}
	for _, item := range domain.SelectedFeatures(current) {
		name := c.FeatureLabel(item)
		for _, level := range c.data.PriorityLevels {
			out = append(out, domain.Option{
				ID:          item + "_" + level.Value,
				Title:       name + " · " + level.Title,
				Description: c.data.PriorityPrompt,
				Icon:        level.Icon,
				Category:    string(domain.StepPriorityAssessment),
				Value:       item + "=" + level.Value,
				Metadata:    map[string]string{"item": item, "level": level.Value},
			})
		}
	}
	return out
}

func (c *Catalog) summaryOptions(s *stepData, prior map[domain.StageName]domain.StageAnswer) []domain.Option {
	out := []domain.Option{}
	for _, opt := range s.Options {
		stage := domain.StageName(opt.Metadata["stage"])
		answer, ok := prior[stage]
		if !ok {
			continue
		}
		card := cloneOption(opt)
		if summary := c.summarize(answer); summary != "" {
			card.Description = summary
		}
		out = append(out, card)
	}
	return out
}

func (c *Catalog) summarize(a domain.StageAnswer) string {
	var parts []string
	add := func(group domain.StepName, field string) {
		if v := a.Value(field); v != "" {
			parts = append(parts, c.LabelOr(string(group), v))
		}
	}

	switch a.Stage {
	case domain.StageProjectVision:
		add(domain.StepProjectType, domain.FieldProjectType)
		add(domain.StepTargetAudience, domain.FieldTargetAudience)
		add(domain.StepPurpose, domain.FieldCorePurpose)
	case domain.StageDesignStyle:
		add(domain.StepColorScheme, domain.FieldColorScheme)
		add(domain.StepLayoutStyle, domain.FieldLayoutStyle)
		add(domain.StepVisualStyle, domain.FieldVisualStyle)
	case domain.StageFeatureRequirements:
		if n := len(domain.SelectedFeatures(a)); n > 0 {
			parts = append(parts, fmt.Sprintf("已選擇 %d 項功能", n))
		}
	case domain.StageTechPreferences:
		add(domain.StepContentManagement, domain.FieldContentManagement)
		add(domain.StepHostingPreference, domain.FieldHostingPreference)
	}
	return strings.Join(parts, " · ")
}

// priorityConfirmationOptions lists every feature chosen in the feature stage
func (c *Catalog) priorityConfirmationOptions(prior map[domain.StageName]domain.StageAnswer) []domain.Option {
	out := []domain.Option{}
	features, ok := prior[domain.StageFeatureRequirements]
	if !ok {
		return out
	}
	for _, item := range domain.SelectedFeatures(features) {
		desc := c.data.PriorityPrompt
		if level := features.MapValue(domain.FieldPriorities, item); level != "" {
			desc = c.LabelOr(domain.GroupPriorityLevel, level)
		}
		out = append(out, domain.Option{
			ID:          item,
			Title:       c.FeatureLabel(item),
			Description: desc,
			Category:    string(domain.StepPriorityConfirmation),
			Value:       item,
		})
	}
	return out
}

func cloneOption(o domain.Option) domain.Option {
	if o.Metadata != nil {
		m := make(map[string]string, len(o.Metadata))
		for k, v := range o.Metadata {
			m[k] = v
		}
		o.Metadata = m
	}
	return o
}

func cloneOptions(in []domain.Option) []domain.Option {
	out := make([]domain.Option, len(in))
	for i, o := range in {
		out[i] = cloneOption(o)
	}
	return out
}
