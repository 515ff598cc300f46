// Package parser expands raw stage answers into a normalized requirement:
// human labels, derived design specs, a feature complexity score with time
// estimates and phases, tech recommendations and advisory warnings.
//
// Parsing never fails. Unknown tokens pass through as their own labels and
// missing stages leave their section nil.
package parser

import (
	"math"
	"strconv"
	"time"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// Version is stamped into every parsed requirement
const Version = "1.0.0"

// Option configures a Parser
type Option func(*Parser)

// WithHeuristics overrides the complexity constants
func WithHeuristics(h Heuristics) Option {
	return func(p *Parser) {
		p.heuristics = h
	}
}

// WithClock overrides the clock used for Metadata.ParsedAt
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// Parser turns collected answers into a Requirement
type Parser struct {
	catalog    *catalog.Catalog
	heuristics Heuristics
	now        func() time.Time
}

// New creates a parser that looks labels up in cat
func New(cat *catalog.Catalog, opts ...Option) *Parser {
	p := &Parser{
		catalog:    cat,
		heuristics: DefaultHeuristics(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Heuristics returns the complexity constants in use
func (p *Parser) Heuristics() Heuristics { return p.heuristics }

// Parse normalizes the collected answers
func (p *Parser) Parse(data map[domain.StageName]domain.StageAnswer) *Requirement {
	r := &Requirement{}

	if a, ok := data[domain.StageProjectVision]; ok {
		r.ProjectVision = p.parseProjectVision(a)
	}
	if a, ok := data[domain.StageDesignStyle]; ok {
		r.DesignStyle = p.parseDesignStyle(a)
	}
	if a, ok := data[domain.StageFeatureRequirements]; ok {
		r.Features = p.parseFeatures(a)
	}
	if a, ok := data[domain.StageTechPreferences]; ok {
		r.TechStack = p.parseTechStack(a)
	}
	if a, ok := data[domain.StageDeploymentSpecs]; ok {
		r.Deployment = p.parseDeployment(a)
	}

	r.Metadata = p.metadata(data)
	r.Warnings = Check(r)
	return r
}

func (p *Parser) label(step domain.StepName, token string) string {
	return p.catalog.LabelOr(string(step), token)
}

func (p *Parser) parseProjectVision(a domain.StageAnswer) *ProjectVision {
	v := &ProjectVision{
		Type:                a.Value(domain.FieldProjectType),
		TargetAudience:      a.Value(domain.FieldTargetAudience),
		CorePurpose:         a.Value(domain.FieldCorePurpose),
		ReferenceSites:      nonNil(a.List(domain.FieldReferenceSites)),
		InspirationKeywords: nonNil(a.List(domain.FieldInspirationKeywords)),
		BaseComplexity:      ComplexityMedium,
		Timestamp:           a.Timestamp,
	}
	v.TypeName = p.label(domain.StepProjectType, v.Type)
	v.AudienceName = p.label(domain.StepTargetAudience, v.TargetAudience)
	v.PurposeName = p.label(domain.StepPurpose, v.CorePurpose)

	if profile, ok := projectTypes[v.Type]; ok {
		v.SuggestedTech = append([]string(nil), profile.tech...)
		v.SuggestedFeatures = append([]string(nil), profile.features...)
		v.BaseComplexity = profile.complexity
	}
	v.SuggestedTech = nonNil(v.SuggestedTech)
	v.SuggestedFeatures = nonNil(v.SuggestedFeatures)
	return v
}

func (p *Parser) parseDesignStyle(a domain.StageAnswer) *DesignStyle {
	d := &DesignStyle{
		ColorScheme:    a.Value(domain.FieldColorScheme),
		LayoutStyle:    a.Value(domain.FieldLayoutStyle),
		VisualStyle:    a.Value(domain.FieldVisualStyle),
		AnimationLevel: a.Value(domain.FieldAnimationLevel),
		MobilePriority: a.Value(domain.FieldMobilePriority),
		Timestamp:      a.Timestamp,
	}
	d.ColorSchemeName = p.label(domain.StepColorScheme, d.ColorScheme)
	d.LayoutName = p.label(domain.StepLayoutStyle, d.LayoutStyle)
	d.VisualStyleName = p.label(domain.StepVisualStyle, d.VisualStyle)
	d.AnimationName = p.label(domain.StepAnimationLevel, d.AnimationLevel)
	d.MobilePriorityName = p.label(domain.StepMobilePriority, d.MobilePriority)

	d.ColorPalette = append([]string(nil), lookup(colorPalettes, d.ColorScheme, defaultColorScheme)...)
	d.LayoutSpecs = lookup(layoutSpecs, d.LayoutStyle, defaultLayout)
	d.StyleGuide = lookup(styleGuides, d.VisualStyle, defaultVisualStyle)
	d.AnimationSpecs = lookup(animationSpecs, d.AnimationLevel, defaultAnimation)
	d.ResponsiveStrategy = lookup(responsiveStrategies, d.MobilePriority, defaultMobilePriority)
	return d
}

func (p *Parser) parseFeatures(a domain.StageAnswer) *Features {
	f := &Features{
		ContentTypes:        nonNil(a.List(domain.FieldContentTypes)),
		InteractionFeatures: nonNil(a.List(domain.FieldInteractionFeatures)),
		Integrations:        nonNil(a.List(domain.FieldIntegrations)),
		AdminFeatures:       nonNil(a.List(domain.FieldAdminFeatures)),
		Priorities:          a.Map(domain.FieldPriorities),
		Timestamp:           a.Timestamp,
	}
	if f.Priorities == nil {
		f.Priorities = map[string]string{}
	}

	for _, c := range domain.FeatureCategories() {
		for _, item := range a.Lists[c.Field] {
			level := f.Priorities[item]
			feature := Feature{
				Token:    item,
				Name:     p.label(c.Step, item),
				Category: c.Field,
				Priority: level,
			}
			if level != "" {
				feature.PriorityName = p.catalog.LabelOr(domain.GroupPriorityLevel, level)
			}
			f.Items = append(f.Items, feature)

			if need, ok := technicalNeeds[item]; ok {
				f.TechnicalRequirements = append(f.TechnicalRequirements, need)
			}
			if backendFeatures[item] {
				f.NeedsBackend = true
			}
		}
	}
	f.Items = nonNilFeatures(f.Items)
	f.TechnicalRequirements = nonNil(f.TechnicalRequirements)

	f.ComplexityScore = p.heuristics.Score(a)
	f.TotalComplexity = p.heuristics.Classify(f.ComplexityScore)
	f.EstimatedTime = p.heuristics.Estimate(f.TotalComplexity)
	f.DevelopmentPhases = DeriveDevelopmentPhases(domain.SelectedFeatures(a), f.Priorities)
	if f.DevelopmentPhases == nil {
		f.DevelopmentPhases = []Phase{}
	}
	for i := range f.DevelopmentPhases {
		f.DevelopmentPhases[i].LevelName = p.catalog.LabelOr(domain.GroupPriorityLevel, f.DevelopmentPhases[i].Level)
	}
	return f
}

func (p *Parser) parseTechStack(a domain.StageAnswer) *TechStack {
	t := &TechStack{
		ContentManagement:     a.Value(domain.FieldContentManagement),
		DeploymentMaintenance: a.Value(domain.FieldDeploymentMaintenance),
		PerformanceBudget:     a.Value(domain.FieldPerformanceBudget),
		ScalabilitySecurity:   a.Value(domain.FieldScalabilitySecurity),
		HostingPreference:     a.Value(domain.FieldHostingPreference),
		Timestamp:             a.Timestamp,
	}
	t.ContentManagementName = p.label(domain.StepContentManagement, t.ContentManagement)
	t.DeploymentMaintenanceName = p.label(domain.StepDeploymentMaintenance, t.DeploymentMaintenance)
	t.PerformanceBudgetName = p.label(domain.StepPerformanceBudget, t.PerformanceBudget)
	t.ScalabilitySecurityName = p.label(domain.StepScalabilitySecurity, t.ScalabilitySecurity)
	t.HostingPreferenceName = p.label(domain.StepHostingPreference, t.HostingPreference)

	t.CMSRecommendation = nonNil(append([]string(nil), cmsOptions[t.ContentManagement]...))
	t.HostingRecommendation = nonNil(append([]string(nil), deploymentPlatforms[t.DeploymentMaintenance]...))
	t.PerformanceSpecs = lookup(performanceSpecs, t.PerformanceBudget, defaultPerformance)

	analyzeTech(t)
	return t
}

func (p *Parser) parseDeployment(a domain.StageAnswer) *Deployment {
	d := &Deployment{
		PriorityOrder: nonNil(a.List(domain.FieldPriorityOrder)),
		Timeline:      a.Value(domain.FieldTimeline),
		Budget:        a.Value(domain.FieldBudget),
		Notes:         a.Map(domain.FieldNotes),
		Timestamp:     a.Timestamp,
	}
	d.PriorityNames = make([]string, len(d.PriorityOrder))
	for i, item := range d.PriorityOrder {
		d.PriorityNames[i] = p.catalog.FeatureLabel(item)
	}

	d.TimelineName = p.catalog.LabelOr(domain.GroupTimeline, d.Timeline)
	d.TimelineSpecs = timelineSpecs[d.Timeline]
	if opt, ok := p.catalog.Option(domain.StageDeploymentSpecs, domain.StepTimelineBudget, domain.GroupTimeline+"="+d.Timeline); ok {
		d.TimelineSpecs.Duration = opt.Description
		if w, err := strconv.ParseFloat(opt.Metadata["weeks"], 64); err == nil {
			d.TimelineSpecs.Weeks = w
		}
	}

	d.BudgetName = p.catalog.LabelOr(domain.GroupBudget, d.Budget)
	d.BudgetSpecs = budgetSpecs[d.Budget]
	if opt, ok := p.catalog.Option(domain.StageDeploymentSpecs, domain.StepTimelineBudget, domain.GroupBudget+"="+d.Budget); ok {
		d.BudgetSpecs.Range = opt.Metadata["range"]
	}

	for _, key := range []string{domain.NoteAdditionalFeatures, domain.NoteSpecialConsiderations, domain.NoteSuccessCriteria} {
		if text := d.Notes[key]; text != "" {
			d.AdditionalRequirements = append(d.AdditionalRequirements, p.label(domain.StepFinalRequirements, key)+"："+text)
		}
	}
	d.AdditionalRequirements = nonNil(d.AdditionalRequirements)
	d.ProjectPlan = planPhases(d.TimelineSpecs.Weeks)
	return d
}

func (p *Parser) metadata(data map[domain.StageName]domain.StageAnswer) Metadata {
	var issues []string
	if _, ok := data[domain.StageProjectVision]; !ok {
		issues = append(issues, "缺少專案願景資料")
	}
	if _, ok := data[domain.StageDesignStyle]; !ok {
		issues = append(issues, "缺少設計風格資料")
	}

	score := 100 - 20*len(issues)
	if score < 0 {
		score = 0
	}

	return Metadata{
		ParsingVersion: Version,
		ParsedAt:       p.now().UTC(),
		TotalStages:    len(data),
		CompletionRate: int(math.Round(float64(len(data)) / float64(domain.StageCount) * 100)),
		DataIntegrity: Integrity{
			IsValid: len(issues) == 0,
			Issues:  nonNil(issues),
			Score:   score,
		},
	}
}

func lookup[T any](table map[string]T, key, fallback string) T {
	if v, ok := table[key]; ok {
		return v
	}
	return table[fallback]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilFeatures(s []Feature) []Feature {
	if s == nil {
		return []Feature{}
	}
	return s
}
