package generator

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/parser"
)

var funcMap = template.FuncMap{
	"def":     def,
	"join":    joinOr,
	"bullets": bullets,
	"numbered": func(items []string, fallback string) string {
		if len(items) == 0 {
			return fallback
		}
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, item)
		}
		return strings.Join(lines, "\n")
	},
	"indent": func(s, prefix string) string {
		return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
	},
	"yesno": func(b bool, yes, no string) string {
		if b {
			return yes
		}
		return no
	},
	"add": func(a, b int) int { return a + b },
	"mul": func(a, b int) int { return a * b },
}

func def(v any) string {
	if v == nil {
		return Undefined
	}
	s := fmt.Sprint(v)
	if s == "" {
		return Undefined
	}
	return s
}

func orUndefined(s string) string {
	if s == "" {
		return Undefined
	}
	return s
}

func joinOr(items []string, sep, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}

func bullets(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return "- " + strings.Join(items, "\n- ")
}

// view wraps a requirement with the derived values the templates need
type view struct {
	R          *parser.Requirement
	Vision     *parser.ProjectVision
	Design     *parser.DesignStyle
	Features   *parser.Features
	Tech       *parser.TechStack
	Deployment *parser.Deployment
	Version    string

	names map[string]string
}

func newView(r *parser.Requirement) *view {
	if r == nil {
		r = &parser.Requirement{}
	}
	v := &view{
		R:          r,
		Vision:     r.ProjectVision,
		Design:     r.DesignStyle,
		Features:   r.Features,
		Tech:       r.TechStack,
		Deployment: r.Deployment,
		Version:    Version,
		names:      make(map[string]string),
	}
	if r.Features != nil {
		for _, item := range r.Features.Items {
			v.names[item.Token] = item.Name
		}
	}
	return v
}

func (v *view) GeneratedAt() string {
	return formatTime(v.R.Metadata.ParsedAt, "2006-01-02 15:04 MST")
}

func (v *view) GeneratedAtRFC3339() string {
	return formatTime(v.R.Metadata.ParsedAt, time.RFC3339)
}

func (v *view) TypeName() string {
	if v.Vision == nil {
		return Undefined
	}
	return orUndefined(v.Vision.TypeName)
}

func (v *view) AudienceName() string {
	if v.Vision == nil {
		return Undefined
	}
	return orUndefined(v.Vision.AudienceName)
}

func (v *view) PurposeName() string {
	if v.Vision == nil {
		return Undefined
	}
	return orUndefined(v.Vision.PurposeName)
}

func (v *view) ProjectName() string {
	return v.TypeName() + " - " + v.PurposeName()
}

// SiteName names the project in prose, falling back to a generic noun
func (v *view) SiteName() string {
	if v.Vision == nil || v.Vision.TypeName == "" {
		return "網站"
	}
	return v.Vision.TypeName
}

func (v *view) Complexity() string {
	return orUndefined(string(v.R.Complexity()))
}

func (v *view) Description() string {
	if v.Vision == nil {
		return Undefined
	}
	visual := Undefined
	if v.Design != nil {
		visual = orUndefined(v.Design.VisualStyleName)
	}
	return fmt.Sprintf("此專案旨在為%s建立一個%s，主要目的是%s。專案將採用%s設計風格，並整合%s複雜度的功能需求。",
		v.AudienceName(), v.TypeName(), v.PurposeName(), visual, v.Complexity())
}

// Names maps feature tokens to their labels
func (v *view) Names(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if name, ok := v.names[t]; ok {
			out[i] = name
		} else {
			out[i] = t
		}
	}
	return out
}

func (v *view) Phases() []parser.Phase {
	if v.Features == nil || v.Features.DevelopmentPhases == nil {
		return []parser.Phase{}
	}
	return v.Features.DevelopmentPhases
}

func (v *view) Warnings() []string {
	if v.R.Warnings == nil {
		return []string{}
	}
	return v.R.Warnings
}

func (v *view) Notes() []string {
	if v.Deployment == nil {
		return nil
	}
	return v.Deployment.AdditionalRequirements
}

func (v *view) Recommendations() parser.TechRecommendations {
	if v.Tech == nil {
		return parser.TechRecommendations{}
	}
	return v.Tech.Recommendations
}

func (v *view) Hosting() []string {
	if v.Tech == nil || v.Tech.HostingRecommendation == nil {
		return []string{}
	}
	return v.Tech.HostingRecommendation
}

func (v *view) CMS() []string {
	if v.Tech == nil || v.Tech.CMSRecommendation == nil {
		return []string{}
	}
	return v.Tech.CMSRecommendation
}

func (v *view) TimelineDuration() string {
	if v.Deployment == nil {
		return Undefined
	}
	return orUndefined(v.Deployment.TimelineSpecs.Duration)
}

func (v *view) BudgetRange() string {
	if v.Deployment == nil {
		return Undefined
	}
	return orUndefined(v.Deployment.BudgetSpecs.Range)
}

func (v *view) hasFeature(token string) bool {
	if v.Features == nil {
		return false
	}
	_, ok := v.names[token]
	return ok
}

func (v *view) count(list func(*parser.Features) []string) int {
	if v.Features == nil {
		return 0
	}
	return len(list(v.Features))
}

func (v *view) HasContent() bool {
	return v.count(func(f *parser.Features) []string { return f.ContentTypes }) > 0
}

func (v *view) HasInteractions() bool {
	return v.count(func(f *parser.Features) []string { return f.InteractionFeatures }) > 0
}

func (v *view) HasIntegrations() bool {
	return v.count(func(f *parser.Features) []string { return f.Integrations }) > 0
}

func (v *view) HasAdmin() bool {
	return v.count(func(f *parser.Features) []string { return f.AdminFeatures }) > 0
}

func (v *view) HasBackend() bool {
	return v.Features != nil && v.Features.NeedsBackend
}

func (v *view) HasUserSystem() bool {
	return v.hasFeature("user_management") || v.hasFeature("user_profiles") || v.hasFeature("social_login")
}

func (v *view) HasPayment() bool {
	return v.hasFeature("payment_system")
}

func (v *view) NeedsDatabase() bool {
	return v.HasBackend() || v.HasAdmin()
}

func (v *view) NeedsAPI() bool {
	return v.HasIntegrations() || v.HasInteractions()
}

func (v *view) IsVeryComplex() bool {
	return v.R.Complexity() == parser.ComplexityVeryComplex
}

func (v *view) IsSimple() bool {
	return v.R.Complexity() == parser.ComplexitySimple
}

func (v *view) techValue(get func(*parser.TechStack) string) string {
	if v.Tech == nil {
		return ""
	}
	return get(v.Tech)
}

func (v *view) UltraFast() bool {
	return v.techValue(func(t *parser.TechStack) string { return t.PerformanceBudget }) == "ultra_fast"
}

func (v *view) AutoDeploy() bool {
	return v.techValue(func(t *parser.TechStack) string { return t.DeploymentMaintenance }) == "auto_update"
}

var architecturePatterns = map[parser.Complexity]string{
	parser.ComplexitySimple:      "Static Site",
	parser.ComplexityMedium:      "MVC Architecture",
	parser.ComplexityComplex:     "Microservices",
	parser.ComplexityVeryComplex: "Distributed Architecture",
}

var codeStyles = map[parser.Complexity]string{
	parser.ComplexitySimple:      "Clean Code",
	parser.ComplexityMedium:      "Airbnb",
	parser.ComplexityComplex:     "Google",
	parser.ComplexityVeryComplex: "Enterprise",
}

var technicalRisks = map[parser.Complexity]string{
	parser.ComplexitySimple:      "技術實作相對簡單，風險較低",
	parser.ComplexityMedium:      "整合複雜度中等，需注意相容性",
	parser.ComplexityComplex:     "技術挑戰較高，需要經驗豐富的開發者",
	parser.ComplexityVeryComplex: "技術風險高，建議分階段開發並充分測試",
}

func (v *view) ArchitecturePattern() string {
	if p, ok := architecturePatterns[v.R.Complexity()]; ok {
		return p
	}
	return "Standard Architecture"
}

func (v *view) CodeStyle() string {
	if s, ok := codeStyles[v.R.Complexity()]; ok {
		return s
	}
	return "Standard"
}

func (v *view) DataFlowPattern() string {
	switch {
	case v.HasBackend() && v.HasIntegrations():
		return "Full Stack Data Flow"
	case v.HasBackend():
		return "Database-driven"
	case v.HasIntegrations():
		return "API-driven"
	default:
		return "Static Content"
	}
}

func (v *view) MainTechnology() string {
	switch {
	case v.techValue(func(t *parser.TechStack) string { return t.ContentManagement }) == "code_based":
		return "Frontend"
	case v.IsVeryComplex():
		return "Full Stack"
	default:
		return "Web"
	}
}

func (v *view) BrowserSupport() string {
	if v.UltraFast() {
		return "Modern browsers only"
	}
	return "Chrome, Firefox, Safari, Edge"
}

func (v *view) NeedsDesigner() bool {
	return (v.Design != nil && v.Design.VisualStyle == "creative") || v.IsVeryComplex()
}

func (v *view) NeedsProjectManager() bool {
	return len(v.Phases()) > 2 || v.IsVeryComplex()
}

func (v *view) TechnicalRisk() string {
	if r, ok := technicalRisks[v.R.Complexity()]; ok {
		return r
	}
	return technicalRisks[parser.ComplexityMedium]
}

func (v *view) timeline() string {
	if v.Deployment == nil {
		return ""
	}
	return v.Deployment.Timeline
}

func (v *view) budget() string {
	if v.Deployment == nil {
		return ""
	}
	return v.Deployment.Budget
}

func (v *view) TimelineRisk() string {
	urgent := v.timeline() == "urgent"
	switch {
	case urgent && v.IsVeryComplex():
		return "時程過於緊迫，建議調整功能範圍或延長時程"
	case urgent:
		return "時程緊迫，需要專注核心功能"
	case v.IsVeryComplex():
		return "複雜專案需要充分的開發和測試時間"
	default:
		return "時程安排合理，風險可控"
	}
}

func (v *view) BudgetRisk() string {
	minimal := v.budget() == "minimal"
	switch {
	case minimal && v.IsVeryComplex():
		return "預算與功能需求不匹配，建議調整功能範圍"
	case minimal:
		return "預算有限，需要精簡功能需求"
	case v.IsVeryComplex() && v.budget() != "enterprise":
		return "複雜專案可能需要更多預算支援"
	default:
		return "預算規劃合理，風險較低"
	}
}

// FormatFor returns the document format for a generated filename
func FormatFor(filename string) domain.DocumentFormat {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return domain.FormatJSON
	case strings.HasSuffix(filename, ".md"):
		return domain.FormatMarkdown
	default:
		return domain.FormatText
	}
}
