package parser

import (
	"math"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// Complexity is the derived effort tier of a project
type Complexity string

const (
	ComplexitySimple      Complexity = "simple"
	ComplexityMedium      Complexity = "medium"
	ComplexityComplex     Complexity = "complex"
	ComplexityVeryComplex Complexity = "very_complex"
)

// Heuristics holds the empirical scoring constants. Scores at or below
// SimpleMax are simple, at or below MediumMax medium, at or below
// ComplexMax complex, and very complex above that.
type Heuristics struct {
	Weights    map[string]int
	SimpleMax  int
	MediumMax  int
	ComplexMax int
	BaseWeeks  map[Complexity]int
}

// DefaultHeuristics returns the stock weights, thresholds and base weeks
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Weights: map[string]int{
			domain.FieldContentTypes:        1,
			domain.FieldInteractionFeatures: 2,
			domain.FieldIntegrations:        3,
			domain.FieldAdminFeatures:       2,
		},
		SimpleMax:  5,
		MediumMax:  10,
		ComplexMax: 20,
		BaseWeeks: map[Complexity]int{
			ComplexitySimple:      2,
			ComplexityMedium:      4,
			ComplexityComplex:     8,
			ComplexityVeryComplex: 16,
		},
	}
}

// Score returns the weighted count of selected feature items
func (h Heuristics) Score(a domain.StageAnswer) int {
	score := 0
	for _, c := range domain.FeatureCategories() {
		score += len(a.Lists[c.Field]) * h.Weights[c.Field]
	}
	return score
}

// Classify buckets a score into a complexity tier
func (h Heuristics) Classify(score int) Complexity {
	switch {
	case score <= h.SimpleMax:
		return ComplexitySimple
	case score <= h.MediumMax:
		return ComplexityMedium
	case score <= h.ComplexMax:
		return ComplexityComplex
	default:
		return ComplexityVeryComplex
	}
}

// Estimate returns the week range for a complexity tier; unknown tiers use medium
func (h Heuristics) Estimate(c Complexity) Estimate {
	base, ok := h.BaseWeeks[c]
	if !ok {
		base = h.BaseWeeks[ComplexityMedium]
	}
	return Estimate{
		Minimum:   base,
		Maximum:   base * 2,
		Realistic: int(math.Ceil(float64(base) * 1.5)),
		Unit:      "weeks",
	}
}

// DeriveDevelopmentPhases buckets features by priority into ordered phases.
// Empty buckets are skipped; features without a priority count as important.
func DeriveDevelopmentPhases(items []string, priorities map[string]string) []Phase {
	buckets := make(map[string][]string)
	for _, item := range items {
		level := priorities[item]
		if _, known := phaseDetails[level]; !known {
			level = domain.PriorityImportant
		}
		buckets[level] = append(buckets[level], item)
	}

	var phases []Phase
	for _, level := range domain.PriorityLevels() {
		members := buckets[level]
		if len(members) == 0 {
			continue
		}
		detail := phaseDetails[level]
		phases = append(phases, Phase{
			Number:   len(phases) + 1,
			Level:    level,
			Name:     detail.name,
			Features: members,
			Duration: detail.duration,
		})
	}
	return phases
}

// planPhases splits a timeline across the project plan phases
func planPhases(weeks float64) []PlanPhase {
	if weeks <= 0 {
		weeks = defaultPlanWeeks
	}
	out := make([]PlanPhase, len(planShares))
	for i, p := range planShares {
		out[i] = PlanPhase{Name: p.name, Weeks: int(math.Ceil(weeks * p.share))}
	}
	return out
}
