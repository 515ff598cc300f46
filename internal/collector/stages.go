package collector

import (
	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// InvalidURLMessage is shown when a reference site is not an http(s) URL
const InvalidURLMessage = "請輸入有效的網址"

// Configs returns the configuration of every stage in questionnaire order
func Configs() []StageConfig {
	return []StageConfig{
		ProjectVision(),
		DesignStyle(),
		FeatureRequirements(),
		TechPreferences(),
		DeploymentSpecs(),
	}
}

// ProjectVision asks what is being built, for whom and why
func ProjectVision() StageConfig {
	return StageConfig{
		Stage: domain.StageProjectVision,
		Steps: []StepDef{
			single(domain.StepProjectType, domain.FieldProjectType),
			single(domain.StepTargetAudience, domain.FieldTargetAudience),
			single(domain.StepPurpose, domain.FieldCorePurpose),
			{
				Name: domain.StepInspiration,
				Mode: domain.ModeText,
				Handler: TextEntry(
					map[string]string{
						domain.InputReferenceSites:      domain.FieldReferenceSites,
						domain.InputInspirationKeywords: domain.FieldInspirationKeywords,
					},
					map[string]func(string) error{
						domain.InputReferenceSites: CheckURL(InvalidURLMessage),
					},
				),
				Validate: Always(),
			},
		},
	}
}

// DesignStyle collects the look and feel
func DesignStyle() StageConfig {
	return StageConfig{
		Stage: domain.StageDesignStyle,
		Steps: []StepDef{
			single(domain.StepColorScheme, domain.FieldColorScheme),
			single(domain.StepLayoutStyle, domain.FieldLayoutStyle),
			single(domain.StepVisualStyle, domain.FieldVisualStyle),
			single(domain.StepAnimationLevel, domain.FieldAnimationLevel),
			single(domain.StepMobilePriority, domain.FieldMobilePriority),
		},
	}
}

// FeatureRequirements collects features and their priorities
func FeatureRequirements() StageConfig {
	return StageConfig{
		Stage: domain.StageFeatureRequirements,
		Steps: []StepDef{
			feature(domain.StepContentTypes, domain.FieldContentTypes, true),
			feature(domain.StepInteractionFeatures, domain.FieldInteractionFeatures, false),
			feature(domain.StepIntegrations, domain.FieldIntegrations, false),
			feature(domain.StepAdminFeatures, domain.FieldAdminFeatures, true),
			{
				Name:     domain.StepPriorityAssessment,
				Mode:     domain.ModeKeyed,
				Handler:  KeyedMap(domain.FieldPriorities),
				Validate: AllPrioritized(),
			},
		},
	}
}

// TechPreferences collects how the site is managed, deployed and hosted
func TechPreferences() StageConfig {
	return StageConfig{
		Stage: domain.StageTechPreferences,
		Steps: []StepDef{
			single(domain.StepContentManagement, domain.FieldContentManagement),
			single(domain.StepDeploymentMaintenance, domain.FieldDeploymentMaintenance),
			single(domain.StepPerformanceBudget, domain.FieldPerformanceBudget),
			single(domain.StepScalabilitySecurity, domain.FieldScalabilitySecurity),
			single(domain.StepHostingPreference, domain.FieldHostingPreference),
		},
	}
}

// DeploymentSpecs reviews everything and fixes priorities, timeline and budget
func DeploymentSpecs() StageConfig {
	return StageConfig{
		Stage: domain.StageDeploymentSpecs,
		Steps: []StepDef{
			{
				Name:     domain.StepSummaryReview,
				Mode:     domain.ModeDisplay,
				Handler:  Display(),
				Validate: Always(),
			},
			{
				Name:     domain.StepPriorityConfirmation,
				Mode:     domain.ModeMultiple,
				Handler:  Toggle(domain.FieldPriorityOrder),
				Validate: ConfirmedPriorities(),
			},
			{
				Name: domain.StepTimelineBudget,
				Mode: domain.ModeKeyed,
				Handler: KeyedScalar(map[string]string{
					domain.GroupTimeline: domain.FieldTimeline,
					domain.GroupBudget:   domain.FieldBudget,
				}),
				Validate: RequiredAll(domain.FieldTimeline, domain.FieldBudget),
			},
			{
				Name:     domain.StepFinalRequirements,
				Mode:     domain.ModeKeyed,
				Handler:  Note(domain.FieldNotes),
				Validate: Always(),
			},
			{
				Name:     domain.StepProjectCompletion,
				Mode:     domain.ModeDisplay,
				Handler:  Display(),
				Validate: Always(),
			},
		},
	}
}

func single(step domain.StepName, field string) StepDef {
	return StepDef{
		Name:     step,
		Mode:     domain.ModeSingle,
		Handler:  SetValue(field),
		Validate: Required(field),
	}
}

func feature(step domain.StepName, field string, required bool) StepDef {
	v := Always()
	if required {
		v = NonEmpty(field)
	}
	return StepDef{
		Name:     step,
		Mode:     domain.ModeMultiple,
		Handler:  ToggleFeature(field),
		Validate: v,
	}
}
