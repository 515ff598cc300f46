package domain

// Step names, grouped by stage
const (
	StepProjectType    StepName = "project_type"
	StepTargetAudience StepName = "target_audience"
	StepPurpose        StepName = "purpose"
	StepInspiration    StepName = "inspiration"

	StepColorScheme    StepName = "color_scheme"
	StepLayoutStyle    StepName = "layout_style"
	StepVisualStyle    StepName = "visual_style"
	StepAnimationLevel StepName = "animation_level"
	StepMobilePriority StepName = "mobile_priority"

	StepContentTypes        StepName = "content_types"
	StepInteractionFeatures StepName = "interaction_features"
	StepIntegrations        StepName = "integrations"
	StepAdminFeatures       StepName = "admin_features"
	StepPriorityAssessment  StepName = "priority_assessment"

	StepContentManagement     StepName = "content_management"
	StepDeploymentMaintenance StepName = "deployment_maintenance"
	StepPerformanceBudget     StepName = "performance_budget"
	StepScalabilitySecurity   StepName = "scalability_security"
	StepHostingPreference     StepName = "hosting_preference"

	StepSummaryReview        StepName = "summary_review"
	StepPriorityConfirmation StepName = "priority_confirmation"
	StepTimelineBudget       StepName = "timeline_budget"
	StepFinalRequirements    StepName = "final_requirements"
	StepProjectCompletion    StepName = "project_completion"
)

// Answer field names, grouped by stage
const (
	FieldProjectType         = "projectType"
	FieldTargetAudience      = "targetAudience"
	FieldCorePurpose         = "corePurpose"
	FieldReferenceSites      = "referenceSites"
	FieldInspirationKeywords = "inspirationKeywords"

	FieldColorScheme    = "colorScheme"
	FieldLayoutStyle    = "layoutStyle"
	FieldVisualStyle    = "visualStyle"
	FieldAnimationLevel = "animationLevel"
	FieldMobilePriority = "mobilePriority"

	FieldContentTypes        = "contentTypes"
	FieldInteractionFeatures = "interactionFeatures"
	FieldIntegrations        = "integrations"
	FieldAdminFeatures       = "adminFeatures"
	FieldPriorities          = "priorities"

	FieldContentManagement     = "contentManagement"
	FieldDeploymentMaintenance = "deploymentMaintenance"
	FieldPerformanceBudget     = "performanceBudget"
	FieldScalabilitySecurity   = "scalabilitySecurity"
	FieldHostingPreference     = "hostingPreference"

	FieldPriorityOrder = "priorityOrder"
	FieldTimeline      = "timeline"
	FieldBudget        = "budget"
	FieldNotes         = "notes"
)

// Keys used by free-text and keyed cards
const (
	InputReferenceSites       = "reference_sites"
	InputInspirationKeywords  = "inspiration_keywords"
	NoteAdditionalFeatures    = "additional_features"
	NoteSpecialConsiderations = "special_considerations"
	NoteSuccessCriteria       = "success_criteria"
	GroupPriorityLevel        = "priority_level"
	GroupTimeline             = "timeline"
	GroupBudget               = "budget"
)

// Priority levels in phase order
const (
	PriorityEssential  = "essential"
	PriorityImportant  = "important"
	PriorityNiceToHave = "nice_to_have"
	PriorityFuture     = "future"
)

// PriorityLevels returns the priority levels in phase order
func PriorityLevels() []string {
	return []string{PriorityEssential, PriorityImportant, PriorityNiceToHave, PriorityFuture}
}

// FeatureCategory pairs a feature list field with the step that fills it
type FeatureCategory struct {
	Field string
	Step  StepName
}

// FeatureCategories returns the multi-select feature categories in display order
func FeatureCategories() []FeatureCategory {
	return []FeatureCategory{
		{Field: FieldContentTypes, Step: StepContentTypes},
		{Field: FieldInteractionFeatures, Step: StepInteractionFeatures},
		{Field: FieldIntegrations, Step: StepIntegrations},
		{Field: FieldAdminFeatures, Step: StepAdminFeatures},
	}
}

// SelectedFeatures returns every selected feature token of a feature stage
// answer, ordered by category and then by selection order.
func SelectedFeatures(a StageAnswer) []string {
	var out []string
	for _, c := range FeatureCategories() {
		out = append(out, a.Lists[c.Field]...)
	}
	return out
}
