package domain

// StageName identifies one of the five questionnaire stages
type StageName string

const (
	StageProjectVision       StageName = "project_vision"
	StageDesignStyle         StageName = "design_style"
	StageFeatureRequirements StageName = "feature_requirements"
	StageTechPreferences     StageName = "tech_preferences"
	StageDeploymentSpecs     StageName = "deployment_specs"
)

// AllStages returns all stages in questionnaire order
func AllStages() []StageName {
	return []StageName{
		StageProjectVision,
		StageDesignStyle,
		StageFeatureRequirements,
		StageTechPreferences,
		StageDeploymentSpecs,
	}
}

// StageCount is the number of stages in a session
const StageCount = 5

// DisplayName returns the label shown in the progress bar
func (s StageName) DisplayName() string {
	switch s {
	case StageProjectVision:
		return "專案願景"
	case StageDesignStyle:
		return "設計風格"
	case StageFeatureRequirements:
		return "功能需求"
	case StageTechPreferences:
		return "技術架構"
	case StageDeploymentSpecs:
		return "規格確認"
	default:
		return string(s)
	}
}

// Index returns the position of the stage, or -1 if unknown
func (s StageName) Index() int {
	for i, stage := range AllStages() {
		if stage == s {
			return i
		}
	}
	return -1
}

// StageAt returns the stage at index i and whether i was in range
func StageAt(i int) (StageName, bool) {
	stages := AllStages()
	if i < 0 || i >= len(stages) {
		return "", false
	}
	return stages[i], true
}

// StepName identifies a step within a stage
type StepName string

// SessionState is the orchestrator lifecycle state
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionInProgress SessionState = "in_progress"
	SessionComplete   SessionState = "complete"
)
