package parser

import "time"

// Requirement is the normalized, label-expanded view of a session's answers.
// Sections are nil when their stage has no data.
type Requirement struct {
	ProjectVision *ProjectVision `json:"projectVision,omitempty"`
	DesignStyle   *DesignStyle   `json:"designStyle,omitempty"`
	Features      *Features      `json:"features,omitempty"`
	TechStack     *TechStack     `json:"techStack,omitempty"`
	Deployment    *Deployment    `json:"deployment,omitempty"`
	Metadata      Metadata       `json:"metadata"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// Complexity returns the feature complexity tier, or "" without feature data
func (r *Requirement) Complexity() Complexity {
	if r == nil || r.Features == nil {
		return ""
	}
	return r.Features.TotalComplexity
}

type ProjectVision struct {
	Type                string     `json:"type"`
	TypeName            string     `json:"typeName"`
	TargetAudience      string     `json:"targetAudience"`
	AudienceName        string     `json:"audienceName"`
	CorePurpose         string     `json:"corePurpose"`
	PurposeName         string     `json:"purposeName"`
	ReferenceSites      []string   `json:"referenceSites"`
	InspirationKeywords []string   `json:"inspirationKeywords"`
	SuggestedTech       []string   `json:"suggestedTech"`
	SuggestedFeatures   []string   `json:"suggestedFeatures"`
	BaseComplexity      Complexity `json:"baseComplexity"`
	Timestamp           time.Time  `json:"timestamp"`
}

type LayoutSpec struct {
	MaxWidth    string   `json:"maxWidth"`
	Columns     string   `json:"columns"`
	Spacing     string   `json:"spacing"`
	Breakpoints []string `json:"breakpoints"`
}

type StyleGuide struct {
	Typography []string `json:"typography"`
	Spacing    string   `json:"spacing"`
	Borders    string   `json:"borders"`
	Shadows    string   `json:"shadows"`
}

type AnimationSpec struct {
	Transitions string `json:"transitions"`
	Hover       string `json:"hover"`
	Loading     string `json:"loading"`
}

type ResponsiveStrategy struct {
	Approach    string   `json:"approach"`
	Breakpoints []string `json:"breakpoints"`
	Priority    string   `json:"priority"`
}

type DesignStyle struct {
	ColorScheme        string             `json:"colorScheme"`
	ColorSchemeName    string             `json:"colorSchemeName"`
	ColorPalette       []string           `json:"colorPalette"`
	LayoutStyle        string             `json:"layoutStyle"`
	LayoutName         string             `json:"layoutName"`
	LayoutSpecs        LayoutSpec         `json:"layoutSpecs"`
	VisualStyle        string             `json:"visualStyle"`
	VisualStyleName    string             `json:"visualStyleName"`
	StyleGuide         StyleGuide         `json:"styleGuide"`
	AnimationLevel     string             `json:"animationLevel"`
	AnimationName      string             `json:"animationName"`
	AnimationSpecs     AnimationSpec      `json:"animationSpecs"`
	MobilePriority     string             `json:"mobilePriority"`
	MobilePriorityName string             `json:"mobilePriorityName"`
	ResponsiveStrategy ResponsiveStrategy `json:"responsiveStrategy"`
	Timestamp          time.Time          `json:"timestamp"`
}

// Feature is one selected feature with its labels
type Feature struct {
	Token        string `json:"token"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Priority     string `json:"priority,omitempty"`
	PriorityName string `json:"priorityName,omitempty"`
}

// Estimate is a development time range
type Estimate struct {
	Minimum   int    `json:"minimum"`
	Maximum   int    `json:"maximum"`
	Realistic int    `json:"realistic"`
	Unit      string `json:"unit"`
}

// Phase is one priority bucket of the development plan
type Phase struct {
	Number    int      `json:"phase"`
	Level     string   `json:"level"`
	LevelName string   `json:"levelName,omitempty"`
	Name      string   `json:"name"`
	Features  []string `json:"features"`
	Duration  string   `json:"estimatedTime"`
}

type Features struct {
	ContentTypes          []string          `json:"contentTypes"`
	InteractionFeatures   []string          `json:"interactionFeatures"`
	Integrations          []string          `json:"integrations"`
	AdminFeatures         []string          `json:"adminFeatures"`
	Priorities            map[string]string `json:"priorities"`
	Items                 []Feature         `json:"items"`
	ComplexityScore       int               `json:"complexityScore"`
	TotalComplexity       Complexity        `json:"totalComplexity"`
	EstimatedTime         Estimate          `json:"estimatedTime"`
	DevelopmentPhases     []Phase           `json:"developmentPhases"`
	TechnicalRequirements []string          `json:"technicalRequirements"`
	NeedsBackend          bool              `json:"needsBackend"`
	Timestamp             time.Time         `json:"timestamp"`
}

type PerformanceSpec struct {
	LoadTime     string `json:"loadTime"`
	Optimization string `json:"optimization"`
	Caching      string `json:"caching"`
}

type TechRecommendations struct {
	Frontend   []string `json:"frontend"`
	Backend    []string `json:"backend"`
	Database   []string `json:"database"`
	Hosting    []string `json:"hosting"`
	Deployment []string `json:"deployment"`
}

type StackRecommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TechStack struct {
	ContentManagement         string              `json:"contentManagement"`
	ContentManagementName     string              `json:"contentManagementName"`
	DeploymentMaintenance     string              `json:"deploymentMaintenance"`
	DeploymentMaintenanceName string              `json:"deploymentMaintenanceName"`
	PerformanceBudget         string              `json:"performanceBudget"`
	PerformanceBudgetName     string              `json:"performanceBudgetName"`
	ScalabilitySecurity       string              `json:"scalabilitySecurity"`
	ScalabilitySecurityName   string              `json:"scalabilitySecurityName"`
	HostingPreference         string              `json:"hostingPreference"`
	HostingPreferenceName     string              `json:"hostingPreferenceName"`
	CMSRecommendation         []string            `json:"cmsRecommendation"`
	HostingRecommendation     []string            `json:"hostingRecommendation"`
	PerformanceSpecs          PerformanceSpec     `json:"performanceSpecs"`
	Recommendations           TechRecommendations `json:"techRecommendations"`
	RecommendedStack          StackRecommendation `json:"recommendedStack"`
	ImplementationComplexity  string              `json:"implementationComplexity"`
	CostLevel                 string              `json:"costLevel"`
	SetupWeeks                int                 `json:"setupWeeks"`
	Timestamp                 time.Time           `json:"timestamp"`
}

type TimelineSpec struct {
	Duration  string  `json:"duration"`
	Focus     string  `json:"focus"`
	Intensity string  `json:"intensity"`
	Weeks     float64 `json:"weeks"`
}

type BudgetSpec struct {
	Range    string `json:"range"`
	USD      string `json:"usd"`
	Scope    string `json:"scope"`
	Features string `json:"features"`
}

// PlanPhase is one slice of the delivery timeline
type PlanPhase struct {
	Name  string `json:"name"`
	Weeks int    `json:"weeks"`
}

type Deployment struct {
	PriorityOrder          []string          `json:"priorityOrder"`
	PriorityNames          []string          `json:"priorityNames"`
	Timeline               string            `json:"timeline"`
	TimelineName           string            `json:"timelineName"`
	TimelineSpecs          TimelineSpec      `json:"timelineSpecs"`
	Budget                 string            `json:"budget"`
	BudgetName             string            `json:"budgetName"`
	BudgetSpecs            BudgetSpec        `json:"budgetSpecs"`
	AdditionalRequirements []string          `json:"additionalRequirements"`
	Notes                  map[string]string `json:"notes,omitempty"`
	ProjectPlan            []PlanPhase       `json:"projectPlan"`
	Timestamp              time.Time         `json:"timestamp"`
}

type Integrity struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
	Score   int      `json:"score"`
}

type Metadata struct {
	ParsingVersion string    `json:"parsingVersion"`
	ParsedAt       time.Time `json:"parsedAt"`
	TotalStages    int       `json:"totalStages"`
	CompletionRate int       `json:"completionRate"`
	DataIntegrity  Integrity `json:"dataIntegrity"`
}
