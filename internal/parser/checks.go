package parser

// Check returns advisory warnings for combinations of answers that usually
// need a second look. Warnings never block parsing or generation.
func Check(r *Requirement) []string {
	var projectType, visualStyle, timeline, budget, cms, performance, hosting string
	var complexity Complexity
	var interactions, integrations []string

	if r.ProjectVision != nil {
		projectType = r.ProjectVision.Type
	}
	if r.DesignStyle != nil {
		visualStyle = r.DesignStyle.VisualStyle
	}
	if r.Features != nil {
		complexity = r.Features.TotalComplexity
		interactions = r.Features.InteractionFeatures
		integrations = r.Features.Integrations
	}
	if r.TechStack != nil {
		cms = r.TechStack.ContentManagement
		performance = r.TechStack.PerformanceBudget
		hosting = r.TechStack.HostingPreference
	}
	if r.Deployment != nil {
		timeline = r.Deployment.Timeline
		budget = r.Deployment.Budget
	}

	var warnings []string
	warn := func(cond bool, msg string) {
		if cond {
			warnings = append(warnings, msg)
		}
	}

	warn(projectType == "landing_page" && len(interactions) > 3, "登陸頁面不建議使用過多互動功能")
	warn(projectType == "ecommerce" && r.Features != nil && !contains(integrations, "payment_system"), "電商網站建議包含付款功能")
	warn(projectType == "business" && visualStyle == "playful", "企業網站建議使用較為正式的設計風格")
	warn(complexity == ComplexitySimple && cms == "external_platform", "簡單專案可能不需要複雜的外部平台")
	warn(timeline == "urgent" && complexity == ComplexityVeryComplex, "複雜專案建議調整時程或簡化功能")
	warn(budget == "minimal" && complexity == ComplexityVeryComplex, "複雜專案建議調整預算或分階段開發")
	warn(timeline == "urgent" && budget == "minimal", "緊急時程通常需要較高的預算")
	warn(performance == "ultra_fast" && hosting == "free_hosting", "高效能需求通常需要付費服務")

	return warnings
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
