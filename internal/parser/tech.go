package parser

var hostingCostPoints = map[string]int{
	"free_hosting":     0,
	"shared_hosting":   1,
	"cloud_hosting":    2,
	"dedicated_server": 3,
}

// analyzeTech fills the derived recommendations of a tech stack section
func analyzeTech(t *TechStack) {
	t.ImplementationComplexity = implementationComplexity(t)
	t.CostLevel = costLevel(t)
	t.SetupWeeks = setupWeeks(t)
	t.RecommendedStack = recommendedStack(t)

	rec := TechRecommendations{
		Frontend:   []string{"HTML5", "CSS3", "JavaScript"},
		Backend:    []string{"WordPress", "Strapi", "Ghost"},
		Database:   []string{"MySQL", "PostgreSQL", "MongoDB"},
		Deployment: append([]string{}, t.HostingRecommendation...),
	}
	if t.PerformanceBudget == "ultra_fast" {
		rec.Frontend = []string{"React", "Vue.js", "Svelte"}
	}
	if t.ContentManagement == "code_based" {
		rec.Backend = []string{"Node.js", "Python", "Static Site"}
	}
	if t.ContentManagement == "external_platform" {
		rec.Database = []string{"Headless CMS", "API-based"}
	}
	switch t.CostLevel {
	case "free":
		rec.Hosting = []string{"GitHub Pages", "Netlify", "Vercel"}
	case "low":
		rec.Hosting = []string{"Shared Hosting", "VPS", "Cloud Hosting"}
	default:
		rec.Hosting = []string{"Dedicated Server", "Enterprise Cloud", "CDN"}
	}
	t.Recommendations = rec
}

func recommendedStack(t *TechStack) StackRecommendation {
	switch {
	case t.ContentManagement == "code_based" && t.PerformanceBudget == "ultra_fast":
		return StackRecommendation{Name: "Jamstack 靜態網站", Description: "靜態網站生成器搭配 CDN，載入極快且以程式碼管理內容"}
	case t.ContentManagement == "cms_backend" && t.ScalabilitySecurity == "future_growth":
		return StackRecommendation{Name: "Headless CMS 方案", Description: "前後端分離，內容管理彈性並能隨需求擴展"}
	default:
		return StackRecommendation{Name: "平衡型方案", Description: "在功能、效能與成本之間取得平衡的技術組合"}
	}
}

func implementationComplexity(t *TechStack) string {
	score := 0
	if t.ContentManagement == "hybrid_approach" {
		score += 2
	}
	if t.DeploymentMaintenance == "manual_control" {
		score += 2
	}
	if t.ScalabilitySecurity == "high_scalability" {
		score += 2
	}
	if t.HostingPreference == "dedicated_server" {
		score++
	}

	switch {
	case score <= 2:
		return "low"
	case score <= 4:
		return "medium"
	default:
		return "high"
	}
}

func costLevel(t *TechStack) string {
	points := hostingCostPoints[t.HostingPreference]
	if t.PerformanceBudget == "ultra_fast" {
		points++
	}
	if t.ScalabilitySecurity == "high_scalability" {
		points += 2
	}

	switch {
	case points == 0:
		return "free"
	case points <= 2:
		return "low"
	case points <= 4:
		return "medium"
	default:
		return "high"
	}
}

func setupWeeks(t *TechStack) int {
	weeks := 2
	switch t.ImplementationComplexity {
	case "high":
		weeks += 4
	case "medium":
		weeks += 2
	}
	if t.ContentManagement == "hybrid_approach" {
		weeks += 2
	}
	if t.ScalabilitySecurity == "high_scalability" {
		weeks += 3
	}
	return weeks
}
