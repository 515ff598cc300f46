package parser

import "github.com/robertguss/vibe-academy-go/internal/domain"

type projectTypeProfile struct {
	tech       []string
	features   []string
	complexity Complexity
}

var projectTypes = map[string]projectTypeProfile{
	"personal_blog": {[]string{"HTML", "CSS", "JavaScript", "Static Site Generator"}, []string{"blogging", "comments", "rss"}, ComplexitySimple},
	"portfolio":     {[]string{"HTML", "CSS", "JavaScript", "Image Processing"}, []string{"gallery", "contact_form", "responsive"}, ComplexityMedium},
	"business":      {[]string{"HTML", "CSS", "JavaScript", "CMS"}, []string{"multi_page", "contact_form", "seo"}, ComplexityMedium},
	"ecommerce":     {[]string{"Full Stack", "Database", "Payment Processing"}, []string{"shopping_cart", "payment", "inventory"}, ComplexityComplex},
	"landing_page":  {[]string{"HTML", "CSS", "JavaScript"}, []string{"responsive", "contact_form", "analytics"}, ComplexitySimple},
	"community":     {[]string{"Full Stack", "Database", "Authentication"}, []string{"user_system", "forums", "messaging"}, ComplexityVeryComplex},
}

var colorPalettes = map[string][]string{
	"warm":       {"#FF6B6B", "#FFE66D", "#FF8E53", "#4ECDC4"},
	"cool":       {"#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7"},
	"neutral":    {"#2C3E50", "#34495E", "#7F8C8D", "#BDC3C7"},
	"vibrant":    {"#E74C3C", "#F39C12", "#27AE60", "#3498DB"},
	"pastel":     {"#FFB6C1", "#FFE4E1", "#E6E6FA", "#F0F8FF"},
	"monochrome": {"#000000", "#333333", "#666666", "#CCCCCC"},
}

const defaultColorScheme = "neutral"

var defaultBreakpoints = []string{"mobile", "tablet", "desktop"}

var layoutSpecs = map[string]LayoutSpec{
	"single_column": {MaxWidth: "800px", Columns: "1", Spacing: "2rem", Breakpoints: defaultBreakpoints},
	"multi_column":  {MaxWidth: "1200px", Columns: "3", Spacing: "1.5rem", Breakpoints: defaultBreakpoints},
	"grid":          {MaxWidth: "1200px", Columns: "grid 12-column", Spacing: "1rem", Breakpoints: defaultBreakpoints},
}

const defaultLayout = "single_column"

var styleGuides = map[string]StyleGuide{
	"minimal":  {Typography: []string{"Inter", "system-ui"}, Spacing: "generous", Borders: "subtle", Shadows: "minimal"},
	"modern":   {Typography: []string{"Montserrat", "Roboto"}, Spacing: "balanced", Borders: "clean", Shadows: "moderate"},
	"creative": {Typography: []string{"custom", "display"}, Spacing: "varied", Borders: "artistic", Shadows: "dramatic"},
}

const defaultVisualStyle = "minimal"

var animationSpecs = map[string]AnimationSpec{
	"none":     {Transitions: "none", Hover: "none", Loading: "none"},
	"minimal":  {Transitions: "basic", Hover: "subtle", Loading: "simple"},
	"moderate": {Transitions: "smooth", Hover: "balanced", Loading: "moderate"},
	"rich":     {Transitions: "complex", Hover: "dynamic", Loading: "elaborate"},
}

const defaultAnimation = "minimal"

var responsiveStrategies = map[string]ResponsiveStrategy{
	"mobile_first":  {Approach: "progressive_enhancement", Breakpoints: []string{"320px", "768px", "1024px"}, Priority: "mobile"},
	"desktop_first": {Approach: "graceful_degradation", Breakpoints: []string{"1024px", "768px", "320px"}, Priority: "desktop"},
	"balanced":      {Approach: "adaptive_design", Breakpoints: []string{"768px", "320px", "1024px"}, Priority: "balanced"},
}

const defaultMobilePriority = "balanced"

var cmsOptions = map[string][]string{
	"cms_backend":       {"WordPress", "Ghost", "Strapi"},
	"code_based":        {"Next.js", "Gatsby", "Nuxt.js"},
	"external_platform": {"Contentful", "Sanity", "Airtable"},
	"hybrid_approach":   {"Headless CMS", "Static + CMS", "JAMstack"},
}

var deploymentPlatforms = map[string][]string{
	"one_click_deploy":  {"Vercel", "Netlify", "GitHub Pages"},
	"auto_update":       {"Vercel", "Netlify", "Heroku"},
	"manual_control":    {"DigitalOcean", "AWS", "VPS"},
	"scheduled_updates": {"GitHub Actions", "GitLab CI", "Jenkins"},
}

var performanceSpecs = map[string]PerformanceSpec{
	"ultra_fast":          {LoadTime: "< 1s", Optimization: "aggressive", Caching: "extensive"},
	"moderate_speed":      {LoadTime: "< 3s", Optimization: "balanced", Caching: "standard"},
	"functionality_first": {LoadTime: "< 5s", Optimization: "minimal", Caching: "basic"},
	"budget_conscious":    {LoadTime: "< 4s", Optimization: "cost-effective", Caching: "standard"},
}

const defaultPerformance = "moderate_speed"

var timelineSpecs = map[string]TimelineSpec{
	"urgent":   {Focus: "speed", Intensity: "intensive", Weeks: 1.5},
	"standard": {Focus: "balanced", Intensity: "normal", Weeks: 3.5},
	"relaxed":  {Focus: "quality", Intensity: "thorough", Weeks: 6},
	"no_rush":  {Focus: "perfection", Intensity: "comprehensive", Weeks: 8},
}

var budgetSpecs = map[string]BudgetSpec{
	"minimal":    {USD: "< $1,000", Scope: "basic", Features: "essential"},
	"standard":   {USD: "$1,000 - $5,000", Scope: "complete", Features: "comprehensive"},
	"premium":    {USD: "$5,000 - $15,000", Scope: "advanced", Features: "premium"},
	"enterprise": {USD: "$15,000+", Scope: "custom", Features: "unlimited"},
}

// planShares splits the timeline across the project plan phases
var planShares = []struct {
	name  string
	share float64
}{
	{"需求分析與設計", 0.2},
	{"核心功能開發", 0.4},
	{"整合與測試", 0.25},
	{"部署與上線", 0.15},
}

const defaultPlanWeeks = 4.0

var phaseDetails = map[string]struct {
	name     string
	duration string
}{
	domain.PriorityEssential:  {"核心功能開發", "2-3 週"},
	domain.PriorityImportant:  {"重要功能擴充", "2-4 週"},
	domain.PriorityNiceToHave: {"加分功能優化", "1-2 週"},
	domain.PriorityFuture:     {"未來規劃", "待定"},
}

// technicalNeeds maps features to the technical capability they imply
var technicalNeeds = map[string]string{
	"comments_system":     "留言資料儲存與審核機制",
	"user_profiles":       "使用者帳號與認證系統",
	"social_login":        "OAuth 第三方登入",
	"payment_system":      "金流串接與交易安全",
	"search_function":     "全文搜尋索引",
	"subscription":        "電子報訂閱與寄送排程",
	"rating_reviews":      "評分資料儲存與統計",
	"like_bookmark":       "個人收藏資料儲存",
	"live_chat":           "即時通訊連線",
	"chatbot":             "聊天機器人服務串接",
	"cloud_storage":       "雲端檔案儲存",
	"video_content":       "影片串流與轉檔",
	"image_gallery":       "圖片壓縮與縮圖產生",
	"user_management":     "角色權限管理",
	"analytics_dashboard": "流量數據收集與視覺化",
	"backup_restore":      "自動備份機制",
	"scheduled_tasks":     "排程任務執行器",
	"notification_system": "通知推播服務",
}

// backendFeatures need server-side state
var backendFeatures = map[string]bool{
	"comments_system": true,
	"user_profiles":   true,
	"social_login":    true,
	"payment_system":  true,
	"subscription":    true,
	"rating_reviews":  true,
	"like_bookmark":   true,
	"live_chat":       true,
	"crm_system":      true,
	"user_management": true,
}
