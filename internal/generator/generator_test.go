package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/parser"
)

var parsedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fullRequirement(t *testing.T) *parser.Requirement {
	t.Helper()

	vision := domain.NewStageAnswer(domain.StageProjectVision)
	vision.SetValue(domain.FieldProjectType, "portfolio")
	vision.SetValue(domain.FieldTargetAudience, "creatives")
	vision.SetValue(domain.FieldCorePurpose, "showcase_work")
	vision.Toggle(domain.FieldReferenceSites, "https://example.com")

	design := domain.NewStageAnswer(domain.StageDesignStyle)
	design.SetValue(domain.FieldColorScheme, "cool")
	design.SetValue(domain.FieldLayoutStyle, "grid")
	design.SetValue(domain.FieldVisualStyle, "creative")
	design.SetValue(domain.FieldAnimationLevel, "moderate")
	design.SetValue(domain.FieldMobilePriority, "mobile_first")

	features := domain.NewStageAnswer(domain.StageFeatureRequirements)
	features.Toggle(domain.FieldContentTypes, "portfolio_items")
	features.Toggle(domain.FieldContentTypes, "image_gallery")
	features.Toggle(domain.FieldInteractionFeatures, "contact_form")
	features.Toggle(domain.FieldAdminFeatures, "content_management")
	features.SetMapValue(domain.FieldPriorities, "portfolio_items", domain.PriorityEssential)
	features.SetMapValue(domain.FieldPriorities, "image_gallery", domain.PriorityEssential)
	features.SetMapValue(domain.FieldPriorities, "contact_form", domain.PriorityImportant)
	features.SetMapValue(domain.FieldPriorities, "content_management", domain.PriorityNiceToHave)

	tech := domain.NewStageAnswer(domain.StageTechPreferences)
	tech.SetValue(domain.FieldContentManagement, "code_based")
	tech.SetValue(domain.FieldDeploymentMaintenance, "auto_update")
	tech.SetValue(domain.FieldPerformanceBudget, "ultra_fast")
	tech.SetValue(domain.FieldScalabilitySecurity, "current_needs")
	tech.SetValue(domain.FieldHostingPreference, "cloud_hosting")

	deploy := domain.NewStageAnswer(domain.StageDeploymentSpecs)
	deploy.Toggle(domain.FieldPriorityOrder, "portfolio_items")
	deploy.SetValue(domain.FieldTimeline, "standard")
	deploy.SetValue(domain.FieldBudget, "standard")
	deploy.SetMapValue(domain.FieldNotes, domain.NoteAdditionalFeatures, "多語系")

	p := parser.New(catalog.MustLoad(), parser.WithClock(func() time.Time { return parsedAt }))
	return p.Parse(map[domain.StageName]domain.StageAnswer{
		domain.StageProjectVision:       vision,
		domain.StageDesignStyle:         design,
		domain.StageFeatureRequirements: features,
		domain.StageTechPreferences:     tech,
		domain.StageDeploymentSpecs:     deploy,
	})
}

func TestGenerateAll_OrderAndFormats(t *testing.T) {
	docs := GenerateAll(fullRequirement(t))

	require.Len(t, docs, 5)
	wantFormats := []domain.DocumentFormat{
		domain.FormatJSON,
		domain.FormatMarkdown,
		domain.FormatMarkdown,
		domain.FormatText,
		domain.FormatMarkdown,
	}
	for i, doc := range docs {
		assert.Equal(t, Filenames()[i], doc.Filename)
		assert.Equal(t, wantFormats[i], doc.Format)
		assert.Equal(t, wantFormats[i], FormatFor(doc.Filename))
		assert.True(t, doc.Downloadable)
		assert.NotEmpty(t, doc.Content)
		assert.NotEqual(t, Undefined, doc.Content, "%s failed to render", doc.Filename)
	}
}

func TestToJSON_ConsistencyWithRequirement(t *testing.T) {
	r := fullRequirement(t)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(ToJSON(r).Content), &out))

	info := out["projectInfo"].(map[string]any)
	assert.Equal(t, r.ProjectVision.TypeName, info["type"])
	assert.Equal(t, "作品集網站 - 展示作品", info["name"])
	assert.Equal(t, "創作者", info["targetAudience"])
	assert.Contains(t, info["description"], "此專案旨在為創作者建立一個作品集網站")

	estimates := out["estimates"].(map[string]any)
	assert.Equal(t, string(r.Features.TotalComplexity), estimates["complexity"])
	assert.Len(t, estimates["phases"], len(r.Features.DevelopmentPhases))

	meta := out["metadata"].(map[string]any)
	assert.Equal(t, "專案需求文件", meta["title"])
	assert.Equal(t, "2024-03-01T12:00:00Z", meta["generatedAt"])
	assert.Equal(t, parser.Version, meta["parsingVersion"])

	recs := out["recommendations"].(map[string]any)
	assert.Equal(t, []any{"Next.js", "Gatsby", "Nuxt.js"}, recs["cms"])
}

func TestToJSON_MissingSectionsRenderUndefined(t *testing.T) {
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(ToJSON(&parser.Requirement{}).Content), &out))

	info := out["projectInfo"].(map[string]any)
	assert.Equal(t, Undefined, info["type"])
	assert.Equal(t, "undefined - undefined", info["name"])
	assert.Equal(t, Undefined, info["description"])

	estimates := out["estimates"].(map[string]any)
	assert.Equal(t, Undefined, estimates["complexity"])
	assert.Equal(t, map[string]any{}, estimates["timeline"])
	assert.Equal(t, []any{}, estimates["phases"])

	requirements := out["requirements"].(map[string]any)
	assert.Nil(t, requirements["vision"])
}

func TestRenderers_NilRequirement(t *testing.T) {
	for _, doc := range GenerateAll(nil) {
		assert.NotEmpty(t, doc.Content, doc.Filename)
	}
}

func TestToProjectBrief(t *testing.T) {
	content := ToProjectBrief(fullRequirement(t)).Content

	assert.Contains(t, content, "# 專案摘要文件")
	assert.Contains(t, content, "**專案類型：** 作品集網站")
	assert.Contains(t, content, "作品集網站 (portfolio)")
	assert.Contains(t, content, "- https://example.com")
	assert.Contains(t, content, "- 作品集項目")
	assert.Contains(t, content, "額外功能需求：多語系")
	assert.Contains(t, content, "### 階段 1：核心功能開發")
	assert.Contains(t, content, "- **優先級：** 必要功能")
	assert.Contains(t, content, "Jamstack 靜態網站")
	assert.Contains(t, content, "*生成版本：1.0.0*")
	assert.NotContains(t, content, "<no value>")
}

func TestToProjectBrief_PartialData(t *testing.T) {
	r := &parser.Requirement{ProjectVision: &parser.ProjectVision{TypeName: "作品集網站"}}

	content := ToProjectBrief(r).Content

	assert.Contains(t, content, "**專案類型：** 作品集網站")
	assert.Contains(t, content, "**目標受眾：** undefined")
	assert.Contains(t, content, "## 設計風格\nundefined")
	assert.Contains(t, content, "無指定參考網站")
	assert.NotContains(t, content, "<no value>")
}

func TestToTechSpec(t *testing.T) {
	content := ToTechSpec(fullRequirement(t)).Content

	assert.Contains(t, content, "# 技術規格文件")
	assert.Contains(t, content, "- React")
	assert.Contains(t, content, "- **開發模式：** MVC Architecture")
	assert.Contains(t, content, "- **自動部署：** 是")
	assert.Contains(t, content, "- **CDN：** 需要")
	assert.Contains(t, content, "### 資料模型")
	assert.NotContains(t, content, "<no value>")
}

func TestToTechSpec_StaticSite(t *testing.T) {
	content := ToTechSpec(&parser.Requirement{}).Content

	assert.Contains(t, content, "此專案無需資料庫設計")
	assert.Contains(t, content, "此專案無需 API 設計")
	assert.Contains(t, content, "- **開發模式：** Standard Architecture")
}

func TestToClaudePrompt(t *testing.T) {
	content := ToClaudePrompt(fullRequirement(t)).Content

	for _, heading := range []string{"# Claude 開發指令", "## 專案背景", "## 技術要求", "## 功能清單", "## 開發指導", "## 品質標準"} {
		assert.Contains(t, content, heading)
	}
	assert.Contains(t, content, "你是一位資深的 Frontend 開發者，需要開發一個作品集網站專案。")
	assert.Contains(t, content, "遵循 Airbnb 程式碼風格")
	assert.Contains(t, content, "瀏覽器相容性：Modern browsers only")
	assert.Contains(t, content, "### 補充說明")
	assert.NotContains(t, content, "<no value>")
}

func TestToDevelopmentPlan(t *testing.T) {
	content := ToDevelopmentPlan(fullRequirement(t)).Content

	assert.Contains(t, content, "**預估時程：** 3-4 週內完成")
	assert.Contains(t, content, "**預算範圍：** NT$ 30,000 - 80,000")
	assert.Contains(t, content, "### 里程碑 1：核心功能開發完成")
	assert.Contains(t, content, "- **時間點：** 第 2 週")
	assert.Contains(t, content, "- **時間點：** 第 6 週")
	assert.Contains(t, content, "- **設計師：** 1 人")
	assert.Contains(t, content, "- **專案經理：** 1 人")
	assert.Contains(t, content, "- 需求分析與設計：1 週")
	assert.Contains(t, content, "- 時程安排合理，風險可控")
	assert.NotContains(t, content, "<no value>")
}

func TestView_Risks(t *testing.T) {
	tests := []struct {
		name         string
		complexity   parser.Complexity
		timeline     string
		budget       string
		wantTimeline string
		wantBudget   string
	}{
		{"urgent very complex", parser.ComplexityVeryComplex, "urgent", "minimal", "時程過於緊迫，建議調整功能範圍或延長時程", "預算與功能需求不匹配，建議調整功能範圍"},
		{"urgent simple", parser.ComplexitySimple, "urgent", "minimal", "時程緊迫，需要專注核心功能", "預算有限，需要精簡功能需求"},
		{"relaxed very complex", parser.ComplexityVeryComplex, "relaxed", "standard", "複雜專案需要充分的開發和測試時間", "複雜專案可能需要更多預算支援"},
		{"enterprise very complex", parser.ComplexityVeryComplex, "relaxed", "enterprise", "複雜專案需要充分的開發和測試時間", "預算規劃合理，風險較低"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(&parser.Requirement{
				Features:   &parser.Features{TotalComplexity: tt.complexity},
				Deployment: &parser.Deployment{Timeline: tt.timeline, Budget: tt.budget},
			})
			assert.Equal(t, tt.wantTimeline, v.TimelineRisk())
			assert.Equal(t, tt.wantBudget, v.BudgetRisk())
		})
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	docs := GenerateAll(fullRequirement(t))

	paths, err := WriteFiles(dir, docs)
	require.NoError(t, err)
	require.Len(t, paths, len(docs))

	for i, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, docs[i].Content, string(data))
		assert.Equal(t, docs[i].Filename, filepath.Base(path))
	}
}

func TestWriteFiles_StripsDirectories(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteFiles(dir, []domain.GeneratedDocument{{Filename: "../escape.txt", Content: "x"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.txt"), paths[0])
}
