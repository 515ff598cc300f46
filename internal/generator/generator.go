// Package generator renders a parsed requirement into the five project
// documents. Every renderer is a pure function of the requirement; missing
// sections render as "undefined" instead of failing.
package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/parser"
)

// Version is stamped into every generated document
const Version = "1.0.0"

// Document filenames in generation order
const (
	FileRequirements    = "user_requirements.json"
	FileProjectBrief    = "project_brief.md"
	FileTechSpec        = "tech_specifications.md"
	FileClaudePrompt    = "claude_prompt.txt"
	FileDevelopmentPlan = "development_plan.md"
)

// Undefined is rendered in place of missing values
const Undefined = "undefined"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl"))

// Filenames returns the document filenames in generation order
func Filenames() []string {
	return []string{FileRequirements, FileProjectBrief, FileTechSpec, FileClaudePrompt, FileDevelopmentPlan}
}

// GenerateAll renders all five documents in order
func GenerateAll(r *parser.Requirement) []domain.GeneratedDocument {
	return []domain.GeneratedDocument{
		ToJSON(r),
		ToProjectBrief(r),
		ToTechSpec(r),
		ToClaudePrompt(r),
		ToDevelopmentPlan(r),
	}
}

type jsonDocument struct {
	Metadata        jsonMetadata        `json:"metadata"`
	ProjectInfo     jsonProjectInfo     `json:"projectInfo"`
	Requirements    jsonRequirements    `json:"requirements"`
	Estimates       jsonEstimates       `json:"estimates"`
	Recommendations jsonRecommendations `json:"recommendations"`
	Warnings        []string            `json:"warnings"`
}

type jsonMetadata struct {
	Title          string `json:"title"`
	Version        string `json:"version"`
	GeneratedAt    string `json:"generatedAt"`
	ParsingVersion string `json:"parsingVersion"`
}

type jsonProjectInfo struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	Purpose        string `json:"purpose"`
}

type jsonRequirements struct {
	Vision     *parser.ProjectVision `json:"vision"`
	Design     *parser.DesignStyle   `json:"design"`
	Features   *parser.Features      `json:"features"`
	Technology *parser.TechStack     `json:"technology"`
	Deployment *parser.Deployment    `json:"deployment"`
}

type jsonEstimates struct {
	Complexity string         `json:"complexity"`
	Timeline   any            `json:"timeline"`
	Budget     any            `json:"budget"`
	Phases     []parser.Phase `json:"phases"`
}

type jsonRecommendations struct {
	TechStack any      `json:"techStack"`
	Hosting   []string `json:"hosting"`
	CMS       []string `json:"cms"`
}

// ToJSON renders the machine-readable requirement document
func ToJSON(r *parser.Requirement) domain.GeneratedDocument {
	v := newView(r)

	doc := jsonDocument{
		Metadata: jsonMetadata{
			Title:          "專案需求文件",
			Version:        Version,
			GeneratedAt:    v.GeneratedAtRFC3339(),
			ParsingVersion: orUndefined(v.R.Metadata.ParsingVersion),
		},
		ProjectInfo: jsonProjectInfo{
			Name:           v.ProjectName(),
			Type:           v.TypeName(),
			Description:    v.Description(),
			TargetAudience: v.AudienceName(),
			Purpose:        v.PurposeName(),
		},
		Requirements: jsonRequirements{
			Vision:     v.Vision,
			Design:     v.Design,
			Features:   v.Features,
			Technology: v.Tech,
			Deployment: v.Deployment,
		},
		Estimates: jsonEstimates{
			Complexity: v.Complexity(),
			Timeline:   struct{}{},
			Budget:     struct{}{},
			Phases:     v.Phases(),
		},
		Recommendations: jsonRecommendations{
			TechStack: struct{}{},
			Hosting:   v.Hosting(),
			CMS:       v.CMS(),
		},
		Warnings: v.Warnings(),
	}
	if v.Features != nil {
		doc.Estimates.Timeline = v.Features.EstimatedTime
	}
	if v.Deployment != nil {
		doc.Estimates.Budget = v.Deployment.BudgetSpecs
	}
	if v.Tech != nil {
		doc.Recommendations.TechStack = v.Tech.Recommendations
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Printf("generator: failed to marshal %s: %v", FileRequirements, err)
		content = []byte("{}")
	}

	return domain.GeneratedDocument{
		Filename:     FileRequirements,
		Content:      string(content),
		Format:       domain.FormatJSON,
		Downloadable: true,
	}
}

// ToProjectBrief renders the human-readable project summary
func ToProjectBrief(r *parser.Requirement) domain.GeneratedDocument {
	return render(FileProjectBrief, domain.FormatMarkdown, newView(r))
}

// ToTechSpec renders the technical specification
func ToTechSpec(r *parser.Requirement) domain.GeneratedDocument {
	return render(FileTechSpec, domain.FormatMarkdown, newView(r))
}

// ToClaudePrompt renders the development prompt for an AI assistant
func ToClaudePrompt(r *parser.Requirement) domain.GeneratedDocument {
	return render(FileClaudePrompt, domain.FormatText, newView(r))
}

// ToDevelopmentPlan renders phases, milestones, resources and risks
func ToDevelopmentPlan(r *parser.Requirement) domain.GeneratedDocument {
	return render(FileDevelopmentPlan, domain.FormatMarkdown, newView(r))
}

func render(filename string, format domain.DocumentFormat, v *view) domain.GeneratedDocument {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, filename+".tmpl", v); err != nil {
		log.Printf("generator: failed to render %s: %v", filename, err)
		buf.Reset()
		buf.WriteString(Undefined)
	}
	return domain.GeneratedDocument{
		Filename:     filename,
		Content:      buf.String(),
		Format:       format,
		Downloadable: true,
	}
}

// WriteFiles writes documents into dir, creating it if needed, and returns
// the written paths in order.
func WriteFiles(dir string, docs []domain.GeneratedDocument) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := filepath.Base(doc.Filename)
		if name == "." || name == string(filepath.Separator) {
			return paths, fmt.Errorf("invalid document filename %q", doc.Filename)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return Undefined
	}
	return t.Format(layout)
}
