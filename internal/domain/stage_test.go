package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllStages_Order(t *testing.T) {
	stages := AllStages()
	assert.Len(t, stages, StageCount)
	assert.Equal(t, StageProjectVision, stages[0])
	assert.Equal(t, StageDeploymentSpecs, stages[4])
}

func TestStageName_Index(t *testing.T) {
	for i, s := range AllStages() {
		assert.Equal(t, i, s.Index())
	}
	assert.Equal(t, -1, StageName("unknown").Index())
}

func TestStageAt(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		stage  StageName
		inside bool
	}{
		{"first", 0, StageProjectVision, true},
		{"last", 4, StageDeploymentSpecs, true},
		{"negative", -1, "", false},
		{"past end", 5, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := StageAt(tt.index)
			assert.Equal(t, tt.inside, ok)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestStageName_DisplayName(t *testing.T) {
	assert.Equal(t, "專案願景", StageProjectVision.DisplayName())
	assert.Equal(t, "規格確認", StageDeploymentSpecs.DisplayName())
	assert.Equal(t, "custom", StageName("custom").DisplayName())
}

func TestNewProgress(t *testing.T) {
	p := NewProgress(1, 4)
	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 4, p.Total)
	assert.InDelta(t, 50.0, p.Percentage, 0.001)

	assert.Equal(t, 0.0, NewProgress(0, 0).Percentage)
}

func TestDocumentFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "text/markdown", FormatMarkdown.ContentType())
	assert.Equal(t, "text/plain", FormatText.ContentType())
}
