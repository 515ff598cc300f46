package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAnswer_Toggle(t *testing.T) {
	a := NewStageAnswer(StageFeatureRequirements)

	assert.True(t, a.Toggle("contentTypes", "blog_posts"))
	assert.True(t, a.Toggle("contentTypes", "image_gallery"))
	assert.Equal(t, []string{"blog_posts", "image_gallery"}, a.List("contentTypes"))

	assert.False(t, a.Toggle("contentTypes", "blog_posts"))
	assert.Equal(t, []string{"image_gallery"}, a.List("contentTypes"))

	assert.False(t, a.Toggle("contentTypes", "image_gallery"))
	assert.Nil(t, a.List("contentTypes"))
	assert.True(t, a.IsEmpty())
}

func TestStageAnswer_SetValue(t *testing.T) {
	a := NewStageAnswer(StageDesignStyle)

	a.SetValue("colorScheme", "warm")
	assert.Equal(t, "warm", a.Value("colorScheme"))

	a.SetValue("colorScheme", "cool")
	assert.Equal(t, "cool", a.Value("colorScheme"))

	a.SetValue("colorScheme", "")
	assert.Equal(t, "", a.Value("colorScheme"))
	assert.True(t, a.IsEmpty())
}

func TestStageAnswer_SetMapValue(t *testing.T) {
	a := NewStageAnswer(StageFeatureRequirements)

	a.SetMapValue("priorities", "blog_posts", "essential")
	a.SetMapValue("priorities", "search_function", "future")
	assert.Equal(t, "essential", a.MapValue("priorities", "blog_posts"))
	assert.Len(t, a.Map("priorities"), 2)

	a.SetMapValue("priorities", "blog_posts", "")
	a.SetMapValue("priorities", "search_function", "")
	assert.Nil(t, a.Map("priorities"))
}

func TestStageAnswer_CloneIsDeep(t *testing.T) {
	a := NewStageAnswer(StageFeatureRequirements)
	a.Toggle("contentTypes", "blog_posts")
	a.SetMapValue("priorities", "blog_posts", "essential")

	b := a.Clone()
	b.Toggle("contentTypes", "video_content")
	b.SetMapValue("priorities", "blog_posts", "future")

	assert.Equal(t, []string{"blog_posts"}, a.List("contentTypes"))
	assert.Equal(t, "essential", a.MapValue("priorities", "blog_posts"))
}

func TestStageAnswer_JSONRoundTrip(t *testing.T) {
	a := NewStageAnswer(StageProjectVision)
	a.Timestamp = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	a.SetValue("projectType", "portfolio")
	a.Toggle("referenceSites", "https://example.com")
	a.SetMapValue("notes", "success_criteria", "上線")

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var b StageAnswer
	require.NoError(t, json.Unmarshal(data, &b))

	assert.Equal(t, a.Stage, b.Stage)
	assert.True(t, a.Timestamp.Equal(b.Timestamp))
	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, a.Lists, b.Lists)
	assert.Equal(t, a.Maps, b.Maps)
}

func TestStageAnswer_Fields(t *testing.T) {
	a := NewStageAnswer(StageProjectVision)
	a.SetValue("projectType", "blog")
	a.Toggle("inspirationKeywords", "clean")

	assert.Equal(t, []string{"inspirationKeywords", "projectType"}, a.Fields())
}
