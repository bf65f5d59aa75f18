package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"diary", "travel"}, SplitTags("diary travel"))
	assert.Equal(t, []string{"diary"}, SplitTags("  diary  "))
	assert.Equal(t, []string{}, SplitTags(""))
}

func TestValidatePost(t *testing.T) {
	valid := &Post{UserID: "alice", Content: "hello"}
	assert.Empty(t, ValidatePost(valid))

	imageOnly := &Post{UserID: "alice", Image: "https://img.example/a.jpg"}
	assert.Empty(t, ValidatePost(imageOnly))

	empty := &Post{}
	violations := ValidatePost(empty)
	assert.Len(t, violations, 2)
	assert.Contains(t, violations[0], "userId")
}

func TestPostUpdateReportOnly(t *testing.T) {
	reported := true
	unreported := false
	content := "x"

	assert.True(t, (&PostUpdate{IsReported: &reported}).ReportOnly())
	assert.False(t, (&PostUpdate{IsReported: &unreported}).ReportOnly())
	assert.False(t, (&PostUpdate{IsReported: &reported, Content: &content}).ReportOnly())
	assert.False(t, (&PostUpdate{}).ReportOnly())
}

func TestPostUpdateApply(t *testing.T) {
	content := "edited"
	private := true
	post := &Post{UserID: "alice", Content: "original", Tags: []string{"a"}}

	(&PostUpdate{Content: &content, IsPrivate: &private}).Apply(post)

	assert.Equal(t, "edited", post.Content)
	assert.True(t, post.IsPrivate)
	assert.Equal(t, []string{"a"}, post.Tags, "unset fields stay untouched")
	assert.Equal(t, "alice", post.UserID)
}
