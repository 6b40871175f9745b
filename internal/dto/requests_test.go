package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-agent-labs/skills-catalog/internal/models"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want TagList
	}{
		{`{"tags": "pdf, office ,"}`, TagList{"pdf", " office ", ""}},
		{`{"tags": ["pdf", "office"]}`, TagList{"pdf", "office"}},
		{`{"tags": null}`, nil},
		{`{}`, nil},
	}

	for _, tt := range tests {
		var req UpsertSkillRequest
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &req), tt.raw)
		assert.Equal(t, tt.want, req.Tags, tt.raw)
	}

	var req UpsertSkillRequest
	assert.Error(t, json.Unmarshal([]byte(`{"tags": 5}`), &req))
}

func TestUpsertSkillRequest_ToModel(t *testing.T) {
	req := UpsertSkillRequest{Name: "PDF", Category: "documents", Tags: TagList{"a"}}
	skill := req.ToModel()

	assert.Equal(t, "PDF", skill.Name)
	assert.Equal(t, []string{"a"}, skill.Tags)
}

func TestListSkillsQuery_ToFilter(t *testing.T) {
	two := 2
	filter := ListSkillsQuery{Category: " data ", Limit: &two, Offset: 4}.ToFilter()
	assert.Equal(t, "data", filter.Category)
	assert.Equal(t, 2, filter.Limit)
	assert.Equal(t, 4, filter.Offset)

	// без limit действует размер страницы по умолчанию
	filter = ListSkillsQuery{}.ToFilter()
	assert.Zero(t, filter.Limit)
	assert.Equal(t, models.DefaultListLimit, filter.EffectiveLimit())
}
