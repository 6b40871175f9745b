package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-agent-labs/skills-catalog/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func ids(skills []models.Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = s.ID
	}
	return out
}

func sampleRows() []models.Skill {
	return []models.Skill{
		{ID: "z", Name: "Zeta", Description: "plain", Category: "development"},
		{ID: "b", Name: "Beta", Description: "Beta tool", Category: "development", Official: true, Tags: []string{"cli"}},
		{ID: "a", Name: "Alpha", Description: "first", Category: "design", Featured: true, Tags: []string{"cli", "ui"}},
		{ID: "g", Name: "Gamma", Description: "pure", DescriptionZh: "数据工具", Category: "data", Featured: true, Official: true},
	}
}

func TestSort(t *testing.T) {
	rows := sampleRows()
	Sort(rows)
	assert.Equal(t, []string{"g", "a", "b", "z"}, ids(rows))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		filter models.SkillFilter
		want   []string
	}{
		{"no filter", models.SkillFilter{}, []string{"z", "b", "a", "g"}},
		{"category", models.SkillFilter{Category: "development"}, []string{"z", "b"}},
		{"featured false", models.SkillFilter{Featured: boolPtr(false)}, []string{"z", "b"}},
		{"official", models.SkillFilter{Official: boolPtr(true)}, []string{"b", "g"}},
		{"tag", models.SkillFilter{Tag: "cli"}, []string{"b", "a"}},
		{"tag is exact", models.SkillFilter{Tag: "cl"}, []string{}},
		{"search case insensitive", models.SkillFilter{Search: "BETA"}, []string{"b"}},
		{"search localized", models.SkillFilter{Search: "数据"}, []string{"g"}},
		{"and", models.SkillFilter{Tag: "cli", Featured: boolPtr(true)}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Match(sampleRows(), tt.filter)))
		})
	}
}

func TestPaginate(t *testing.T) {
	rows := sampleRows()

	assert.Len(t, Paginate(rows, 0, 0), 4)
	assert.Equal(t, []string{"b", "a"}, ids(Paginate(rows, 1, 2)))
	assert.Equal(t, []string{"g"}, ids(Paginate(rows, 3, 10)))

	beyond := Paginate(rows, 10, 5)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestApply_DefaultLimit(t *testing.T) {
	rows := make([]models.Skill, models.DefaultListLimit+5)
	for i := range rows {
		rows[i] = models.Skill{ID: string(rune('a' + i%26)), Name: "n"}
	}

	assert.Len(t, Apply(rows, models.SkillFilter{}), models.DefaultListLimit)
	assert.Len(t, Apply(rows, models.SkillFilter{}.WithoutPagination()), models.DefaultListLimit+5)
}
