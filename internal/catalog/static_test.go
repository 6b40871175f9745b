package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-agent-labs/skills-catalog/internal/models"
)

func TestEmbeddedSource(t *testing.T) {
	src, err := EmbeddedSource()
	require.NoError(t, err)

	all := src.All()
	require.NotEmpty(t, all)
	for _, skill := range all {
		assert.NotEmpty(t, skill.Slug, skill.ID)
		assert.True(t, models.IsValidCategory(skill.Category), skill.ID)
		if skill.Tags != nil {
			assert.NotEmpty(t, skill.Tags, skill.ID)
		}
	}

	again, err := EmbeddedSource()
	require.NoError(t, err)
	assert.Same(t, src, again)
}

func TestStaticSource_FindOne(t *testing.T) {
	ctx := context.Background()
	src := NewStaticSource(sampleRows())

	got, err := src.FindOne(ctx, models.LookupByName, "Beta")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)

	// возвращается копия
	got.Tags[0] = "changed"
	again, _ := src.FindOne(ctx, models.LookupByID, "b")
	assert.Equal(t, []string{"cli"}, again.Tags)

	missing, err := src.FindOne(ctx, models.LookupBySlug, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseSkills(t *testing.T) {
	t.Run("derives slug and normalizes tags", func(t *testing.T) {
		skills, err := ParseSkills([]byte(`
skills:
  - id: "1"
    name: "文档 助手"
    description: d
    category: documents
    repository: https://github.com/a/b
    tags: [" x ", "", "x", "y"]
  - id: "2"
    name: Other
    description: d
    category: other
    repository: https://github.com/a/c
    tags: ["  "]
`))
		require.NoError(t, err)
		require.Len(t, skills, 2)
		assert.Equal(t, "wen-dang-zhu-shou", skills[0].Slug)
		assert.Equal(t, []string{"x", "y"}, skills[0].Tags)
		assert.Nil(t, skills[1].Tags)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := ParseSkills([]byte(`
skills:
  - {id: "1", name: A, description: d, category: other, repository: "https://github.com/a/b"}
  - {id: "2", name: A, description: d, category: other, repository: "https://github.com/a/c"}
`))
		assert.ErrorContains(t, err, "duplicate name")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := ParseSkills([]byte(`skills: [{name: A, description: d, category: other, repository: "https://github.com/a/b"}]`))
		assert.ErrorContains(t, err, "no id")
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := ParseSkills([]byte(`skills: [{id: "1", name: A, description: d, category: games, repository: "https://github.com/a/b"}]`))
		assert.Error(t, err)
	})
}

func TestLoadSkillsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`skills: [{id: "1", name: A, description: d, category: other, repository: "https://github.com/a/b"}]`), 0o600))

	skills, err := LoadSkillsFile(path)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "a", skills[0].Slug)

	_, err = LoadSkillsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
