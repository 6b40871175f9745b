package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/slug"
	"github.com/open-agent-labs/skills-catalog/internal/validation"
)

//go:embed fallback/skills.yaml
var embeddedSkills []byte

// skillsFile - формат YAML файла с записями каталога.
type skillsFile struct {
	Skills []models.Skill `yaml:"skills"`
}

// StaticSource - неизменяемый резервный набор записей в памяти.
type StaticSource struct {
	skills []models.Skill
}

// NewStaticSource создаёт источник поверх готового набора записей.
func NewStaticSource(skills []models.Skill) *StaticSource {
	copied := make([]models.Skill, len(skills))
	for i := range skills {
		copied[i] = skills[i].Clone()
	}
	return &StaticSource{skills: copied}
}

var loadEmbedded = sync.OnceValues(func() (*StaticSource, error) {
	skills, err := ParseSkills(embeddedSkills)
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded fallback: %w", err)
	}
	return NewStaticSource(skills), nil
})

// EmbeddedSource возвращает резерв, вшитый в бинарник. Файл разбирается один раз.
func EmbeddedSource() (*StaticSource, error) {
	return loadEmbedded()
}

// EmbeddedSkills возвращает копию записей вшитого резерва.
func EmbeddedSkills() ([]models.Skill, error) {
	src, err := EmbeddedSource()
	if err != nil {
		return nil, err
	}
	return src.All(), nil
}

// LoadSkillsFile читает записи из YAML файла в формате резерва.
func LoadSkillsFile(path string) ([]models.Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return ParseSkills(data)
}

// ParseSkills разбирает и проверяет YAML с записями каталога.
// Пустой slug выводится из имени, теги нормализуются.
func ParseSkills(data []byte) ([]models.Skill, error) {
	var file skillsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse skills: %w", err)
	}

	ids := make(map[string]struct{}, len(file.Skills))
	names := make(map[string]struct{}, len(file.Skills))
	for i := range file.Skills {
		skill := &file.Skills[i]
		if skill.ID == "" {
			return nil, fmt.Errorf("catalog: skill #%d (%q) has no id", i+1, skill.Name)
		}
		if skill.Slug == "" {
			skill.Slug = slug.Derive(skill.Name)
		}
		skill.Tags = models.NormalizeTags(skill.Tags)

		if err := validation.ValidateSkill(skill); err != nil {
			return nil, fmt.Errorf("catalog: skill %s: %w", skill.ID, err)
		}
		if _, ok := ids[skill.ID]; ok {
			return nil, fmt.Errorf("catalog: duplicate id %s", skill.ID)
		}
		if _, ok := names[skill.Name]; ok {
			return nil, fmt.Errorf("catalog: duplicate name %q", skill.Name)
		}
		ids[skill.ID] = struct{}{}
		names[skill.Name] = struct{}{}
	}

	return file.Skills, nil
}

// Name возвращает имя источника.
func (s *StaticSource) Name() string {
	return "static"
}

// Available всегда true: данные уже в памяти.
func (s *StaticSource) Available(context.Context) bool {
	return s != nil
}

// Fetch возвращает копии записей, подходящих под фильтр.
func (s *StaticSource) Fetch(_ context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	matched := Match(s.skills, filter)
	for i := range matched {
		matched[i] = matched[i].Clone()
	}
	return matched, nil
}

// FindOne ищет запись по точному совпадению поля.
func (s *StaticSource) FindOne(_ context.Context, field models.LookupField, value string) (*models.Skill, error) {
	for i := range s.skills {
		skill := &s.skills[i]
		var candidate string
		switch field {
		case models.LookupByID:
			candidate = skill.ID
		case models.LookupBySlug:
			candidate = skill.Slug
		case models.LookupByName:
			candidate = skill.Name
		default:
			return nil, fmt.Errorf("catalog: unknown lookup field %q", field)
		}
		if candidate == value {
			found := skill.Clone()
			return &found, nil
		}
	}
	return nil, nil
}

// All возвращает копию всех записей.
func (s *StaticSource) All() []models.Skill {
	out := make([]models.Skill, len(s.skills))
	for i := range s.skills {
		out[i] = s.skills[i].Clone()
	}
	return out
}
