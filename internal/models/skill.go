package models

import (
	"strings"
	"time"
)

// Skill - запись каталога навыков агента.
type Skill struct {
	ID            string     `json:"id" yaml:"id"`
	Slug          string     `json:"slug" yaml:"slug"`
	Name          string     `json:"name" yaml:"name"`
	Description   string     `json:"description" yaml:"description"`
	DescriptionZh string     `json:"descriptionZh,omitempty" yaml:"descriptionZh,omitempty"`
	Content       string     `json:"content,omitempty" yaml:"content,omitempty"`
	ContentZh     string     `json:"contentZh,omitempty" yaml:"contentZh,omitempty"`
	Category      string     `json:"category" yaml:"category"`
	Repository    string     `json:"repository" yaml:"repository"`
	Author        string     `json:"author,omitempty" yaml:"author,omitempty"`
	Featured      bool       `json:"featured" yaml:"featured"`
	Official      bool       `json:"official" yaml:"official"`
	// Tags равен nil, если тегов нет; пустой список наружу не отдаётся.
	Tags      []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// HasTag проверяет точное совпадение тега.
func (s *Skill) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesSearch проверяет вхождение подстроки без учёта регистра в name, description и descriptionZh.
// Пустой запрос подходит любой записи.
func (s *Skill) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.Name), query) ||
		strings.Contains(strings.ToLower(s.Description), query) ||
		strings.Contains(strings.ToLower(s.DescriptionZh), query)
}

// Clone возвращает копию записи, не разделяющую срез тегов.
func (s Skill) Clone() Skill {
	if s.Tags != nil {
		s.Tags = append([]string(nil), s.Tags...)
	}
	return s
}

// SkillFilter описывает запрос к каталогу. Пустые поля ограничений не накладывают.
type SkillFilter struct {
	Category string
	Featured *bool
	Official *bool
	Tag      string
	Search   string
	// Limit <= 0 означает DefaultListLimit, NoLimit снимает ограничение.
	Limit  int
	Offset int
}

// NoLimit снимает ограничение выдачи (используется для подсчёта).
const NoLimit = -1

// WithoutPagination возвращает копию фильтра без пагинации.
func (f SkillFilter) WithoutPagination() SkillFilter {
	f.Limit = NoLimit
	f.Offset = 0
	return f
}

// EffectiveLimit возвращает лимит с учётом значения по умолчанию; 0 - без ограничения.
func (f SkillFilter) EffectiveLimit() int {
	switch {
	case f.Limit == NoLimit:
		return 0
	case f.Limit <= 0:
		return DefaultListLimit
	default:
		return f.Limit
	}
}

// LookupField - поле точного поиска одной записи.
type LookupField string

const (
	LookupByID   LookupField = "id"
	LookupBySlug LookupField = "slug"
	LookupByName LookupField = "name"
)

// ResolutionOrder - порядок разрешения идентификатора: id, затем slug, затем name.
var ResolutionOrder = []LookupField{LookupByID, LookupBySlug, LookupByName}

// DeletedSkill подтверждает удаление записи.
type DeletedSkill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NormalizeTags обрезает пробелы, отбрасывает пустые значения и дубликаты.
// Пустой результат - nil.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
