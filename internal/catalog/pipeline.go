// Package catalog отдаёт записи каталога из хранилища или из статического резерва
// с одинаковой фильтрацией, сортировкой и пагинацией.
package catalog

import (
	"context"
	"sort"

	"github.com/open-agent-labs/skills-catalog/internal/models"
)

// Source - поставщик сырых записей каталога.
type Source interface {
	Name() string
	Available(ctx context.Context) bool
	// Fetch может сузить выборку по фильтру, но не применяет пагинацию.
	Fetch(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error)
	// FindOne возвращает (nil, nil), если записи нет.
	FindOne(ctx context.Context, field models.LookupField, value string) (*models.Skill, error)
}

// Apply - общий конвейер выдачи: Match, Sort, Paginate.
func Apply(rows []models.Skill, filter models.SkillFilter) []models.Skill {
	matched := Match(rows, filter)
	Sort(matched)
	return Paginate(matched, filter.Offset, filter.EffectiveLimit())
}

// Match оставляет записи, удовлетворяющие всем заданным условиям фильтра.
func Match(rows []models.Skill, filter models.SkillFilter) []models.Skill {
	out := make([]models.Skill, 0, len(rows))
	for i := range rows {
		if matches(&rows[i], filter) {
			out = append(out, rows[i])
		}
	}
	return out
}

func matches(skill *models.Skill, filter models.SkillFilter) bool {
	if filter.Category != "" && skill.Category != filter.Category {
		return false
	}
	if filter.Featured != nil && skill.Featured != *filter.Featured {
		return false
	}
	if filter.Official != nil && skill.Official != *filter.Official {
		return false
	}
	if filter.Tag != "" && !skill.HasTag(filter.Tag) {
		return false
	}
	return skill.MatchesSearch(filter.Search)
}

// Sort упорядочивает записи: featured, затем official, затем имя по возрастанию.
func Sort(rows []models.Skill) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Official != b.Official {
			return a.Official
		}
		return a.Name < b.Name
	})
}

// Paginate возвращает срез [offset, offset+limit). limit 0 - без ограничения.
// Смещение за пределами выборки даёт пустой список.
func Paginate(rows []models.Skill, offset, limit int) []models.Skill {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []models.Skill{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}
