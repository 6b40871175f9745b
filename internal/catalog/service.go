package catalog

import (
	"context"

	"github.com/open-agent-labs/skills-catalog/internal/logger"
	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
)

// Service - фасад чтения каталога.
// Хранилище используется, пока оно доступно; иначе запросы обслуживает резерв.
type Service struct {
	store    Source
	fallback Source
}

// NewService создаёт фасад. store может быть nil, если хранилище не настроено.
func NewService(store Source, fallback Source) *Service {
	return &Service{store: store, fallback: fallback}
}

// sources возвращает источники в порядке опроса.
func (s *Service) sources(ctx context.Context) []Source {
	out := make([]Source, 0, 2)
	if s.store != nil && s.store.Available(ctx) {
		out = append(out, s.store)
	}
	if s.fallback != nil {
		out = append(out, s.fallback)
	}
	return out
}

// Backend возвращает имя источника, который сейчас обслуживает чтение.
func (s *Service) Backend(ctx context.Context) string {
	if srcs := s.sources(ctx); len(srcs) > 0 {
		return srcs[0].Name()
	}
	return "none"
}

// ListSkills возвращает страницу записей, отфильтрованных и упорядоченных одинаково для любого источника.
func (s *Service) ListSkills(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	page, err := s.ListPage(ctx, filter)
	if err != nil {
		return nil, err
	}
	return page.Skills, nil
}

// Page - страница выдачи и общее число записей под фильтром.
type Page struct {
	Skills []models.Skill
	Total  int
	Limit  int
	Offset int
}

// ListPage возвращает страницу и total за одно чтение источника.
func (s *Service) ListPage(ctx context.Context, filter models.SkillFilter) (*Page, error) {
	page := &Page{Skills: []models.Skill{}, Limit: filter.EffectiveLimit(), Offset: filter.Offset}
	if filter.Category != "" && !models.IsValidCategory(filter.Category) {
		return page, nil
	}

	rows, err := s.fetch(ctx, filter.WithoutPagination())
	if err != nil {
		return nil, err
	}

	matched := Match(rows, filter)
	page.Total = len(matched)
	page.Skills = Apply(matched, filter)
	return page, nil
}

// CountSkills возвращает число записей под фильтром без учёта пагинации.
func (s *Service) CountSkills(ctx context.Context, filter models.SkillFilter) (int, error) {
	skills, err := s.ListSkills(ctx, filter.WithoutPagination())
	if err != nil {
		return 0, err
	}
	return len(skills), nil
}

// GetSkillByID ищет запись по id; (nil, nil), если её нет.
func (s *Service) GetSkillByID(ctx context.Context, id string) (*models.Skill, error) {
	return s.findOne(ctx, models.LookupByID, id)
}

// GetSkillBySlug ищет запись по slug.
func (s *Service) GetSkillBySlug(ctx context.Context, slug string) (*models.Skill, error) {
	return s.findOne(ctx, models.LookupBySlug, slug)
}

// GetSkillByName ищет запись по точному имени.
func (s *Service) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	return s.findOne(ctx, models.LookupByName, name)
}

// ResolveSkill ищет запись по идентификатору: id, затем slug, затем имя.
func (s *Service) ResolveSkill(ctx context.Context, identifier string) (*models.Skill, error) {
	return s.lookup(ctx, func(src Source) (*models.Skill, error) {
		for _, field := range models.ResolutionOrder {
			skill, err := src.FindOne(ctx, field, identifier)
			if err != nil || skill != nil {
				return skill, err
			}
		}
		return nil, nil
	})
}

func (s *Service) findOne(ctx context.Context, field models.LookupField, value string) (*models.Skill, error) {
	return s.lookup(ctx, func(src Source) (*models.Skill, error) {
		return src.FindOne(ctx, field, value)
	})
}

func (s *Service) fetch(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	var lastErr error
	for _, src := range s.sources(ctx) {
		rows, err := src.Fetch(ctx, filter)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		logger.Component("catalog").WithError(err).WithField("source", src.Name()).
			Warn("Источник каталога недоступен, переключаемся на резерв")
	}
	return nil, unavailable(lastErr)
}

func (s *Service) lookup(ctx context.Context, fn func(Source) (*models.Skill, error)) (*models.Skill, error) {
	var lastErr error
	for _, src := range s.sources(ctx) {
		skill, err := fn(src)
		if err == nil {
			return skill, nil
		}
		lastErr = err
		logger.Component("catalog").WithError(err).WithField("source", src.Name()).
			Warn("Источник каталога недоступен, переключаемся на резерв")
	}
	return nil, unavailable(lastErr)
}

func unavailable(cause error) error {
	if cause == nil {
		return apperror.ErrCatalogUnavailable
	}
	return apperror.Wrap(cause, apperror.ErrCodeInternal, apperror.ErrCatalogUnavailable.Message)
}
