package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/open-agent-labs/skills-catalog/internal/logger"
	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
	"github.com/open-agent-labs/skills-catalog/internal/repository"
	"github.com/open-agent-labs/skills-catalog/internal/slug"
	"github.com/open-agent-labs/skills-catalog/internal/validation"
)

// SkillStore - хранилище, в которое пишет сервис.
type SkillStore interface {
	FindOne(ctx context.Context, field models.LookupField, value string) (*models.Skill, error)
	Upsert(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id string) error
}

// SkillService - фасад изменений каталога. Резерва для записи нет.
type SkillService struct {
	store SkillStore
}

// NewSkillService создаёт сервис. store равен nil, если хранилище не настроено.
func NewSkillService(store SkillStore) *SkillService {
	return &SkillService{store: store}
}

// Enabled сообщает, настроено ли хранилище для записи.
func (s *SkillService) Enabled() bool {
	return s.store != nil
}

// Upsert создаёт запись (без id) или обновляет существующую (с id).
// Переданный id должен принадлежать существующей записи.
// Имя должно быть уникальным среди всех записей.
func (s *SkillService) Upsert(ctx context.Context, input models.Skill) (*models.Skill, error) {
	return s.save(ctx, input, false)
}

// Import сохраняет запись с заранее известным id, создавая её при отсутствии.
// Используется при загрузке набора данных.
func (s *SkillService) Import(ctx context.Context, input models.Skill) (*models.Skill, error) {
	return s.save(ctx, input, true)
}

func (s *SkillService) save(ctx context.Context, input models.Skill, insertWithID bool) (*models.Skill, error) {
	if s.store == nil {
		return nil, apperror.ErrStoreNotConfigured
	}

	hasID := strings.TrimSpace(input.ID) != ""
	skill := normalize(input)
	if err := validation.ValidateSkill(&skill); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if hasID && !insertWithID {
		existing, err := s.store.FindOne(ctx, models.LookupByID, skill.ID)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to look up skill")
		}
		if existing == nil {
			return nil, apperror.ErrSkillNotFound
		}
	}

	if err := s.store.Upsert(ctx, &skill); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, apperror.ErrDuplicateName
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to save skill")
	}

	saved, err := s.store.FindOne(ctx, models.LookupByID, skill.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to load saved skill")
	}
	if saved == nil {
		return nil, apperror.New(apperror.ErrCodeInternal, "skill was not saved")
	}

	logger.Component("skills").WithField("skill_id", saved.ID).WithField("slug", saved.Slug).Info("Навык сохранён")
	return saved, nil
}

// Delete удаляет запись по id, slug или имени (в этом порядке).
func (s *SkillService) Delete(ctx context.Context, identifier string) (*models.DeletedSkill, error) {
	if s.store == nil {
		return nil, apperror.ErrStoreNotConfigured
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "identifier is required")
	}

	skill, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to look up skill")
	}
	if skill == nil {
		return nil, apperror.ErrSkillNotFound
	}

	if err := s.store.Delete(ctx, skill.ID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil, apperror.ErrSkillNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to delete skill")
	}

	logger.Component("skills").WithField("skill_id", skill.ID).Info("Навык удалён")
	return &models.DeletedSkill{ID: skill.ID, Name: skill.Name, Slug: skill.Slug}, nil
}

func (s *SkillService) resolve(ctx context.Context, identifier string) (*models.Skill, error) {
	for _, field := range models.ResolutionOrder {
		skill, err := s.store.FindOne(ctx, field, identifier)
		if err != nil || skill != nil {
			return skill, err
		}
	}
	return nil, nil
}

// normalize готовит запись к сохранению: id, slug, теги.
func normalize(input models.Skill) models.Skill {
	skill := input.Clone()
	skill.ID = strings.TrimSpace(skill.ID)
	skill.Name = strings.TrimSpace(skill.Name)
	skill.Slug = strings.TrimSpace(skill.Slug)
	skill.Category = strings.TrimSpace(skill.Category)
	skill.Repository = strings.TrimSpace(skill.Repository)
	skill.Author = strings.TrimSpace(skill.Author)
	skill.Tags = models.NormalizeTags(skill.Tags)
	skill.CreatedAt, skill.UpdatedAt = nil, nil

	if skill.ID == "" {
		skill.ID = uuid.NewString()
	}
	if skill.Slug == "" {
		skill.Slug = slug.Derive(skill.Name)
	}
	// имя без латиницы, цифр и иероглифов
	if skill.Slug == "" {
		skill.Slug = skill.ID
	}
	return skill
}
