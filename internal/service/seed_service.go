package service

import (
	"context"

	"github.com/open-agent-labs/skills-catalog/internal/logger"
	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
)

// SeedService загружает набор записей в хранилище, сохраняя их id.
type SeedService struct {
	skills *SkillService
}

// NewSeedService создаёт новый сервис для загрузки данных.
func NewSeedService(skills *SkillService) *SeedService {
	return &SeedService{skills: skills}
}

// SeedFailure описывает запись, которую не удалось сохранить.
type SeedFailure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// SeedResult - итог загрузки.
type SeedResult struct {
	Total    int           `json:"total"`
	Upserted int           `json:"upserted"`
	Failed   int           `json:"failed"`
	Failures []SeedFailure `json:"failures,omitempty"`
}

// Seed сохраняет записи по одной. Ошибка отдельной записи не прерывает загрузку.
func (s *SeedService) Seed(ctx context.Context, skills []models.Skill) (*SeedResult, error) {
	if !s.skills.Enabled() {
		return nil, apperror.ErrStoreNotConfigured
	}

	log := logger.Component("seed")
	result := &SeedResult{Total: len(skills)}

	for _, skill := range skills {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := s.skills.Import(ctx, skill); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, SeedFailure{
				ID:    skill.ID,
				Name:  skill.Name,
				Error: apperror.From(err).Message,
			})
			log.WithError(err).WithField("skill_id", skill.ID).Warn("Не удалось загрузить навык")
			continue
		}
		result.Upserted++
	}

	log.WithField("total", result.Total).
		WithField("upserted", result.Upserted).
		WithField("failed", result.Failed).
		Info("Загрузка каталога завершена")

	return result, nil
}
