package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
	"github.com/open-agent-labs/skills-catalog/internal/repository"
)

func TestSeedService_Seed(t *testing.T) {
	store := new(mockSkillStore)
	seeder := NewSeedService(NewSkillService(store))

	ok := validInput()
	ok.ID = "ok"
	dup := validInput()
	dup.ID = "dup"
	dup.Name = "Taken"
	invalid := validInput()
	invalid.ID = "bad"
	invalid.Category = "games"

	store.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.Skill) bool { return s.ID == "ok" })).Return(nil)
	store.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.Skill) bool { return s.ID == "dup" })).Return(repository.ErrDuplicateName)
	store.On("FindOne", mock.Anything, models.LookupByID, "ok").Return(&models.Skill{ID: "ok"}, nil)

	result, err := seeder.Seed(context.Background(), []models.Skill{ok, dup, invalid})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "dup", result.Failures[0].ID)
	assert.Equal(t, apperror.ErrDuplicateName.Message, result.Failures[0].Error)
	assert.Equal(t, "bad", result.Failures[1].ID)
}

func TestSeedService_NoStore(t *testing.T) {
	seeder := NewSeedService(NewSkillService(nil))

	_, err := seeder.Seed(context.Background(), []models.Skill{validInput()})
	assert.Same(t, apperror.ErrStoreNotConfigured, err)
}

func TestSeedService_StopsOnCancelledContext(t *testing.T) {
	store := new(mockSkillStore)
	seeder := NewSeedService(NewSkillService(store))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := seeder.Seed(ctx, []models.Skill{validInput()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Upserted)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
