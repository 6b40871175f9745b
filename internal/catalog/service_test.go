package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string {
	return "mock"
}

func (m *mockSource) Available(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockSource) Fetch(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockSource) FindOne(ctx context.Context, field models.LookupField, value string) (*models.Skill, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func TestService_ListSkills_UsesStore(t *testing.T) {
	store := new(mockSource)
	store.On("Available", mock.Anything).Return(true)
	store.On("Fetch", mock.Anything, mock.MatchedBy(func(f models.SkillFilter) bool {
		return f.Limit == models.NoLimit && f.Offset == 0
	})).Return(sampleRows(), nil)

	svc := NewService(store, NewStaticSource(nil))
	got, err := svc.ListSkills(context.Background(), models.SkillFilter{Limit: 2, Offset: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Equal(t, "mock", svc.Backend(context.Background()))
	store.AssertExpectations(t)
}

func TestService_ListSkills_FallsBackOnStoreError(t *testing.T) {
	store := new(mockSource)
	store.On("Available", mock.Anything).Return(true)
	store.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewService(store, NewStaticSource(sampleRows()))
	got, err := svc.ListSkills(context.Background(), models.SkillFilter{})

	require.NoError(t, err)
	assert.Equal(t, []string{"g", "a", "b", "z"}, ids(got))
}

func TestService_ListSkills_StoreUnavailable(t *testing.T) {
	store := new(mockSource)
	store.On("Available", mock.Anything).Return(false)

	svc := NewService(store, NewStaticSource(sampleRows()))
	got, err := svc.ListSkills(context.Background(), models.SkillFilter{Tag: "cli"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Equal(t, "static", svc.Backend(context.Background()))
	store.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestService_ListSkills_UnknownCategory(t *testing.T) {
	store := new(mockSource)
	svc := NewService(store, NewStaticSource(sampleRows()))

	got, err := svc.ListSkills(context.Background(), models.SkillFilter{Category: "games"})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	store.AssertNotCalled(t, "Available", mock.Anything)
}

func TestService_ListSkills_AllSourcesFail(t *testing.T) {
	store := new(mockSource)
	store.On("Available", mock.Anything).Return(true)
	store.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	fallback := new(mockSource)
	fallback.On("Available", mock.Anything).Return(true)
	fallback.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("broken fallback"))

	svc := NewService(store, fallback)
	got, err := svc.ListSkills(context.Background(), models.SkillFilter{})

	assert.Nil(t, got)
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.ErrCodeInternal, appErr.Code)
	assert.Equal(t, "catalog unavailable", appErr.Message)
}

func TestService_CountMatchesUnlimitedList(t *testing.T) {
	svc := NewService(nil, NewStaticSource(sampleRows()))
	ctx := context.Background()

	filters := []models.SkillFilter{
		{},
		{Tag: "cli"},
		{Category: "development", Limit: 1},
		{Featured: boolPtr(true), Offset: 1},
		{Search: "a"},
		{Category: "games"},
	}
	for _, f := range filters {
		count, err := svc.CountSkills(ctx, f)
		require.NoError(t, err)
		all, err := svc.ListSkills(ctx, f.WithoutPagination())
		require.NoError(t, err)
		assert.Equal(t, len(all), count, "%+v", f)
	}
}

func TestService_PaginationIsSliceOfFullList(t *testing.T) {
	src, err := EmbeddedSource()
	require.NoError(t, err)
	svc := NewService(nil, src)
	ctx := context.Background()

	full, err := svc.ListSkills(ctx, models.SkillFilter{Limit: models.NoLimit})
	require.NoError(t, err)

	for limit := 1; limit <= len(full)+1; limit++ {
		for offset := 0; offset <= len(full)+1; offset++ {
			page, err := svc.ListSkills(ctx, models.SkillFilter{Limit: limit, Offset: offset})
			require.NoError(t, err)

			start, end := min(offset, len(full)), min(offset+limit, len(full))
			assert.Equal(t, ids(full[start:end]), ids(page), "limit=%d offset=%d", limit, offset)
		}
	}
}

func TestService_ResolveSkill(t *testing.T) {
	rows := []models.Skill{
		{ID: "pdf", Slug: "x", Name: "First"},
		{ID: "2", Slug: "pdf", Name: "Second"},
		{ID: "3", Slug: "y", Name: "pdf"},
		{ID: "4", Slug: "docs", Name: "Docs"},
		{ID: "5", Slug: "z", Name: "Handbook"},
	}
	svc := NewService(nil, NewStaticSource(rows))
	ctx := context.Background()

	got, err := svc.ResolveSkill(ctx, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", got.ID)

	got, err = svc.ResolveSkill(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, "4", got.ID)

	got, err = svc.ResolveSkill(ctx, "Handbook")
	require.NoError(t, err)
	assert.Equal(t, "5", got.ID)

	got, err = svc.ResolveSkill(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_GetSkillBy(t *testing.T) {
	svc := NewService(nil, NewStaticSource(sampleRows()))
	ctx := context.Background()

	got, err := svc.GetSkillByID(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "Gamma", got.Name)

	got, err = svc.GetSkillByName(ctx, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	got, err = svc.GetSkillBySlug(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_ListPage(t *testing.T) {
	svc := NewService(nil, NewStaticSource(sampleRows()))

	page, err := svc.ListPage(context.Background(), models.SkillFilter{Category: "development", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Limit)
	assert.Equal(t, []string{"z"}, ids(page.Skills))

	page, err = svc.ListPage(context.Background(), models.SkillFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultListLimit, page.Limit)

	page, err = svc.ListPage(context.Background(), models.SkillFilter{Category: "games"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Skills)
}
