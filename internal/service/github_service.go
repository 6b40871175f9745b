package service

import (
	"context"
	"time"

	"github.com/open-agent-labs/skills-catalog/internal/github"
)

// TTL ответов прокси совпадают с подсказками Cache-Control.
const (
	GitHubContentsTTL = time.Hour
	GitHubRepoMetaTTL = 5 * time.Minute
)

// GitHubClient - операции клиента GitHub, нужные прокси.
type GitHubClient interface {
	ListDirectory(ctx context.Context, owner, repo, path, branch string) ([]github.Entry, error)
	FetchFileContent(ctx context.Context, owner, repo, path, branch string) (*github.File, error)
	FetchRepositoryMeta(ctx context.Context, owner, repo string) (*github.RepoMeta, error)
}

// GitHubService проксирует просмотр репозиториев и кэширует успешные ответы.
type GitHubService struct {
	client GitHubClient
	cache  *CacheService
}

// NewGitHubService создаёт сервис прокси. cache может быть nil.
func NewGitHubService(client GitHubClient, cache *CacheService) *GitHubService {
	return &GitHubService{client: client, cache: cache}
}

// Contents возвращает содержимое директории: сначала директории, затем файлы, по имени.
func (s *GitHubService) Contents(ctx context.Context, owner, repo, path, branch string) ([]github.Entry, error) {
	v, err := s.cached(GitHubContentsCacheKey(owner, repo, path, branch), GitHubContentsTTL, func() (interface{}, error) {
		entries, err := s.client.ListDirectory(ctx, owner, repo, path, branch)
		if err != nil {
			return nil, err
		}
		return github.SortEntries(entries), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]github.Entry), nil
}

// File возвращает сырое содержимое файла.
func (s *GitHubService) File(ctx context.Context, owner, repo, path, branch string) (*github.File, error) {
	v, err := s.cached(GitHubFileCacheKey(owner, repo, path, branch), GitHubContentsTTL, func() (interface{}, error) {
		return s.client.FetchFileContent(ctx, owner, repo, path, branch)
	})
	if err != nil {
		return nil, err
	}
	return v.(*github.File), nil
}

// RepoMeta возвращает метаданные репозитория.
func (s *GitHubService) RepoMeta(ctx context.Context, owner, repo string) (*github.RepoMeta, error) {
	v, err := s.cached(GitHubRepoMetaCacheKey(owner, repo), GitHubRepoMetaTTL, func() (interface{}, error) {
		return s.client.FetchRepositoryMeta(ctx, owner, repo)
	})
	if err != nil {
		return nil, err
	}
	return v.(*github.RepoMeta), nil
}

func (s *GitHubService) cached(key string, ttl time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	if s.cache == nil {
		return fn()
	}
	return s.cache.GetOrSet(key, ttl, fn)
}
