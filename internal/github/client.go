package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/open-agent-labs/skills-catalog/internal/logger"
)

// UpstreamError - неуспешный ответ GitHub. Status - HTTP статус апстрима.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github: upstream responded with status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsNotFound сообщает, что апстрим ответил 404.
func IsNotFound(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Status == http.StatusNotFound
}

// Options - параметры клиента.
type Options struct {
	Token   string
	APIURL  string
	RawURL  string
	Timeout time.Duration
}

// Client ходит в REST API GitHub и на хост raw-контента.
type Client struct {
	api     *github.Client
	http    *http.Client
	rawBase string
}

// NewClient создаёт клиент. Без токена запросы идут анонимно с более строгими лимитами.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	log := logger.Component("github")

	var httpClient *http.Client
	if opts.Token == "" {
		log.Warn("GITHUB_TOKEN не задан, лимиты GitHub API будут ниже")
		httpClient = &http.Client{}
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = opts.Timeout

	api := github.NewClient(httpClient)
	if opts.APIURL != "" {
		base, err := url.Parse(opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("github: invalid api url %q: %w", opts.APIURL, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		api.BaseURL = base
	}

	rawBase := strings.TrimRight(opts.RawURL, "/")
	if rawBase == "" {
		rawBase = "https://raw.githubusercontent.com"
	}

	return &Client{api: api, http: httpClient, rawBase: rawBase}, nil
}

// Entry - элемент листинга директории.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int    `json:"size"`
	SHA         string `json:"sha"`
	HTMLURL     string `json:"html_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// IsDir сообщает, что элемент - директория.
func (e Entry) IsDir() bool {
	return e.Type == "dir"
}

// ListDirectory возвращает содержимое пути в репозитории.
// Если путь указывает на файл, результат - список из одного элемента.
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path, branch string) ([]Entry, error) {
	var entries []Entry
	err := c.withBranchFallback(ctx, branch, func(ref string) error {
		file, dir, resp, err := c.api.Repositories.GetContents(ctx, owner, repo, path,
			&github.RepositoryContentGetOptions{Ref: ref})
		if err != nil {
			return upstreamError(resp, err)
		}

		if file != nil {
			entries = []Entry{toEntry(file)}
			return nil
		}
		entries = make([]Entry, 0, len(dir))
		for _, item := range dir {
			entries = append(entries, toEntry(item))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// File - сырое содержимое файла.
type File struct {
	Content  []byte
	Branch   string
	MimeType string
	Binary   bool
}

// FetchFileContent читает файл с хоста raw-контента. Тело не декодируется.
func (c *Client) FetchFileContent(ctx context.Context, owner, repo, path, branch string) (*File, error) {
	var file *File
	err := c.withBranchFallback(ctx, branch, func(ref string) error {
		body, err := c.fetchRaw(ctx, owner, repo, ref, path)
		if err != nil {
			return err
		}
		mimeType, binary := FileKind(body)
		file = &File{Content: body, Branch: ref, MimeType: mimeType, Binary: binary}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (c *Client) fetchRaw(ctx context.Context, owner, repo, ref, path string) ([]byte, error) {
	rawURL := strings.Join([]string{
		c.rawBase,
		url.PathEscape(owner),
		url.PathEscape(repo),
		escapeSegments(ref),
		escapeSegments(path),
	}, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: build raw request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Status: http.StatusBadGateway, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: http.StatusBadGateway, Err: err}
	}
	return body, nil
}

// RepoMeta - метаданные репозитория. Отсутствующие поля - нули и null.
type RepoMeta struct {
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	OpenIssues    int        `json:"openIssues"`
	Watchers      int        `json:"watchers"`
	DefaultBranch string     `json:"defaultBranch"`
	Language      *string    `json:"language"`
	License       *string    `json:"license"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// FetchRepositoryMeta делает один запрос за метаданными репозитория.
func (c *Client) FetchRepositoryMeta(ctx context.Context, owner, repo string) (*RepoMeta, error) {
	r, resp, err := c.api.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, upstreamError(resp, err)
	}

	meta := &RepoMeta{
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Watchers:      r.GetWatchersCount(),
		DefaultBranch: r.GetDefaultBranch(),
		Language:      r.Language,
	}
	if name := r.GetLicense().GetName(); name != "" {
		meta.License = &name
	}
	if r.UpdatedAt != nil {
		updated := r.UpdatedAt.Time
		meta.UpdatedAt = &updated
	}
	return meta, nil
}

// withBranchFallback выполняет fn для branch, а при 404 повторяет для master.
// Итоговая ошибка несёт статус первой попытки.
func (c *Client) withBranchFallback(ctx context.Context, branch string, fn func(ref string) error) error {
	if branch == "" {
		branch = DefaultBranch
	}
	refs := []string{branch}
	if branch != FallbackBranch {
		refs = append(refs, FallbackBranch)
	}

	var firstErr error
	attempt := 0
	err := retry.Do(
		func() error {
			ref := refs[attempt]
			attempt++
			err := fn(ref)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			return err
		},
		retry.Attempts(uint(len(refs))),
		retry.RetryIf(IsNotFound),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Component("github").WithError(err).WithField("branch", branch).
				WithField("attempt", n+1).Debug("Ветка не найдена, пробуем fallback")
		}),
	)
	if err == nil {
		return nil
	}

	var first *UpstreamError
	if errors.As(firstErr, &first) {
		return &UpstreamError{Status: first.Status, Err: err}
	}
	return err
}

func upstreamError(resp *github.Response, err error) error {
	status := http.StatusBadGateway
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	return &UpstreamError{Status: status, Err: err}
}

func toEntry(c *github.RepositoryContent) Entry {
	return Entry{
		Name:        c.GetName(),
		Path:        c.GetPath(),
		Type:        c.GetType(),
		Size:        c.GetSize(),
		SHA:         c.GetSHA(),
		HTMLURL:     c.GetHTMLURL(),
		DownloadURL: c.GetDownloadURL(),
	}
}

// escapeSegments экранирует путь посегментно, сохраняя слэши.
func escapeSegments(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
