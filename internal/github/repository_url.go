// Package github проксирует чтение репозиториев навыков из GitHub.
package github

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultBranch - ветка, если в ссылке она не указана.
const DefaultBranch = "main"

// FallbackBranch - ветка для повторной попытки после 404.
const FallbackBranch = "master"

// ErrUnparseableURL - ссылка не указывает на репозиторий github.com.
var ErrUnparseableURL = errors.New("github: unparseable repository url")

// RepoRef - координаты пути внутри репозитория.
type RepoRef struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
	Path   string `json:"path"`
}

// ParseRepositoryURL разбирает веб-ссылку вида
// https://github.com/{owner}/{repo}[/tree|blob/{branch}/{path}] или .../{repo}/{path}.
func ParseRepositoryURL(raw string) (*RepoRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrUnparseableURL
	}
	if !strings.EqualFold(u.Hostname(), "github.com") {
		return nil, ErrUnparseableURL
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return nil, ErrUnparseableURL
	}

	ref := &RepoRef{
		Owner:  segments[0],
		Repo:   strings.TrimSuffix(segments[1], ".git"),
		Branch: DefaultBranch,
	}

	rest := segments[2:]
	if len(rest) > 0 && (rest[0] == "tree" || rest[0] == "blob") {
		if len(rest) > 1 {
			ref.Branch = rest[1]
			rest = rest[2:]
		} else {
			rest = nil
		}
	}
	ref.Path = strings.TrimRight(strings.Join(rest, "/"), "/")

	return ref, nil
}
