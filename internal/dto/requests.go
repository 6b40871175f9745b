package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/open-agent-labs/skills-catalog/internal/models"
)

// ListSkillsQuery represents catalog list filters from the query string
type ListSkillsQuery struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Official *bool  `form:"official"`
	Tag      string `form:"tag"`
	Search   string `form:"search"`
	Limit    *int   `form:"limit" binding:"omitempty,min=1"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the query into a catalog filter
func (q ListSkillsQuery) ToFilter() models.SkillFilter {
	// absent limit means the default page size
	limit := 0
	if q.Limit != nil {
		limit = *q.Limit
	}

	return models.SkillFilter{
		Category: strings.TrimSpace(q.Category),
		Featured: q.Featured,
		Official: q.Official,
		Tag:      strings.TrimSpace(q.Tag),
		Search:   strings.TrimSpace(q.Search),
		Limit:    limit,
		Offset:   q.Offset,
	}
}

// TagList accepts either "a, b" or ["a", "b"]
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*t = strings.Split(joined, ",")
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}
	*t = list
	return nil
}

// UpsertSkillRequest represents the request to create or update a skill.
// Absent id means create.
type UpsertSkillRequest struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	DescriptionZh string  `json:"descriptionZh"`
	Content       string  `json:"content"`
	ContentZh     string  `json:"contentZh"`
	Category      string  `json:"category" binding:"required"`
	Repository    string  `json:"repository" binding:"required"`
	Author        string  `json:"author"`
	Featured      bool    `json:"featured"`
	Official      bool    `json:"official"`
	Tags          TagList `json:"tags"`
}

// ToModel converts the request into a skill record
func (r UpsertSkillRequest) ToModel() models.Skill {
	return models.Skill{
		ID:            r.ID,
		Slug:          r.Slug,
		Name:          r.Name,
		Description:   r.Description,
		DescriptionZh: r.DescriptionZh,
		Content:       r.Content,
		ContentZh:     r.ContentZh,
		Category:      r.Category,
		Repository:    r.Repository,
		Author:        r.Author,
		Featured:      r.Featured,
		Official:      r.Official,
		Tags:          []string(r.Tags),
	}
}

// SeedRequest represents a bulk load request; empty skills means the embedded fallback set
type SeedRequest struct {
	Skills []UpsertSkillRequest `json:"skills"`
}

// GitHubPathQuery represents a path inside a repository
type GitHubPathQuery struct {
	Owner  string `form:"owner" binding:"required"`
	Repo   string `form:"repo" binding:"required"`
	Path   string `form:"path"`
	Branch string `form:"branch"`
}

// RepoMetaQuery accepts either a repository url or an owner/repo pair
type RepoMetaQuery struct {
	URL   string `form:"url"`
	Owner string `form:"owner"`
	Repo  string `form:"repo"`
}
