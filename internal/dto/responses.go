package dto

import (
	"github.com/open-agent-labs/skills-catalog/internal/github"
	"github.com/open-agent-labs/skills-catalog/internal/models"
)

// SkillListResponse represents one page of the catalog
type SkillListResponse struct {
	Skills []models.Skill `json:"skills"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// FileResponse represents raw file content fetched from a repository
type FileResponse struct {
	Path     string `json:"path"`
	Branch   string `json:"branch"`
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
	Binary   bool   `json:"binary"`
}

// NewFileResponse creates a FileResponse from a fetched file
func NewFileResponse(path string, file *github.File) *FileResponse {
	return &FileResponse{
		Path:     path,
		Branch:   file.Branch,
		Content:  string(file.Content),
		MimeType: file.MimeType,
		Binary:   file.Binary,
	}
}

// HealthResponse represents the health check result
type HealthResponse struct {
	Status  string            `json:"status"`
	Backend string            `json:"backend"`
	Checks  map[string]string `json:"checks"`
}
