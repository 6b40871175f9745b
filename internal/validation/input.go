package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/open-agent-labs/skills-catalog/internal/models"
)

// Константы валидации
const (
	MaxNameLength        = 100
	MaxSlugLength        = 120
	MaxDescriptionLength = 1000
	MaxContentLength     = 100000
	MaxAuthorLength      = 100
	MaxRepositoryLength  = 500
	MaxTagLength         = 50
	MaxTagsCount         = 30
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateCategory проверяет принадлежность категории закрытому набору.
func ValidateCategory(category string) error {
	if err := ValidateNonEmpty("category", category); err != nil {
		return err
	}
	if !models.IsValidCategory(category) {
		return fmt.Errorf("category %q is not supported", category)
	}
	return nil
}

// ValidateRepositoryURL проверяет формат ссылки на репозиторий. Доступность не проверяется.
func ValidateRepositoryURL(link string) error {
	if err := ValidateNonEmpty("repository", link); err != nil {
		return err
	}

	link = strings.TrimSpace(link)
	if err := ValidateLength("repository", link, 0, MaxRepositoryLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("repository must be a valid url")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("repository must start with http:// or https://")
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("repository must contain a host")
	}
	return nil
}

// ValidateTags проверяет уже нормализованный набор тегов.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("a skill can have at most %d tags", MaxTagsCount)
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("tag %q is longer than %d characters", tag, MaxTagLength)
		}
	}
	return nil
}

// ValidateSkill проверяет запись перед сохранением.
func ValidateSkill(skill *models.Skill) error {
	if err := ValidateNonEmpty("name", skill.Name); err != nil {
		return err
	}
	if err := ValidateLength("name", skill.Name, 1, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("description", skill.Description); err != nil {
		return err
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"slug", skill.Slug, MaxSlugLength},
		{"description", skill.Description, MaxDescriptionLength},
		{"descriptionZh", skill.DescriptionZh, MaxDescriptionLength},
		{"content", skill.Content, MaxContentLength},
		{"contentZh", skill.ContentZh, MaxContentLength},
		{"author", skill.Author, MaxAuthorLength},
	}
	for _, l := range lengths {
		if err := ValidateLength(l.field, l.value, 0, l.max); err != nil {
			return err
		}
	}

	if err := ValidateCategory(skill.Category); err != nil {
		return err
	}
	if err := ValidateRepositoryURL(skill.Repository); err != nil {
		return err
	}
	return ValidateTags(skill.Tags)
}
