package models

// Category константы категорий каталога. Набор закрыт.
const (
	CategoryDevelopment  = "development"
	CategoryDesign       = "design"
	CategoryData         = "data"
	CategoryDevOps       = "devops"
	CategoryDocuments    = "documents"
	CategoryProductivity = "productivity"
	CategoryResearch     = "research"
	CategorySecurity     = "security"
	CategoryOther        = "other"
)

// Categories - категории в порядке отображения.
var Categories = []string{
	CategoryDevelopment,
	CategoryDesign,
	CategoryData,
	CategoryDevOps,
	CategoryDocuments,
	CategoryProductivity,
	CategoryResearch,
	CategorySecurity,
	CategoryOther,
}

// ValidCategories список валидных категорий
var ValidCategories = map[string]struct{}{
	CategoryDevelopment:  {},
	CategoryDesign:       {},
	CategoryData:         {},
	CategoryDevOps:       {},
	CategoryDocuments:    {},
	CategoryProductivity: {},
	CategoryResearch:     {},
	CategorySecurity:     {},
	CategoryOther:        {},
}

// IsValidCategory проверяет принадлежность значения закрытому набору.
func IsValidCategory(category string) bool {
	_, ok := ValidCategories[category]
	return ok
}

// DefaultListLimit - лимит выдачи, если клиент его не передал.
const DefaultListLimit = 1000
