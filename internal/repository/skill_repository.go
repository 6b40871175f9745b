package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrSkillNotFound  = fmt.Errorf("skill: %w", common.ErrNotFound)
	ErrDuplicateName  = fmt.Errorf("skill name: %w", common.ErrAlreadyExists)
	ErrUnknownLookup  = errors.New("unknown lookup field")
	errNoTransactions = errors.New("skill repository: nil database")
)

// pingTimeout ограничивает проверку доступности хранилища.
const pingTimeout = 2 * time.Second

// skillRow - строка таблицы skills. Флаги хранятся как 0/1.
type skillRow struct {
	ID            string         `db:"id"`
	Slug          string         `db:"slug"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	DescriptionZh sql.NullString `db:"description_zh"`
	Content       sql.NullString `db:"content"`
	ContentZh     sql.NullString `db:"content_zh"`
	Category      string         `db:"category"`
	Repository    string         `db:"repository"`
	Author        sql.NullString `db:"author"`
	Featured      int            `db:"featured"`
	Official      int            `db:"official"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row *skillRow) toModel() models.Skill {
	createdAt, updatedAt := row.CreatedAt, row.UpdatedAt
	return models.Skill{
		ID:            row.ID,
		Slug:          row.Slug,
		Name:          row.Name,
		Description:   row.Description,
		DescriptionZh: row.DescriptionZh.String,
		Content:       row.Content.String,
		ContentZh:     row.ContentZh.String,
		Category:      row.Category,
		Repository:    row.Repository,
		Author:        row.Author.String,
		Featured:      row.Featured != 0,
		Official:      row.Official != 0,
		CreatedAt:     &createdAt,
		UpdatedAt:     &updatedAt,
	}
}

// SkillRepository отвечает за таблицы skills и skill_tags.
type SkillRepository struct {
	db *sqlx.DB
}

// NewSkillRepository создаёт новый экземпляр.
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// Name возвращает имя источника для логов и health-check.
func (r *SkillRepository) Name() string {
	return "database"
}

// Available проверяет, что хранилище отвечает.
func (r *SkillRepository) Available(ctx context.Context) bool {
	if r == nil || r.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return r.db.PingContext(ctx) == nil
}

// Fetch возвращает записи, отобранные фильтром, в порядке featured, official, name.
// Пагинация применяется вызывающей стороной.
func (r *SkillRepository) Fetch(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	if r.db == nil {
		return nil, errNoTransactions
	}

	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Featured != nil {
		conditions = append(conditions, "featured = ?")
		args = append(args, boolToInt(*filter.Featured))
	}
	if filter.Official != nil {
		conditions = append(conditions, "official = ?")
		args = append(args, boolToInt(*filter.Official))
	}

	// Фильтр по тегу: сначала id, затем пересечение
	if filter.Tag != "" {
		ids, err := r.skillIDsByTag(ctx, filter.Tag)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		conditions = append(conditions, "id IN (?)")
		args = append(args, ids)
	}

	query := `SELECT * FROM skills`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY featured DESC, official DESC, name ASC"

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("skill repository: build list query %w", err)
	}

	var rows []skillRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("skill repository: list %w", err)
	}

	// Поиск выполняется в Go: LOWER и LIKE в sqlite складывают регистр только для ASCII.
	skills := make([]models.Skill, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for i := range rows {
		skill := rows[i].toModel()
		if !skill.MatchesSearch(filter.Search) {
			continue
		}
		skills = append(skills, skill)
		ids = append(ids, skill.ID)
	}

	tags, err := r.tagsBySkillIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range skills {
		skills[i].Tags = tags[skills[i].ID]
	}

	return skills, nil
}

// FindOne ищет запись по точному совпадению поля. Отсутствие записи - (nil, nil).
func (r *SkillRepository) FindOne(ctx context.Context, field models.LookupField, value string) (*models.Skill, error) {
	if r.db == nil {
		return nil, errNoTransactions
	}

	switch field {
	case models.LookupByID, models.LookupBySlug, models.LookupByName:
	default:
		return nil, fmt.Errorf("skill repository: %w %q", ErrUnknownLookup, field)
	}

	row, err := common.GetByField[skillRow](ctx, r.db, "skills", string(field), value, ErrSkillNotFound)
	if err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("skill repository: %w", err)
	}

	skill := row.toModel()
	if skill.Tags, err = r.TagsFor(ctx, skill.ID); err != nil {
		return nil, err
	}
	return &skill, nil
}

// TagsFor возвращает теги записи; nil, если тегов нет.
func (r *SkillRepository) TagsFor(ctx context.Context, id string) ([]string, error) {
	tags, err := r.tagsBySkillIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return tags[id], nil
}

// Upsert сохраняет запись и заменяет набор её тегов в одной транзакции.
// Совпадение имени с другой записью возвращает ErrDuplicateName, ничего не меняя.
func (r *SkillRepository) Upsert(ctx context.Context, skill *models.Skill) error {
	if r.db == nil {
		return errNoTransactions
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO skills (id, slug, name, description, description_zh, content, content_zh,
		                    category, repository, author, featured, official, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			description = excluded.description,
			description_zh = excluded.description_zh,
			content = excluded.content,
			content_zh = excluded.content_zh,
			category = excluded.category,
			repository = excluded.repository,
			author = excluded.author,
			featured = excluded.featured,
			official = excluded.official,
			updated_at = excluded.updated_at
	`

	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(query),
			skill.ID,
			skill.Slug,
			skill.Name,
			skill.Description,
			nullString(skill.DescriptionZh),
			nullString(skill.Content),
			nullString(skill.ContentZh),
			skill.Category,
			skill.Repository,
			nullString(skill.Author),
			boolToInt(skill.Featured),
			boolToInt(skill.Official),
			now,
			now,
		)
		if err != nil {
			if common.IsUniqueViolation(err) {
				return ErrDuplicateName
			}
			return fmt.Errorf("skill repository: upsert %w", err)
		}

		return replaceTags(ctx, tx, skill.ID, skill.Tags)
	})
}

// Delete удаляет запись вместе с тегами.
func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return errNoTransactions
	}

	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		// sqlite без foreign_keys=ON не каскадирует
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM skill_tags WHERE skill_id = ?`), id); err != nil {
			return fmt.Errorf("skill repository: delete tags %w", err)
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM skills WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("skill repository: delete %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("skill repository: delete rows affected %w", err)
		}
		if affected == 0 {
			return ErrSkillNotFound
		}
		return nil
	})
}

// skillIDsByTag возвращает id записей с точно совпадающим тегом.
func (r *SkillRepository) skillIDsByTag(ctx context.Context, tag string) ([]string, error) {
	var ids []string
	query := r.db.Rebind(`SELECT skill_id FROM skill_tags WHERE tag = ?`)
	if err := r.db.SelectContext(ctx, &ids, query, tag); err != nil {
		return nil, fmt.Errorf("skill repository: ids by tag %w", err)
	}
	return ids, nil
}

// tagsBySkillIDs загружает теги пачки записей одним запросом.
func (r *SkillRepository) tagsBySkillIDs(ctx context.Context, ids []string) (map[string][]string, error) {
	result := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT skill_id, tag FROM skill_tags WHERE skill_id IN (?) ORDER BY tag`, ids)
	if err != nil {
		return nil, fmt.Errorf("skill repository: build tags query %w", err)
	}

	var rows []struct {
		SkillID string `db:"skill_id"`
		Tag     string `db:"tag"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("skill repository: load tags %w", err)
	}

	for _, row := range rows {
		result[row.SkillID] = append(result[row.SkillID], row.Tag)
	}
	return result, nil
}

// replaceTags приводит набор тегов записи к tags: лишние удаляются, новые добавляются.
func replaceTags(ctx context.Context, tx *sqlx.Tx, skillID string, tags []string) error {
	if len(tags) == 0 {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM skill_tags WHERE skill_id = ?`), skillID); err != nil {
			return fmt.Errorf("skill repository: clear tags %w", err)
		}
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM skill_tags WHERE skill_id = ? AND tag NOT IN (?)`, skillID, tags)
	if err != nil {
		return fmt.Errorf("skill repository: build tags cleanup %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("skill repository: remove stale tags %w", err)
	}

	inserter := common.NewBatchInserter(tx, `INSERT INTO skill_tags (skill_id, tag)`, `ON CONFLICT (skill_id, tag) DO NOTHING`, 2, 100)
	for _, tag := range tags {
		if err := inserter.Add(ctx, skillID, tag); err != nil {
			return fmt.Errorf("skill repository: insert tags %w", err)
		}
	}
	if err := inserter.Flush(ctx); err != nil {
		return fmt.Errorf("skill repository: insert tags %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
