// internal/app/repository/contact.go
package repository

import (
	"Contact-Search/internal/app/ds"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const importBatchSize = 100

// ContactRepository хранит контакты в PostgreSQL
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

// Search возвращает страницу контактов и общее количество совпадений
func (r *ContactRepository) Search(ctx context.Context, params SearchParams) ([]ds.Contact, int, error) {
	if err := validateParams(params); err != nil {
		return nil, 0, err
	}

	query := applyContactFilter(r.db.WithContext(ctx).Model(&ds.Contact{}), params.Query, params.Field).
		Session(&gorm.Session{})

	// Получаем общее количество записей
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	start, stop, ok := ds.PageBounds(params.Size, params.Offset, int(total))
	if !ok {
		return nil, 0, ErrOffsetOutOfRange
	}
	if start == stop {
		return []ds.Contact{}, int(total), nil
	}

	contacts := make([]ds.Contact, 0, stop-start)
	if err := pageContacts(query, start, stop-start, &contacts).Error; err != nil {
		return nil, 0, err
	}

	return contacts, int(total), nil
}

// pageContacts выбирает limit контактов начиная с start в порядке датасета
func pageContacts(query *gorm.DB, start, limit int, dest *[]ds.Contact) *gorm.DB {
	return query.
		Order("id ASC").
		Offset(start).
		Limit(limit).
		Find(dest)
}

// Replace заменяет содержимое таблицы одним транзакционным импортом
func (r *ContactRepository) Replace(ctx context.Context, contacts []ds.Contact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ds.Contact{}).Error; err != nil {
			return fmt.Errorf("failed to clear contacts: %w", err)
		}
		if len(contacts) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(contacts, importBatchSize).Error; err != nil {
			return fmt.Errorf("failed to import contacts: %w", err)
		}
		return nil
	})
}

// applyContactFilter добавляет условия поиска. Имя колонки подставляется
// в SQL только из ds.SearchFields.
func applyContactFilter(query *gorm.DB, text, field string) *gorm.DB {
	if text == "" {
		return query
	}

	pattern := "%" + escapeLike(text) + "%"
	if field != "" {
		return query.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", field), pattern)
	}

	// Любое из полей: (f1 LIKE ? OR f2 LIKE ? ...)
	conditions := make([]string, 0, len(ds.SearchFields))
	args := make([]interface{}, 0, len(ds.SearchFields))
	for _, name := range ds.SearchFields {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", name))
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы запрос искался как подстрока
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
