package repository

import (
	"Contact-Search/internal/app/ds"
	"context"
	"strings"
	"sync"
)

// SnapshotRepository держит датасет в памяти и ищет по нему перебором
type SnapshotRepository struct {
	mu       sync.RWMutex
	contacts []ds.Contact
}

func NewSnapshotRepository(contacts []ds.Contact) *SnapshotRepository {
	return &SnapshotRepository{contacts: contacts}
}

func (r *SnapshotRepository) Search(ctx context.Context, params SearchParams) ([]ds.Contact, int, error) {
	if err := validateParams(params); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	contacts := r.contacts
	r.mu.RUnlock()

	results := contacts
	if params.Query != "" {
		results = filterContacts(contacts, params.Query, params.Field)
	}

	start, stop, ok := ds.PageBounds(params.Size, params.Offset, len(results))
	if !ok {
		return nil, 0, ErrOffsetOutOfRange
	}

	page := make([]ds.Contact, stop-start)
	copy(page, results[start:stop])
	return page, len(results), nil
}

func (r *SnapshotRepository) Replace(ctx context.Context, contacts []ds.Contact) error {
	r.mu.Lock()
	r.contacts = contacts
	r.mu.Unlock()
	return nil
}

// filterContacts - регистронезависимый поиск подстроки.
// Без поля контакт попадает в выдачу один раз, если совпало любое поле.
func filterContacts(contacts []ds.Contact, query, field string) []ds.Contact {
	needle := strings.ToLower(query)
	fields := ds.SearchFields
	if field != "" {
		fields = []string{field}
	}

	results := make([]ds.Contact, 0)
	for _, contact := range contacts {
		for _, name := range fields {
			value, _ := contact.FieldValue(name)
			if strings.Contains(strings.ToLower(value), needle) {
				results = append(results, contact)
				break
			}
		}
	}
	return results
}
