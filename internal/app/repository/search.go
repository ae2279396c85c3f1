package repository

import (
	"Contact-Search/internal/app/ds"
	"context"
	"errors"
)

var (
	ErrOffsetOutOfRange = errors.New("offset is past the end of the results")
	ErrUnknownField     = errors.New("unknown search field")
	ErrInvalidPage      = errors.New("size must be between 1 and 1000 and offset non-negative")
)

// SearchParams параметры поиска контактов.
// Пустой Field - поиск по всем полям из ds.SearchFields.
type SearchParams struct {
	Query  string
	Field  string
	Size   int
	Offset int
}

// ContactStore хранилище контактов, по которому работает GET /search
type ContactStore interface {
	// Search возвращает страницу size*offset..+size и общее число совпадений
	Search(ctx context.Context, params SearchParams) ([]ds.Contact, int, error)
	// Replace заменяет все контакты новым датасетом
	Replace(ctx context.Context, contacts []ds.Contact) error
}

func validateParams(params SearchParams) error {
	if params.Field != "" && !ds.IsSearchField(params.Field) {
		return ErrUnknownField
	}
	if params.Size <= 0 || params.Size > ds.MaxPageSize || params.Offset < 0 {
		return ErrInvalidPage
	}
	return nil
}
