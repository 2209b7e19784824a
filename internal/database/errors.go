package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrConflict indicates a store-level uniqueness violation. The unique
	// index is the source of truth for "already exists": a losing concurrent
	// writer surfaces here rather than producing a duplicate row.
	ErrConflict = errors.New("record already exists")

	// ErrNotFound indicates the referenced record is absent.
	ErrNotFound = errors.New("record not found")
)

// TranslateError maps gorm errors to the store's error taxonomy so that
// callers never branch on raw driver errors.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
