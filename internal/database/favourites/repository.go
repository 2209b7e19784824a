// Package favourites provides database operations for the user↔book
// favourites relation.
//
// The relation is pure join rows (user_favorites) with a composite primary
// key, so adding is idempotent and removing a missing row is a no-op.
package favourites

import (
	"gorm.io/gorm"

	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavourite adds a book to the user's favourites. Adding a book that is
// already favourited is a no-op, not an error. Returns database.ErrNotFound
// if the book does not exist.
func (r *Repository) AddFavourite(userID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return database.TranslateError(err)
		}

		// Association Append inserts the join row with ON CONFLICT DO
		// NOTHING, so the composite key keeps the pair unique.
		user := entities.User{ID: userID}
		return tx.Model(&user).Association("Favorites").Append(&book)
	})
}

// RemoveFavourite removes a book from the user's favourites. Removing a
// book that is not favourited is a no-op.
func (r *Repository) RemoveFavourite(userID, bookID uint) error {
	user := entities.User{ID: userID}
	book := entities.Book{ID: bookID}
	return r.db.Model(&user).Association("Favorites").Delete(&book)
}

// GetFavouriteBooks returns the user's favourite books with authors and
// genres resolved.
func (r *Repository) GetFavouriteBooks(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN user_favorites ON user_favorites.book_id = books.id").
		Where("user_favorites.user_id = ?", userID).
		Preload("Authors").Preload("Genres").
		Find(&books).Error
	return books, err
}

// CountFavourites returns the number of join rows for a (user, book) pair.
// Used by tests to assert the at-most-once invariant.
func (r *Repository) CountFavourites(userID, bookID uint) (int64, error) {
	var count int64
	err := r.db.Table("user_favorites").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count, err
}
