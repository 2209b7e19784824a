// Package books provides database operations for catalog management.
//
// Book mutations run inside a transaction so that a book and its
// author/genre associations are committed atomically or not at all.
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/entities"
)

var (
	ErrNoAuthors = errors.New("book requires at least one author")
	ErrNoGenres  = errors.New("book requires at least one genre")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook creates a book with its author and genre associations in a
// single transaction. Authors and genres are matched by exact name and
// reused when they already exist.
func (r *Repository) CreateBook(title string, authorNames, genreNames []string) (*entities.Book, error) {
	if len(authorNames) == 0 {
		return nil, ErrNoAuthors
	}
	if len(genreNames) == 0 {
		return nil, ErrNoGenres
	}

	var book *entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		authors := make([]entities.Author, 0, len(authorNames))
		for _, name := range authorNames {
			author, err := getOrCreateAuthor(tx, name)
			if err != nil {
				return err
			}
			authors = append(authors, *author)
		}

		genres := make([]entities.Genre, 0, len(genreNames))
		for _, name := range genreNames {
			genre, err := getOrCreateGenre(tx, name)
			if err != nil {
				return err
			}
			genres = append(genres, *genre)
		}

		book = &entities.Book{
			Title:   title,
			Authors: authors,
			Genres:  genres,
		}
		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID retrieves a book with its authors and genres resolved.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors").Preload("Genres").First(&book, id).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// GetAllBooks retrieves all books with their authors and genres resolved.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Authors").Preload("Genres").Find(&books).Error
	return books, err
}

// DeleteBook hard-deletes a book together with its join rows: author and
// genre memberships and every user's favourite referencing it.
// Returns database.ErrNotFound if the book does not exist.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return database.TranslateError(err)
		}
		return tx.Select(clause.Associations).Delete(&book).Error
	})
}

// getOrCreateAuthor looks up an author by exact name, creating it when
// absent. A racing insert loses to the unique index; on conflict the row
// that won is re-read instead of failing the whole transaction.
func getOrCreateAuthor(tx *gorm.DB, name string) (*entities.Author, error) {
	var author entities.Author
	err := tx.Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author = entities.Author{Name: name}
	err = tx.Create(&author).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if err := tx.Where("name = ?", name).First(&author).Error; err != nil {
			return nil, err
		}
		return &author, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create author %q: %w", name, err)
	}
	return &author, nil
}

func getOrCreateGenre(tx *gorm.DB, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := tx.Where("name = ?", name).First(&genre).Error
	if err == nil {
		return &genre, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre = entities.Genre{Name: name}
	err = tx.Create(&genre).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if err := tx.Where("name = ?", name).First(&genre).Error; err != nil {
			return nil, err
		}
		return &genre, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create genre %q: %w", name, err)
	}
	return &genre, nil
}
