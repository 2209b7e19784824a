package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/database/books"
	"github.com/libreshelf/library/internal/entities"
)

// BooksStore defines database operations for catalog management.
type BooksStore interface {
	CreateBook(title string, authorNames, genreNames []string) (*entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	DeleteBook(id uint) error
}

type BooksController struct {
	store BooksStore
}

func NewBooksController(store BooksStore) *BooksController {
	return &BooksController{store: store}
}

type createBookRequest struct {
	Title   string   `json:"title" binding:"required"`
	Authors []string `json:"authors" binding:"required,min=1,dive,required"`
	Genres  []string `json:"genres" binding:"required,min=1,dive,required"`
}

// ListBooks returns all books with authors and genres resolved.
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	all, err := bc.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": all, "count": len(all)})
}

// GetBook returns a single book.
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// CreateBook creates a book with its author and genre associations.
// POST /books (admin)
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, authors and genres are required")
		return
	}

	book, err := bc.store.CreateBook(req.Title, req.Authors, req.Genres)
	switch {
	case errors.Is(err, books.ErrNoAuthors), errors.Is(err, books.ErrNoGenres):
		respondBadRequest(c, err.Error())
		return
	case err != nil:
		respondInternalError(c, err, "create book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

// DeleteBook removes a book and all its join rows.
// DELETE /books/:id (admin)
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := bc.store.DeleteBook(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	c.Status(http.StatusNoContent)
}
