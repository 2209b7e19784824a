package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/auth"
	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/entities"
)

// FavouritesStore defines database operations for favourites management.
type FavouritesStore interface {
	AddFavourite(userID, bookID uint) error
	RemoveFavourite(userID, bookID uint) error
	GetFavouriteBooks(userID uint) ([]entities.Book, error)
}

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

// AddFavourite adds a book to the user's favourites. Adding a book that is
// already favourited succeeds without creating a second join row.
// POST /users/:id/favorites/:book_id
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	if !auth.RequireSelf(c, userID) {
		return
	}

	err := fc.store.AddFavourite(userID, bookID)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "add favourite")
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveFavourite removes a book from the user's favourites. Removing a
// book that is not favourited is a no-op.
// DELETE /users/:id/favorites/:book_id
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	if !auth.RequireSelf(c, userID) {
		return
	}

	if err := fc.store.RemoveFavourite(userID, bookID); err != nil {
		respondInternalError(c, err, "remove favourite")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFavourites returns the user's favourite books with authors and genres
// resolved.
// GET /users/:id/favorites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !auth.RequireSelf(c, userID) {
		return
	}

	favourites, err := fc.store.GetFavouriteBooks(userID)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": favourites, "count": len(favourites)})
}
