// Package exporters renders the catalog in exchange formats.
package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/libreshelf/library/internal/entities"
)

// BookReader provides read access to the catalog for exporters.
type BookReader interface {
	GetAllBooks() ([]entities.Book, error)
}

// CSVExporter writes the full catalog as CSV with one row per book.
// Author and genre names are joined with ";" inside their cells.
type CSVExporter struct {
	reader BookReader
}

func NewCSVExporter(reader BookReader) *CSVExporter {
	return &CSVExporter{reader: reader}
}

// Export writes the catalog to w. Rows: id, title, authors, genres.
func (e *CSVExporter) Export(w io.Writer) error {
	books, err := e.reader.GetAllBooks()
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "title", "authors", "genres"}); err != nil {
		return err
	}

	for _, book := range books {
		authors := make([]string, 0, len(book.Authors))
		for _, a := range book.Authors {
			authors = append(authors, a.Name)
		}
		genres := make([]string, 0, len(book.Genres))
		for _, g := range book.Genres {
			genres = append(genres, g.Name)
		}

		row := []string{
			strconv.FormatUint(uint64(book.ID), 10),
			book.Title,
			strings.Join(authors, ";"),
			strings.Join(genres, ";"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
