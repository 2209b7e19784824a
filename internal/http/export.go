package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/exporters"
)

// ExportController serves catalog exports.
type ExportController struct {
	exporter *exporters.CSVExporter
}

func NewExportController(exporter *exporters.CSVExporter) *ExportController {
	return &ExportController{exporter: exporter}
}

// ExportCSV streams the whole catalog as CSV.
// GET /books/export/csv (admin)
func (ec *ExportController) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := ec.exporter.Export(&buf); err != nil {
		respondInternalError(c, err, "export catalog")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="books.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
