package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/database"
)

// HealthController reports service liveness.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Health returns service status and verifies the database connection.
// GET /health
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": hc.version,
	})
}
