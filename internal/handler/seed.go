package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/database"
)

// SeedHandler exposes the sample-catalog seeding operation. Seeding
// wipes the events table and inserts the bundled demo events, so it is
// meant for development and demo environments only.
type SeedHandler struct {
	DB *sql.DB
}

func NewSeedHandler(db *sql.DB) *SeedHandler { return &SeedHandler{DB: db} }

// Seed handles GET /seed.
func (h *SeedHandler) Seed(c echo.Context) error {
	n, err := database.SeedEvents(c.Request().Context(), h.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Events seeded", "count": n})
}
