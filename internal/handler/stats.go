package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/repository"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(s *repository.StatsRepo) *StatsHandler {
	return &StatsHandler{Stats: s}
}

// Totals handles GET /api/stats.  The response shape matches what the
// dashboard consumes: totalStudents, totalTeachers, totalAdmins,
// totalCourses.
func (h *StatsHandler) Totals(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Stats.Totals(ctx)
	if err != nil {
		c.Logger().Errorf("stats: totals failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, s)
}
