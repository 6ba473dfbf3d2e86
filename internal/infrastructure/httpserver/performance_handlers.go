package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) getCacheStats(c echo.Context) error {
	stats := s.cacheBackend.Stats(c.Request().Context())
	return c.JSON(http.StatusOK, stats)
}

// clearCache drops cached entries; an optional pattern scopes the clear, the
// default wipes everything.
func (s *Server) clearCache(c echo.Context) error {
	pattern := c.QueryParam("pattern")
	if pattern == "" {
		pattern = "*"
	}
	cleared := s.cacheBackend.ClearMatching(c.Request().Context(), pattern)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"cleared": cleared,
		"pattern": pattern,
	})
}

func (s *Server) getDatabaseStats(c echo.Context) error {
	stats, err := s.optimizer.GetCollectionStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) optimizeDatabase(c echo.Context) error {
	reports, err := s.optimizer.CreateIndexes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "database optimization completed",
		"indexes": reports,
	})
}

func (s *Server) analyzeQuery(c echo.Context) error {
	collection := c.Param("collection")

	// Query parameters other than limit become equality filters.
	query := map[string]any{}
	limit := 10
	for name, values := range c.QueryParams() {
		if len(values) == 0 {
			continue
		}
		if name == "limit" {
			parsed, err := strconv.Atoi(values[0])
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
			}
			limit = parsed
			continue
		}
		query[name] = values[0]
	}

	analysis, err := s.optimizer.AnalyzeQuery(c.Request().Context(), collection, query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, analysis)
}
