package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/review"
)

func (s *Server) createReview(c echo.Context) error {
	var req review.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rev, err := s.reviewSvc.CreateReview(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidRating):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, product.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, review.ErrDuplicate):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, rev)
}

func (s *Server) listProductReviews(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	reviews, err := s.reviewSvc.ListProductReviews(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}

func (s *Server) getProductReviewStats(c echo.Context) error {
	stats, err := s.reviewSvc.GetProductReviewStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
