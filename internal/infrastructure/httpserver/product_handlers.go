package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techstore3d/backend/internal/core/domain/product"
)

func (s *Server) createProduct(c echo.Context) error {
	var req product.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a positive price are required")
	}
	p, err := s.productSvc.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.productSvc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) listProducts(c echo.Context) error {
	filter := &product.Filter{
		Category:    c.QueryParam("category"),
		ProductType: c.QueryParam("product_type"),
		Search:      c.QueryParam("search"),
	}
	if v := c.QueryParam("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid featured flag")
		}
		filter.Featured = &featured
	}
	if v := c.QueryParam("min_price"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid min_price")
		}
		filter.MinPrice = &minPrice
	}
	if v := c.QueryParam("max_price"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid max_price")
		}
		filter.MaxPrice = &maxPrice
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}

	products, err := s.productSvc.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) updateProduct(c echo.Context) error {
	var req product.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := s.productSvc.UpdateProduct(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c echo.Context) error {
	if err := s.productSvc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

func (s *Server) getRecommendations(c echo.Context) error {
	limit := 4
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	recs, err := s.productSvc.GetRecommendations(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) getTrendingProducts(c echo.Context) error {
	limit := 8
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	trending, err := s.productSvc.GetTrending(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, trending)
}

func (s *Server) getDashboardStats(c echo.Context) error {
	stats, err := s.productSvc.GetDashboardStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
