package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/user"
)

func (s *Server) createUser(c echo.Context) error {
	var req user.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and name are required")
	}
	u, err := s.userSvc.CreateUser(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "user with this email already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) getUser(c echo.Context) error {
	u, err := s.userSvc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) listFavorites(c echo.Context) error {
	favs, err := s.userSvc.ListFavorites(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, favs)
}

func (s *Server) addFavorite(c echo.Context) error {
	err := s.userSvc.AddFavorite(c.Request().Context(), c.Param("id"), c.Param("product_id"))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case errors.Is(err, product.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product added to favorites"})
}

func (s *Server) removeFavorite(c echo.Context) error {
	err := s.userSvc.RemoveFavorite(c.Request().Context(), c.Param("id"), c.Param("product_id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product removed from favorites"})
}
