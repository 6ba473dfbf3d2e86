package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore3d/backend/internal/core/domain/cart"
	"github.com/techstore3d/backend/internal/core/domain/product"
)

func (s *Server) getCart(c echo.Context) error {
	result, err := s.cartSvc.GetCart(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) addCartItem(c echo.Context) error {
	var req cart.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	result, err := s.cartSvc.AddItem(c.Request().Context(), c.Param("session_id"), &req)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) removeCartItem(c echo.Context) error {
	result, err := s.cartSvc.RemoveItem(c.Request().Context(), c.Param("session_id"), c.Param("item_id"))
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "cart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) clearCart(c echo.Context) error {
	if err := s.cartSvc.ClearCart(c.Request().Context(), c.Param("session_id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}
