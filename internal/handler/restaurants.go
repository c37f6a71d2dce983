package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmarkov/restaurant-manager/internal/repository"
)

// RestaurantHandler serves the public restaurant index, the application's
// default landing page.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
}

func NewRestaurantHandler(restaurants *repository.RestaurantRepo) *RestaurantHandler {
	return &RestaurantHandler{Restaurants: restaurants}
}

// Index handles GET /restaurants.
func (h *RestaurantHandler) Index(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Restaurants.List(ctx)
	if err != nil {
		return renderFailure(c)
	}
	return c.Render(http.StatusOK, "restaurants.html", list)
}
