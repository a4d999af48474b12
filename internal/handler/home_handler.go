package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HomeHandler struct {
	flash Flasher
}

func NewHomeHandler(flash Flasher) *HomeHandler {
	return &HomeHandler{flash: flash}
}

func (h *HomeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)
}

func (h *HomeHandler) Index(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, "pages/home.html", nil)
}

func (h *HomeHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "listing-service"})
}
