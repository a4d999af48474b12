package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/service"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/validation"
	"github.com/labstack/echo/v4"
)

type ShowHandler struct {
	svc   service.ShowService
	flash Flasher
}

func NewShowHandler(svc service.ShowService, flash Flasher) *ShowHandler {
	return &ShowHandler{svc: svc, flash: flash}
}

func (h *ShowHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/shows")
	g.GET("", h.ListShows)
	g.GET("/create", h.NewShowForm)
	g.POST("/create", h.CreateShow)
}

func (h *ShowHandler) ListShows(c echo.Context) error {
	shows, err := h.svc.ListShows(c.Request().Context())
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/shows.html", echo.Map{"Shows": shows})
}

func (h *ShowHandler) NewShowForm(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, "forms/new_show.html", echo.Map{"Form": dto.ShowForm{}})
}

// CreateShow treats a venue or artist id that matches no record as a field
// error on the submitted form.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var form dto.ShowForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	data := echo.Map{"Form": form}
	if err := c.Validate(&form); err != nil {
		return invalidForm(c, h.flash, "forms/new_show.html", data, err)
	}

	show, fe := showFromForm(form)
	if len(fe) > 0 {
		return invalidForm(c, h.flash, "forms/new_show.html", data, fe)
	}

	err := h.svc.CreateShow(c.Request().Context(), show)
	switch {
	case errors.Is(err, service.ErrVenueNotFound):
		fe.Add("venue_id", "Venue #"+form.VenueID+" does not exist.")
		return invalidForm(c, h.flash, "forms/new_show.html", data, fe)
	case errors.Is(err, service.ErrArtistNotFound):
		fe.Add("artist_id", "Artist #"+form.ArtistID+" does not exist.")
		return invalidForm(c, h.flash, "forms/new_show.html", data, fe)
	case err != nil:
		h.flash.Add(c, "An error occurred. Show could not be listed.")
		return serverError(err)
	}

	h.flash.Add(c, "Show was successfully listed!")
	return render(c, h.flash, http.StatusOK, "pages/home.html", nil)
}

func showFromForm(form dto.ShowForm) (*models.Show, validation.FieldErrors) {
	fe := validation.FieldErrors{}
	show := &models.Show{}

	if id, err := strconv.ParseUint(form.VenueID, 10, 64); err != nil || id == 0 {
		fe.Add("venue_id", "Not a valid integer value.")
	} else {
		show.VenueID = uint(id)
	}
	if id, err := strconv.ParseUint(form.ArtistID, 10, 64); err != nil || id == 0 {
		fe.Add("artist_id", "Not a valid integer value.")
	} else {
		show.ArtistID = uint(id)
	}
	start, err := dto.ParseStartTime(form.StartTime)
	if err != nil {
		fe.Add("start_time", "Not a valid datetime value.")
	}
	show.StartTime = start

	return show, fe
}
