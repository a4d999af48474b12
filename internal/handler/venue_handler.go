package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/service"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	svc   service.VenueService
	flash Flasher
}

func NewVenueHandler(svc service.VenueService, flash Flasher) *VenueHandler {
	return &VenueHandler{svc: svc, flash: flash}
}

func (h *VenueHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/venues")
	g.GET("", h.ListVenues)
	g.POST("/search", h.SearchVenues)
	g.GET("/create", h.NewVenueForm)
	g.POST("/create", h.CreateVenue)
	g.GET("/:id", h.GetVenue)
	g.DELETE("/:id/delete", h.DeleteVenue)
	g.GET("/:id/edit", h.EditVenueForm)
	g.POST("/:id/edit", h.UpdateVenue)
}

func (h *VenueHandler) ListVenues(c echo.Context) error {
	areas, err := h.svc.ListByArea(c.Request().Context())
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/venues.html", echo.Map{"Areas": areas})
}

func (h *VenueHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.svc.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/search_venues.html", echo.Map{
		"Results":    results,
		"SearchTerm": term,
	})
}

func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return venueNotFound(c.Param("id"))
	}

	venue, err := h.svc.GetVenue(c.Request().Context(), id)
	if errors.Is(err, service.ErrVenueNotFound) {
		return venueNotFound(c.Param("id"))
	}
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/show_venue.html", echo.Map{"Venue": venue})
}

func (h *VenueHandler) NewVenueForm(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, "forms/new_venue.html", echo.Map{"Form": dto.VenueForm{}})
}

func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var form dto.VenueForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return invalidForm(c, h.flash, "forms/new_venue.html", echo.Map{"Form": form}, err)
	}

	venue := form.ToModel()
	if err := h.svc.CreateVenue(c.Request().Context(), &venue); err != nil {
		h.flash.Add(c, "An error occurred. Venue "+form.Name+" could not be listed.")
		return serverError(err)
	}

	h.flash.Add(c, "Venue "+venue.Name+" was successfully listed!")
	return render(c, h.flash, http.StatusOK, "pages/home.html", nil)
}

func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return venueNotFound(c.Param("id"))
	}

	venue, err := h.svc.GetVenueForEdit(c.Request().Context(), id)
	if errors.Is(err, service.ErrVenueNotFound) {
		return venueNotFound(c.Param("id"))
	}
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "forms/edit_venue.html", echo.Map{
		"ID":   venue.ID,
		"Form": dto.VenueFormFrom(venue),
	})
}

func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return venueNotFound(c.Param("id"))
	}

	var form dto.VenueForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return invalidForm(c, h.flash, "forms/edit_venue.html", echo.Map{"ID": id, "Form": form}, err)
	}

	patch := service.NewVenuePatch(form, formHas(c, "seeking_talent"))
	venue, err := h.svc.UpdateVenue(c.Request().Context(), id, patch)
	if errors.Is(err, service.ErrVenueNotFound) {
		return venueNotFound(c.Param("id"))
	}
	if err != nil {
		h.flash.Add(c, "An error occurred. Venue "+form.Name+" could not be updated.")
		return serverError(err)
	}

	h.flash.Add(c, "Venue "+venue.Name+" was successfully updated!")
	return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(uint64(venue.ID), 10))
}

// DeleteVenue answers with JSON; the detail page script navigates home on
// success.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	raw := c.Param("id")
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Venue #%s not found", raw)})
	}

	err := h.svc.DeleteVenue(c.Request().Context(), id)
	if errors.Is(err, service.ErrVenueNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Venue #%s not found", raw)})
	}
	if err != nil {
		h.flash.Add(c, "An error occurred. Venue could not be deleted.")
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An error occurred. Venue could not be deleted."})
	}

	h.flash.Add(c, "Venue successfully deleted!")
	return c.JSON(http.StatusOK, dto.ErrorResponse{Success: true})
}

func venueNotFound(id string) error {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Venue #%s not found", id))
}
