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

type ArtistHandler struct {
	svc   service.ArtistService
	flash Flasher
}

func NewArtistHandler(svc service.ArtistService, flash Flasher) *ArtistHandler {
	return &ArtistHandler{svc: svc, flash: flash}
}

func (h *ArtistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/artists")
	g.GET("", h.ListArtists)
	g.POST("/search", h.SearchArtists)
	g.GET("/create", h.NewArtistForm)
	g.POST("/create", h.CreateArtist)
	g.GET("/:id", h.GetArtist)
	g.DELETE("/:id/delete", h.DeleteArtist)
	g.GET("/:id/edit", h.EditArtistForm)
	g.POST("/:id/edit", h.UpdateArtist)
}

func (h *ArtistHandler) ListArtists(c echo.Context) error {
	artists, err := h.svc.ListArtists(c.Request().Context())
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/artists.html", echo.Map{"Artists": artists})
}

func (h *ArtistHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.svc.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/search_artists.html", echo.Map{
		"Results":    results,
		"SearchTerm": term,
	})
}

func (h *ArtistHandler) GetArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return artistNotFound(c.Param("id"))
	}

	artist, err := h.svc.GetArtist(c.Request().Context(), id)
	if errors.Is(err, service.ErrArtistNotFound) {
		return artistNotFound(c.Param("id"))
	}
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "pages/show_artist.html", echo.Map{"Artist": artist})
}

func (h *ArtistHandler) NewArtistForm(c echo.Context) error {
	return render(c, h.flash, http.StatusOK, "forms/new_artist.html", echo.Map{"Form": dto.ArtistForm{}})
}

func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	var form dto.ArtistForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return invalidForm(c, h.flash, "forms/new_artist.html", echo.Map{"Form": form}, err)
	}

	artist := form.ToModel()
	if err := h.svc.CreateArtist(c.Request().Context(), &artist); err != nil {
		h.flash.Add(c, "An error occurred. Artist "+form.Name+" could not be listed.")
		return serverError(err)
	}

	h.flash.Add(c, "Artist "+artist.Name+" was successfully listed!")
	return render(c, h.flash, http.StatusOK, "pages/home.html", nil)
}

func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return artistNotFound(c.Param("id"))
	}

	artist, err := h.svc.GetArtistForEdit(c.Request().Context(), id)
	if errors.Is(err, service.ErrArtistNotFound) {
		return artistNotFound(c.Param("id"))
	}
	if err != nil {
		return serverError(err)
	}
	return render(c, h.flash, http.StatusOK, "forms/edit_artist.html", echo.Map{
		"ID":   artist.ID,
		"Form": dto.ArtistFormFrom(artist),
	})
}

func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return artistNotFound(c.Param("id"))
	}

	var form dto.ArtistForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return invalidForm(c, h.flash, "forms/edit_artist.html", echo.Map{"ID": id, "Form": form}, err)
	}

	patch := service.NewArtistPatch(form, formHas(c, "seeking_venue"))
	artist, err := h.svc.UpdateArtist(c.Request().Context(), id, patch)
	if errors.Is(err, service.ErrArtistNotFound) {
		return artistNotFound(c.Param("id"))
	}
	if err != nil {
		h.flash.Add(c, "An error occurred. Artist "+form.Name+" could not be updated.")
		return serverError(err)
	}

	h.flash.Add(c, "Artist "+artist.Name+" was successfully updated!")
	return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(uint64(artist.ID), 10))
}

// DeleteArtist answers with JSON; the detail page script navigates home on
// success.
func (h *ArtistHandler) DeleteArtist(c echo.Context) error {
	raw := c.Param("id")
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Artist #%s not found", raw)})
	}

	err := h.svc.DeleteArtist(c.Request().Context(), id)
	if errors.Is(err, service.ErrArtistNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Artist #%s not found", raw)})
	}
	if err != nil {
		h.flash.Add(c, "An error occurred. Artist could not be deleted.")
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An error occurred. Artist could not be deleted."})
	}

	h.flash.Add(c, "Artist successfully deleted!")
	return c.JSON(http.StatusOK, dto.ErrorResponse{Success: true})
}

func artistNotFound(id string) error {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Artist #%s not found", id))
}
