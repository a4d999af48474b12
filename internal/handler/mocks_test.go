package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/service"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// --- Mock VenueService ---

type mockVenueService struct {
	listFn    func(ctx context.Context) ([]dto.VenueArea, error)
	searchFn  func(ctx context.Context, term string) (dto.SearchResults, error)
	getFn     func(ctx context.Context, id uint) (*dto.VenueDetail, error)
	getEditFn func(ctx context.Context, id uint) (*models.Venue, error)
	createFn  func(ctx context.Context, v *models.Venue) error
	updateFn  func(ctx context.Context, id uint, p service.VenuePatch) (*models.Venue, error)
	deleteFn  func(ctx context.Context, id uint) error
}

func (m *mockVenueService) ListByArea(ctx context.Context) ([]dto.VenueArea, error) {
	return m.listFn(ctx)
}
func (m *mockVenueService) SearchVenues(ctx context.Context, term string) (dto.SearchResults, error) {
	return m.searchFn(ctx, term)
}
func (m *mockVenueService) GetVenue(ctx context.Context, id uint) (*dto.VenueDetail, error) {
	return m.getFn(ctx, id)
}
func (m *mockVenueService) GetVenueForEdit(ctx context.Context, id uint) (*models.Venue, error) {
	return m.getEditFn(ctx, id)
}
func (m *mockVenueService) CreateVenue(ctx context.Context, v *models.Venue) error {
	return m.createFn(ctx, v)
}
func (m *mockVenueService) UpdateVenue(ctx context.Context, id uint, p service.VenuePatch) (*models.Venue, error) {
	return m.updateFn(ctx, id, p)
}
func (m *mockVenueService) DeleteVenue(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock ArtistService ---

type mockArtistService struct {
	listFn    func(ctx context.Context) ([]dto.ArtistListing, error)
	searchFn  func(ctx context.Context, term string) (dto.SearchResults, error)
	getFn     func(ctx context.Context, id uint) (*dto.ArtistDetail, error)
	getEditFn func(ctx context.Context, id uint) (*models.Artist, error)
	createFn  func(ctx context.Context, a *models.Artist) error
	updateFn  func(ctx context.Context, id uint, p service.ArtistPatch) (*models.Artist, error)
	deleteFn  func(ctx context.Context, id uint) error
}

func (m *mockArtistService) ListArtists(ctx context.Context) ([]dto.ArtistListing, error) {
	return m.listFn(ctx)
}
func (m *mockArtistService) SearchArtists(ctx context.Context, term string) (dto.SearchResults, error) {
	return m.searchFn(ctx, term)
}
func (m *mockArtistService) GetArtist(ctx context.Context, id uint) (*dto.ArtistDetail, error) {
	return m.getFn(ctx, id)
}
func (m *mockArtistService) GetArtistForEdit(ctx context.Context, id uint) (*models.Artist, error) {
	return m.getEditFn(ctx, id)
}
func (m *mockArtistService) CreateArtist(ctx context.Context, a *models.Artist) error {
	return m.createFn(ctx, a)
}
func (m *mockArtistService) UpdateArtist(ctx context.Context, id uint, p service.ArtistPatch) (*models.Artist, error) {
	return m.updateFn(ctx, id, p)
}
func (m *mockArtistService) DeleteArtist(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock ShowService ---

type mockShowService struct {
	listFn   func(ctx context.Context) ([]dto.ShowListing, error)
	createFn func(ctx context.Context, s *models.Show) error
}

func (m *mockShowService) ListShows(ctx context.Context) ([]dto.ShowListing, error) {
	return m.listFn(ctx)
}
func (m *mockShowService) CreateShow(ctx context.Context, s *models.Show) error {
	return m.createFn(ctx, s)
}

// --- Test doubles for rendering and flashes ---

type recordingRenderer struct {
	name string
	data echo.Map
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.name = name
	r.data, _ = data.(echo.Map)
	_, err := io.WriteString(w, name)
	return err
}

type recordingFlasher struct {
	pending []string
	added   []string
}

func (f *recordingFlasher) Add(c echo.Context, msg string) {
	f.pending = append(f.pending, msg)
	f.added = append(f.added, msg)
}

func (f *recordingFlasher) Pop(c echo.Context) []string {
	out := f.pending
	f.pending = nil
	return out
}

func newEcho() (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	r := &recordingRenderer{}
	e.Renderer = r
	e.Validator = validation.New()
	return e, r
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func validVenueForm() url.Values {
	return url.Values{
		"name":         {"The Musical Hop"},
		"city":         {"San Francisco"},
		"state":        {"CA"},
		"address":      {"1015 Folsom Street"},
		"phone":        {"123-123-1234"},
		"genres":       {"Jazz", "Reggae"},
		"website_link": {"https://www.themusicalhop.com"},
	}
}

func validArtistForm() url.Values {
	return url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"phone":  {"326-123-5000"},
		"genres": {"Rock n Roll"},
	}
}
