package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/Eursukkul/booking-microservice/listing-service/config"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/flash"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/handler"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/service"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/validation"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/view"
	"github.com/Eursukkul/booking-microservice/listing-service/pkg/database"
	"github.com/Eursukkul/booking-microservice/listing-service/pkg/logger"
	"github.com/Eursukkul/booking-microservice/listing-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger.SetGlobal(logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout))

	db, err := database.NewPostgresDB(cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}

	// RabbitMQ publisher: listing change notifications, optional
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to RabbitMQ")
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
	} else {
		log.Info().Msg("RABBITMQ_URL not set, listing events are not published")
	}

	// Repositories
	venueRepo := repository.NewVenueRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	showRepo := repository.NewShowRepository(db)

	// Services
	venueSvc := service.NewVenueService(venueRepo, showRepo, publisher, nil)
	artistSvc := service.NewArtistService(artistRepo, showRepo, publisher, nil)
	showSvc := service.NewShowService(showRepo, venueRepo, artistRepo, publisher, nil)

	sessionKey, err := cfg.SessionKey()
	if err != nil {
		log.Fatal().Err(err).Msg("session key")
	}
	flashes := flash.NewStore(sessionKey)

	renderer, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = validation.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(flashes)
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echoMw.Recover())

	handler.NewHomeHandler(flashes).RegisterRoutes(e)
	handler.NewVenueHandler(venueSvc, flashes).RegisterRoutes(e)
	handler.NewArtistHandler(artistSvc, flashes).RegisterRoutes(e)
	handler.NewShowHandler(showSvc, flashes).RegisterRoutes(e)

	log.Info().Str("addr", cfg.Addr()).Msg("Listing Service starting")
	if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
