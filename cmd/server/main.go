package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/config"
	"github.com/showgrid/showgrid/internal/database"
	"github.com/showgrid/showgrid/internal/handler"
	"github.com/showgrid/showgrid/internal/middleware"
	"github.com/showgrid/showgrid/internal/payment"
	"github.com/showgrid/showgrid/internal/queue"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/router"
	"github.com/showgrid/showgrid/internal/wizard"
)

func main() {
	_ = godotenv.Load() // .env is optional, real env always wins

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	// Wizard sessions live in Redis so a browser reload or a server
	// restart resumes the flow; without Redis they live in memory.
	var sessions wizard.SessionStore
	if rdb != nil {
		sessions = wizard.NewRedisStore(rdb, cfg.WizardSessionTTL)
	} else {
		log.Println("redis unavailable, wizard sessions held in memory")
		sessions = wizard.NewMemoryStore()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	venues := repository.NewVenueRepo(db)
	shows := repository.NewShowRepo(db)
	events := repository.NewEventRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	tiers := repository.NewPriceTierRepo(db)
	sections := repository.NewSeatSectionRepo(db)
	bookings := repository.NewBookingRepo(db)

	gateway := payment.NewClient(cfg.GatewayBaseURL, cfg.GatewayKeyID, cfg.GatewaySecret)
	if !gateway.Enabled() {
		log.Println("payment gateway not configured, bookings confirm without payment")
	}

	authH := handler.NewAuthHandler(cfg, users, tokens)
	venueH := handler.NewVenueHandler(venues)
	wizardH := handler.NewWizardHandler(cfg, sessions, venues, shows, events, showtimes, tiers, sections)
	publicH := handler.NewPublicHandler(shows, venues, events, showtimes, tiers, sections)
	bookingH := handler.NewBookingHandler(bookings, sections, tiers, shows, events, showtimes, gateway)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterOrganizer(e, venueH, wizardH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheMW)
	router.RegisterCustomer(e, bookingH, cfg.JWTSecret)

	// Background consumer for show.published and booking.confirmed.
	go func() {
		if err := queue.StartPlatformConsumer(); err != nil {
			log.Printf("rabbitmq consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
