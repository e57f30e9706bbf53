package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/config"
	"github.com/elfogon/restaurant-reservations/internal/database"
	"github.com/elfogon/restaurant-reservations/internal/handler"
	"github.com/elfogon/restaurant-reservations/internal/middleware"
	"github.com/elfogon/restaurant-reservations/internal/queue"
	"github.com/elfogon/restaurant-reservations/internal/repository"
	"github.com/elfogon/restaurant-reservations/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	zoneRepo := repository.NewZoneRepo(db)
	tableRepo := repository.NewTableRepo(db)
	slotRepo := repository.NewSlotRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	availabilityHandler := handler.NewAvailabilityHandler(slotRepo, reservationRepo)
	reservationHandler := handler.NewReservationHandler(reservationRepo, slotRepo, tableRepo)
	zoneHandler := handler.NewZoneHandler(zoneRepo)
	tableHandler := handler.NewTableHandler(tableRepo, zoneRepo)
	slotHandler := handler.NewSlotHandler(slotRepo)

	// Redis is optional: with no client both middlewares degrade to no-ops.
	rdb := config.NewRedisClient()
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	catalogCache := middleware.NewCatalogCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, availabilityHandler, reservationHandler, zoneHandler, rateLimit, catalogCache)
	router.RegisterStaff(e, zoneHandler, tableHandler, slotHandler, reservationHandler, cfg.JWTSecret)

	// Background consumer turns reservation events into notification log
	// lines. It reconnects on its own; a dead broker never takes the API down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
