package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/pandukusuma/sendratari-booking/internal/config"
	"github.com/pandukusuma/sendratari-booking/internal/database"
	"github.com/pandukusuma/sendratari-booking/internal/handler"
	"github.com/pandukusuma/sendratari-booking/internal/middleware"
	"github.com/pandukusuma/sendratari-booking/internal/queue"
	"github.com/pandukusuma/sendratari-booking/internal/repository"
	"github.com/pandukusuma/sendratari-booking/internal/router"
	queue_publisher "github.com/pandukusuma/sendratari-booking/internal/service"
	"github.com/pandukusuma/sendratari-booking/internal/session"
	"github.com/pandukusuma/sendratari-booking/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Print("redis unavailable; caching and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	tiers := repository.NewCachedTicketTypeRepo(repository.NewTicketTypeRepo(db), rdb, cacheCfg)
	seats := repository.NewCachedSeatRepo(repository.NewSeatRepo(db), rdb, cacheCfg)
	bookings := repository.NewBookingRepo(db)

	proofs, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	sessions := session.NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterWizard(e,
		handler.NewTicketHandler(tiers, sessions),
		handler.NewSeatHandler(seats, sessions),
		handler.NewFormHandler(sessions),
		handler.NewPaymentHandler(sessions, seats, bookings, proofs, queue_publisher.PublishBookingSubmitted),
		middleware.EnsureSession(sessions, cfg.SessionSecret, cfg.SessionTTLMin),
		middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb),
	)
	// Uploaded payment proofs are public objects; this route is what their
	// public URLs resolve to.
	e.Static("/uploads", proofs.Root())

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
