package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/config"
	"github.com/ndtverified/hours-service/internal/database"
	"github.com/ndtverified/hours-service/internal/handler"
	"github.com/ndtverified/hours-service/internal/middleware"
	"github.com/ndtverified/hours-service/internal/queue"
	"github.com/ndtverified/hours-service/internal/repository"
	"github.com/ndtverified/hours-service/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// Storage strategy: MySQL in normal operation, the in-memory mock
	// store for offline development. Chosen once here; everything
	// downstream sees the same interfaces.
	var store *repository.Store
	if cfg.MockStore {
		log.Println("MOCK_STORE enabled: serving from the in-memory mock store")
		store = repository.NewMockStore()
	} else {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()
		store = repository.NewMySQLStore(db)
	}

	// Redis backs the rate limiter and the lookup-list cache. nil client
	// degrades both to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, store),
		NDT:       handler.NewNDTEntryHandler(store),
		Rope:      handler.NewRopeEntryHandler(store),
		Lookup:    handler.NewLookupHandler(store),
		Profile:   handler.NewProfileHandler(store),
		Signature: handler.NewSignatureHandler(cfg, store),
		Dashboard: handler.NewDashboardHandler(store),
		Admin:     handler.NewAdminHandler(store),
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, h.Auth)
	router.RegisterVerification(e, h.Signature)
	router.RegisterAPI(e, h, cfg.JWTSecret, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Notification consumer drains email.notifications in the
	// background; broker outages are retried without blocking startup.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
