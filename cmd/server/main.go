package main // Entry point package

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/config"
	"github.com/QASchoolUSA/QAXP-Booking/internal/handler"
	"github.com/QASchoolUSA/QAXP-Booking/internal/ledger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/logger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/middleware"
	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
	"github.com/QASchoolUSA/QAXP-Booking/internal/router"
	"github.com/QASchoolUSA/QAXP-Booking/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()
	logger.Init(cfg.Env)
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	rdb := config.NewRedisClient() // may be nil; limiter degrades, redis backend errors out below

	st, err := newStore(cfg, rdb)
	if err != nil {
		log.Fatal("failed to open booking store", zap.Error(err))
	}
	led := ledger.New(st, log)

	e := echo.New()
	e.HideBanner = true

	ah := &handler.AvailabilityHandler{Ledger: led}
	bh := &handler.BookingHandler{
		Ledger:  led,
		BaseURL: cfg.BaseURL,
		Publish: queue.PublishBookingConfirmed,
	}
	router.RegisterRoutes(e)
	router.RegisterAPI(e, ah, bh, middleware.NewRateLimiter(cfg.RateLimit, rdb))

	addr := ":" + cfg.Port
	log.Info("listening",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("store", cfg.StoreBackend),
	)
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// newStore selects the booking store backend from configuration.
func newStore(cfg config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis backend selected but redis is unreachable")
		}
		return store.NewRedisStore(rdb), nil
	case "mysql":
		db, err := store.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return store.NewMySQLStore(db)
	case "file":
		return store.NewFileStore(cfg.StorePath), nil
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
