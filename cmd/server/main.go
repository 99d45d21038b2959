package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/wemender/vorsilvester/internal/config"
	"github.com/wemender/vorsilvester/internal/handler"
	"github.com/wemender/vorsilvester/internal/middleware"
	"github.com/wemender/vorsilvester/internal/queue"
	"github.com/wemender/vorsilvester/internal/router"
	"github.com/wemender/vorsilvester/internal/store"
)

func main() {
	// Best effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	cfg := config.Load()

	users := store.NewUserStore(cfg.DataDir, cfg.BcryptCost)
	orders := store.NewOrderStore(cfg.DataDir)

	authH := handler.NewAuthHandler(cfg, users)
	orderH := handler.NewOrderHandler(orders)
	orderH.Publish = queue.PublishOrderCreated

	// Consume order.created events in the background; the loop reconnects
	// on its own and never takes the server down.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Secure())
	corsCfg := echomw.DefaultCORSConfig
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization}
		corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	e.Use(echomw.CORSWithConfig(corsCfg))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, authH, orderH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, data=%s)", addr, cfg.Env, cfg.DataDir)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
