package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/olympics-logistics/internal/config"
	"github.com/iliyamo/olympics-logistics/internal/database"
	"github.com/iliyamo/olympics-logistics/internal/handler"
	"github.com/iliyamo/olympics-logistics/internal/logger"
	"github.com/iliyamo/olympics-logistics/internal/metrics"
	"github.com/iliyamo/olympics-logistics/internal/middleware"
	"github.com/iliyamo/olympics-logistics/internal/queue"
	"github.com/iliyamo/olympics-logistics/internal/repository"
	"github.com/iliyamo/olympics-logistics/internal/router"
	"github.com/iliyamo/olympics-logistics/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	members := repository.NewMemberRepo(db)
	events := repository.NewEventRepo(db)
	journeys := repository.NewJourneyRepo(db)
	bookings := repository.NewBookingRepo(db)

	opts := []service.BookingOption{service.WithMetrics(collector)}
	if cfg.RabbitURL != "" {
		opts = append(opts, service.WithNotifier(queue.NewPublisher(cfg.RabbitURL)))
	}
	query := service.NewQueryService(members, events, journeys, bookings)
	agg := service.NewAggregationService(members, events)
	booking := service.NewBookingService(db, members, journeys, bookings, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover(), middleware.Metrics(collector), middleware.RequestLogger())

	router.RegisterRoutes(e, db, metrics.Handler(reg))
	router.RegisterAuth(e, handler.NewAuthHandler(query, cfg.JWTSecret, cfg.AccessTTLMin))
	router.RegisterPublic(e,
		handler.NewEventHandler(struct {
			*service.QueryService
			*service.AggregationService
		}{query, agg}),
		handler.NewJourneyHandler(query),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	router.RegisterMember(e, handler.NewMemberHandler(struct {
		*service.QueryService
		*service.AggregationService
	}{query, agg}), cfg.JWTSecret)
	router.RegisterBooking(e, handler.NewBookingHandler(booking), cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.BookingConsume && cfg.RabbitURL != "" {
		go queue.StartBookingConsumer(ctx, cfg.RabbitURL, cfg.BookingLogPath)
	}

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}
