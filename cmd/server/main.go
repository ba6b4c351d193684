package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/seating-areas/internal/clock"
	"github.com/iliyamo/seating-areas/internal/config" // Internal config loader
	"github.com/iliyamo/seating-areas/internal/database"
	"github.com/iliyamo/seating-areas/internal/handler"
	"github.com/iliyamo/seating-areas/internal/logging"
	"github.com/iliyamo/seating-areas/internal/middleware"
	"github.com/iliyamo/seating-areas/internal/queue"
	"github.com/iliyamo/seating-areas/internal/repository"
	"github.com/iliyamo/seating-areas/internal/router" // Internal router setup
	"github.com/iliyamo/seating-areas/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config
	logging.Init(cfg.LogLevel)

	if err := run(cfg); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		logrus.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	// Left nil when disabled so the service sees no transactor/publisher.
	var tx service.Transactor
	if cfg.SyncInTransaction {
		tx = database.NewTransactor(db)
	}
	var pub service.EventPublisher
	if cfg.QueueEnabled {
		pub = queue.NewPublisher(cfg.RabbitURL)
	}
	svc := service.NewSeatingAreaService(
		repository.NewSeatingAreaRepo(db),
		repository.NewBookingRepo(db),
		tx,
		pub,
		clock.NewSystem(),
	)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	router.RegisterRoutes(e, db)
	access := repository.NewAccessRepo(db)
	h := handler.NewSeatingAreaHandler(svc)
	h.Apps = access
	router.RegisterSeatingAreas(e, router.SeatingAreaDeps{
		Handler:   h,
		Access:    access,
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port // Address string with port
		logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.QueueEnabled {
		g.Go(func() error {
			return queue.StartAuditConsumer(ctx, cfg.RabbitURL)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
