package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tender-crm/internal/app"
	"tender-crm/internal/config"
	"tender-crm/internal/handler"
	"tender-crm/internal/postgres"
	"tender-crm/internal/repo"
	"tender-crm/internal/service"
	"tender-crm/pkg/cache"
	"tender-crm/pkg/trm"
	"tender-crm/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// @title           Tender CRM API
// @version         1.0
// @description     Документация HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	var db *sqlx.DB
	err := utils.Retry(utils.RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
	}, func() error {
		var err error
		db, err = postgres.New(conf.Postgres)
		return err
	})
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	recordRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	cache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	customerService := service.NewCustomerService(logger, txManager, recordRepo, cache)
	lotService := service.NewLotService(logger, txManager, recordRepo, cache)

	customerHandler := handler.NewCustomerHandler(logger, customerService)
	lotHandler := handler.NewLotHandler(logger, lotService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(customerHandler, lotHandler)
	app.SetStarters(cache, cacheWarmUpAdapter{
		warmUppers: []warmUpper{customerService, lotService},
		count:      conf.Cache.Capacity / 2,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	warmUppers []warmUpper
	count      int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, w := range a.warmUppers {
		w := w
		eg.Go(func() error {
			return w.WarmUpCache(ctx, a.count)
		})
	}
	return eg.Wait()
}
