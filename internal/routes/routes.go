package routes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/identity"
	"github.com/spendwise/spendwise/internal/middleware"
	"github.com/spendwise/spendwise/internal/transaction"
)

const summaryCacheTTL = 5 * time.Minute

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *mongo.Database
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce Mongo presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) && d.DB == nil {
		return fmt.Errorf("mongo is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories: Mongo when configured, memory otherwise.
	var (
		userRepo identity.Repository
		txRepo   transaction.Repository
	)
	if d.DB != nil {
		var err error
		userRepo, err = identity.NewMongoRepository(context.Background(), d.DB)
		if err != nil {
			return err
		}
		txRepo, err = transaction.NewMongoRepository(context.Background(), d.DB)
		if err != nil {
			return err
		}
	} else {
		userRepo = identity.NewMemoryRepository()
		txRepo = transaction.NewMemoryRepository()
	}

	var summaryCache *transaction.SummaryCache
	if d.Cache != nil {
		summaryCache = transaction.NewSummaryCache(d.Cache, summaryCacheTTL, d.Logger)
	}

	authSvc := auth.NewService(d.Cfg, userRepo)
	authHandler := auth.NewHandler(authSvc, d.Logger)

	txSvc := transaction.NewService(txRepo, summaryCache)
	txHandler := transaction.NewHandler(txSvc, d.Logger)

	api := app.Group("/api")
	RegisterAuthRoutes(api, authHandler)
	RegisterTransactionRoutes(api, txHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
