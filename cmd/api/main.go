package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/wash91/sitem-washo-distr-sub000/api/controllers"
	"github.com/wash91/sitem-washo-distr-sub000/api/routes"
	"github.com/wash91/sitem-washo-distr-sub000/internal/cashregister"
	"github.com/wash91/sitem-washo-distr-sub000/internal/customers"
	"github.com/wash91/sitem-washo-distr-sub000/internal/expenses"
	"github.com/wash91/sitem-washo-distr-sub000/internal/orders"
	"github.com/wash91/sitem-washo-distr-sub000/internal/products"
	"github.com/wash91/sitem-washo-distr-sub000/internal/receivables"
	"github.com/wash91/sitem-washo-distr-sub000/internal/sales"
	"github.com/wash91/sitem-washo-distr-sub000/internal/trucks"
	"github.com/wash91/sitem-washo-distr-sub000/internal/users"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/config"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/migrate"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()

	userService, err := users.NewService(users.NewRepository(gormDB), cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	customersRepo := customers.NewRepository(gormDB)
	customerService, err := customers.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	productsRepo := products.NewRepository(gormDB)
	productService, err := products.NewService(productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	trucksRepo := trucks.NewRepository(gormDB)
	truckService, err := trucks.NewService(trucksRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create truck service", err)
		os.Exit(1)
	}

	saleService, err := sales.NewService(sales.NewRepository(gormDB), productsRepo, customersRepo, trucksRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sale service", err)
		os.Exit(1)
	}

	expenseService, err := expenses.NewService(expenses.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create expense service", err)
		os.Exit(1)
	}

	receivableService, err := receivables.NewService(receivables.NewRepository(gormDB), customersRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create receivable service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(gormDB), saleService)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	cashService, err := cashregister.NewService(
		cashregister.NewRepository(gormDB),
		dbClient,
		cashregister.DefaultCatalog(),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cash register service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(cfg, logg,
		map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		redisClient,
		routes.Services{
			Users:        userService,
			Customers:    customerService,
			Products:     productService,
			Trucks:       truckService,
			Sales:        saleService,
			Expenses:     expenseService,
			Receivables:  receivableService,
			Orders:       orderService,
			CashRegister: cashService,
		},
	)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
