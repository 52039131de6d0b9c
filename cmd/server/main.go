package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gofigure/adapters/api"
	"gofigure/adapters/excel"
	fitengine "gofigure/adapters/fit"
	"gofigure/adapters/memory"
	"gofigure/adapters/postgres"
	"gofigure/adapters/report"
	statsengine "gofigure/adapters/stats/engine"
	"gofigure/app"
	"gofigure/internal"
	"gofigure/internal/config"
	"gofigure/internal/errors"
	"gofigure/ports"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	repo, cleanup, err := initRepository(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer cleanup()

	service := app.NewAnalysisService(
		statsengine.NewEngine(),
		fitengine.NewEngine(),
		repo,
		report.NewReporter(appConfig.Export.ReportTitle),
		excel.NewResultWriter(),
		logger,
	)
	batch := app.NewBatchService(statsengine.NewEngine(), appConfig.Engine.BatchWorkers, logger)

	apiApp := api.NewApp(service, batch, logger)

	addr := ":" + appConfig.Server.Port
	logger.Info("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, apiApp); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initRepository connects to Postgres when configured, otherwise falls back
// to in-memory persistence.
func initRepository(appConfig *config.Config, logger *internal.Logger) (ports.AnalysisRepository, func(), error) {
	if !appConfig.Database.Enabled() {
		logger.Warn("DATABASE_URL not set, using in-memory persistence")
		return memory.NewAnalysisRepository(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	repo := postgres.NewAnalysisRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.(*postgres.AnalysisRepositoryImpl).EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("Connected to PostgreSQL")
	return repo, func() { db.Close() }, nil
}
