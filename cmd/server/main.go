package main

import (
	"context"
	"log"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"

	appservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/application/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	domainservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/dataset"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/model"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/monitoring"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/interfaces/http/handlers"
	router "github.com/Tudu-hope/credit-card-delinquency-check/internal/interfaces/http/router"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()

	tracing, err := monitoring.NewTracingManager(cfg, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracing", err)
	}
	defer tracing.Shutdown(ctx)

	metrics := monitoring.NewMetrics()

	// Load the customer table. Without data the service cannot serve scoring
	// traffic, so a failed load is fatal.
	store := dataset.NewStore()
	manager := dataset.NewManager(store, appLogger)
	if err := manager.Load(ctx, cfg.Data.CSVPath, cfg.Thresholds, cfg.Tiers); err != nil {
		appLogger.Fatal(ctx, "failed to load customer data", err, logger.Fields{
			"path": cfg.Data.CSVPath,
		})
	}

	// A missing model artifact degrades scoring but keeps the rule-based
	// endpoints available.
	estimator := loadEstimator(ctx, cfg.Model.ArtifactPath, appLogger)

	cache := gocache.New(5*time.Minute, 10*time.Minute)
	portfolioSvc := appservice.NewPortfolioAppService(store, cache, appLogger)
	interventionSvc := appservice.NewInterventionAppService(store, cfg.Intervention, cache, appLogger)
	customerSvc := appservice.NewCustomerAppService(store, estimator, interventionSvc, metrics, appLogger)

	riskHandler := handlers.NewRiskHandler(portfolioSvc, interventionSvc, customerSvc, appLogger)
	healthHandler := handlers.NewHealthHandler(customerSvc)

	startConfigWatcher(ctx, manager, metrics, store, appLogger)

	r := router.NewRouter(cfg, appLogger, otel.Tracer("delinquency-risk-service"), metrics, healthHandler, riskHandler)
	if err := r.Start(); err != nil {
		appLogger.Fatal(ctx, "HTTP server failed", err)
	}
}

func loadEstimator(ctx context.Context, path string, log logger.Logger) domainservice.DelinquencyEstimator {
	estimator, err := model.LoadArtifact(path)
	if err != nil {
		log.Warn(ctx, "model artifact not loaded, scoring endpoint degraded", logger.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return model.NewUnavailable("artifact not loaded")
	}

	log.Info(ctx, "delinquency model loaded", logger.Fields{
		"path":     path,
		"features": len(estimator.Features()),
	})
	return estimator
}

// startConfigWatcher republishes the scored snapshot when the thresholds or
// tier cut points change on disk. Edits that fail validation are skipped.
func startConfigWatcher(ctx context.Context, manager *dataset.Manager, metrics *monitoring.Metrics, store *dataset.Store, log logger.Logger) {
	path := config.ConfigFileUsed()
	watcher, err := config.NewWatcher(path, func(next *config.Config) {
		manager.Rescore(ctx, next.Thresholds, next.Tiers)
		if snap, err := store.Snapshot(); err == nil {
			metrics.RecordRescore(len(snap.Records))
		}
	}, log)
	if err != nil {
		log.Warn(ctx, "config watcher not started", logger.Fields{"error": err.Error()})
		return
	}
	if watcher == nil {
		return
	}
	go watcher.Run(ctx)
	log.Info(ctx, "watching config file for scoring parameter changes", logger.Fields{"path": path})
}
