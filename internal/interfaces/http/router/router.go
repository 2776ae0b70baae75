// Package http wires the HTTP surface: middleware chain, routes and server
// lifecycle.
package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/application/dto"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/monitoring"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/interfaces/http/handlers"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/interfaces/http/middleware"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// Router owns the gin engine and the HTTP server lifecycle.
type Router struct {
	engine        *gin.Engine
	config        *config.Config
	logger        logger.Logger
	tracer        trace.Tracer
	metrics       *monitoring.Metrics
	healthHandler *handlers.HealthHandler
	riskHandler   *handlers.RiskHandler
	server        *http.Server
}

// NewRouter creates the router.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	tracer trace.Tracer,
	metrics *monitoring.Metrics,
	healthHandler *handlers.HealthHandler,
	riskHandler *handlers.RiskHandler,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	return &Router{
		engine:        gin.New(),
		config:        cfg,
		logger:        log,
		tracer:        tracer,
		metrics:       metrics,
		healthHandler: healthHandler,
		riskHandler:   riskHandler,
	}
}

// SetupRoutes installs the middleware chain and all routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.RequestLogging(r.logger))
	r.engine.Use(middleware.Observability(r.tracer, r.metrics))

	corsConfig := cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Monitoring.PprofEnabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/portfolio-summary", r.riskHandler.PortfolioSummary)
		v1.GET("/signals", r.riskHandler.Signals)
		v1.GET("/risk-distribution", r.riskHandler.RiskDistribution)
		v1.POST("/score-customer", r.riskHandler.ScoreCustomer)
		v1.GET("/customers", r.riskHandler.Customers)
		v1.GET("/feature-importance", r.riskHandler.FeatureImportance)
		v1.GET("/intervention-roi", r.riskHandler.InterventionROI)
		v1.GET("/dashboard-stats", r.riskHandler.DashboardStats)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Detail: "the requested resource was not found",
		})
	})
}

// Start runs the HTTP server until shutdown.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	r.logger.Info(context.Background(), "starting HTTP server", logger.Fields{"address": addr})

	go r.gracefulShutdown()

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (r *Router) gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	r.logger.Info(context.Background(), "shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.server.Shutdown(ctx); err != nil {
		r.logger.Error(context.Background(), "server forced to shutdown", err)
	}
}

// Stop shuts the server down, draining in-flight requests.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.logger.Info(ctx, "stopping HTTP server")
	return r.server.Shutdown(ctx)
}

// Engine exposes the gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
