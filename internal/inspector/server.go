// Package inspector - HTTP-инспектор поверх собранного снимка мира:
// разрешение селекторов, производные предикаты и выбор цели.
package inspector

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/combo-targeting/internal/combat"
	"github.com/annel0/combo-targeting/internal/logging"
	"github.com/annel0/combo-targeting/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// metricsNamespace - префикс HTTP-метрик инспектора
const metricsNamespace = "inspector"

// Config содержит зависимости инспектора
type Config struct {
	Addr       string               // адрес для запуска, по умолчанию ":8099"
	Classifier *combat.Classifier   // классификатор поверх снимка
	Registry   *prometheus.Registry // nil - глобальный регистр
	Tracing    bool                 // включить otelgin
	Logger     *logging.Logger      // nil - логгер инспектора
	RunID      string               // идентификатор прогона сценария
}

// Server - HTTP-инспектор
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	classifier *combat.Classifier
	metrics    *ProcessMetrics
	logger     *logging.Logger
	runID      string
}

// NewServer создаёт инспектор и настраивает маршруты
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8099"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetInspectorLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.Tracing {
		router.Use(otelgin.Middleware("inspector"))
	}
	router.Use(middleware.NewRequestLogger(cfg.Logger).Handler())

	promMw := middleware.NewPrometheusMiddleware(metricsNamespace, cfg.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	s := &Server{
		router:     router,
		classifier: cfg.Classifier,
		metrics:    NewProcessMetrics(),
		logger:     cfg.Logger,
		runID:      cfg.RunID,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/stats", s.handleStats)
		api.GET("/selectors", s.handleSelectors)
		api.GET("/targets/:selector", s.handleResolve)
		api.POST("/targets/:selector", s.handleTargetSelector)
		api.GET("/party/:id", s.handlePartyIndex)
		api.GET("/heal", s.handleHealTarget)
		api.GET("/combat", s.handleCombat)
		api.GET("/nearby", s.handleNearby)
	}
}

// Handler возвращает http.Handler инспектора (для тестов и встраивания)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start блокирующе обслуживает запросы до Shutdown
func (s *Server) Start() error {
	s.logger.Info("🔎 Инспектор слушает %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown завершает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
