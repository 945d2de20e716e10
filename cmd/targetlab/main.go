package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/combo-targeting/internal/combat"
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/inspector"
	"github.com/annel0/combo-targeting/internal/logging"
	"github.com/annel0/combo-targeting/internal/metrics"
	"github.com/annel0/combo-targeting/internal/observability"
	"github.com/annel0/combo-targeting/internal/scenario"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/gin-gonic/gin"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "Path to scenario YAML (required)")
		configPath   = flag.String("config", "", "Path to config YAML (default: $COMBO_CONFIG or built-in)")
		selectorName = flag.String("selector", "", "Report only this selector")
		serve        = flag.Bool("serve", false, "Start HTTP inspector instead of printing a report")
		addr         = flag.String("addr", "", "Inspector address (default: :inspector.port)")
		withOtel     = flag.Bool("otel", false, "Export inspector traces via OTLP HTTP")
	)
	flag.Parse()

	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if err := initLogging(cfg.Logging); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	fixture, err := sc.Build()
	if err != nil {
		log.Fatalf("❌ Ошибка сборки сценария: %v", err)
	}

	if !*serve {
		if err := printReport(os.Stdout, fixture, cfg, *selectorName); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	if *withOtel {
		cfg.Telemetry.Enabled = true
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	if *addr == "" {
		*addr = fmt.Sprintf(":%d", cfg.Inspector.GetPort())
	}
	if err := runInspector(ctx, fixture, cfg, *addr); err != nil {
		log.Fatalf("❌ Инспектор: %v", err)
	}
}

// initLogging настраивает глобальный логгер и каталог логов компонентов
func initLogging(lc config.LoggingConfig) error {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	if err := logging.InitDefaultLogger("targetlab", lc.Dir); err != nil {
		return err
	}
	logging.GetLoggerManager().SetLogDir(lc.Dir)
	logging.SetDefaultLevels(level)
	return nil
}

func runInspector(ctx context.Context, fixture *scenario.Fixture, cfg *config.Config, addr string) error {
	gin.SetMode(gin.ReleaseMode)

	resolverMetrics := metrics.NewResolverMetrics("targeting", nil)
	resolver := fixture.NewResolver(targeting.WithObserver(resolverMetrics))
	classifier := combat.NewClassifier(resolver, cfg, fixture.World)

	srv := inspector.NewServer(inspector.Config{
		Addr:       addr,
		Classifier: classifier,
		Tracing:    cfg.Telemetry.Enabled,
		RunID:      fixture.RunID.String(),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logging.Info("🎯 Сценарий %q загружен, run=%s", fixture.Name, fixture.RunID)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("🛑 Остановка инспектора...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
