package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/export"
	"github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/metrics"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/internal/server"
	"github.com/rhyrak/go-timetable/internal/session"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfgPath := flag.String("config", "", "configuration file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rec, err := metrics.NewPromRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	sc, err := cfg.Scheduler()
	if err != nil {
		return err
	}

	h := server.NewHandler(server.Options{
		Planner:        scheduler.NewPlanner(sc, log, rec),
		Store:          session.NewStore(cfg.Server.SessionTTL),
		Exporter:       export.NewPDFExporter(),
		Logger:         log,
		Metrics:        metrics.Handler(nil),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PageSize:       sc.PageSize,
		Delimiter:      sc.Delimiter,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		DefaultRows:    defaultRows(sc, log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// defaultRows loads the configured course table. Requests that carry their
// own rows do not need it, so a missing file is only a warning.
func defaultRows(sc *scheduler.Configuration, log *zap.Logger) []*model.CourseRow {
	if sc.CoursesFile == "" {
		return nil
	}
	rows, err := csvio.LoadCourseRows(sc.CoursesFile, sc.Delimiter)
	if err != nil {
		log.Warn("default course table not loaded", zap.String("file", sc.CoursesFile), zap.Error(err))
		return nil
	}
	log.Info("default course table loaded", zap.String("file", sc.CoursesFile), zap.Int("rows", len(rows)))
	return rows
}
