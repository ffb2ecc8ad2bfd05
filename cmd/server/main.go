package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/xtding233/equity-backend/internal/api/grpcapi"
	"github.com/xtding233/equity-backend/internal/api/httpapi"
	"github.com/xtding233/equity-backend/internal/app"
	"github.com/xtding233/equity-backend/internal/config"
	"github.com/xtding233/equity-backend/internal/otel"
	"github.com/xtding233/equity-backend/internal/preset"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		zap.NewExample().Sugar().Fatalw("load config", "error", err)
	}

	log, err := config.NewLogger(cfg.LogLevel, cfg.DevLog)
	if err != nil {
		zap.NewExample().Sugar().Fatalw("build logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func run(cfg config.Server, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "equity-backend", cfg.Otel)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warnw("tracing shutdown", "error", err)
		}
	}()

	loader := preset.NewLoader(cfg.PresetDir)
	if _, err := loader.Defaults(); err != nil {
		return err
	}
	watcher := preset.NewWatcher(loader.WatchPaths, cfg.WatchInterval, func(path string) {
		log.Infow("preset change detected, invalidating cache", "path", path)
		loader.Invalidate()
	})
	watcher.Start(ctx)
	defer watcher.Stop()

	svc := app.NewConfigService(loader, nil, log.Named("config"))

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	grpcapi.Register(grpcServer, grpcapi.NewServer(svc, log.Named("grpc")))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	if !cfg.DevLog {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(httpapi.NewHandlers(svc, log.Named("http")), log.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Infow("starting grpc server", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()
	go func() {
		log.Infow("starting http server", "addr", cfg.HTTPAddr, "presetDir", cfg.PresetDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err = <-errCh:
		log.Errorw("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		log.Warnw("http shutdown", "error", serr)
	}
	grpcServer.GracefulStop()
	return err
}
