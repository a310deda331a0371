package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"starhub/internal/catalog"
	"starhub/internal/events"
	"starhub/internal/logger"
	"starhub/internal/metrics"
	"starhub/internal/middleware"
	"starhub/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()

	if _, err := logger.Init(); err != nil {
		stdlog.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	metrics.Register()

	store := catalog.NewStore()
	client := catalog.NewClient(cfg.UpstreamBase)
	enricher := catalog.NewEnricher(cfg.ImageCDNBase)
	hub := events.NewHub()
	loader := catalog.NewLoader(store, client, enricher, hub)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), metrics.Middleware())

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Star Wars API is running"})
	})

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"cache":      store.Status(),
			"ws_clients": hub.Stats().Clients,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", events.WSHandler(hub))

	h := catalog.NewHandler(store, loader, cfg.PerPage)
	h.RegisterRoutes(router.Group("/api"))

	if cfg.Preload {
		catalog.Preload(loader)
	}

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("HTTP API server listening", "addr", cfg.Addr, "upstream", cfg.UpstreamBase)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zap.S().Infow("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		zap.S().Errorw("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("http shutdown error", "error", err)
	}
	zap.S().Info("server stopped")
}
