package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/homegamehq/homegame/internal/api"
	"github.com/homegamehq/homegame/internal/auth"
	"github.com/homegamehq/homegame/internal/service"
	"github.com/homegamehq/homegame/internal/storage/sqlite"
	"github.com/homegamehq/homegame/pkg/config"
	"github.com/homegamehq/homegame/pkg/logging"
	"github.com/homegamehq/homegame/pkg/metrics"
)

func main() {
	// Load .env in dev; ignore if absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.App.LogLevel)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DB.Path)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	gameMetrics := metrics.NewGameMetrics(registry)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := api.NewRouter(api.Services{
		Auth:        service.NewAuthService(authenticator, jwtManager, logger),
		Groups:      service.NewGroupService(store, logger),
		Games:       service.NewGameService(store, logger, gameMetrics),
		Settlements: service.NewSettlementService(store, logger),
		Payments:    service.NewPaymentService(store, logger),
		Balances:    service.NewBalanceService(store, logger),
	}, jwtManager, logger, registry, httpMetrics)

	// h2c allows HTTP/2 without TLS for clients behind a terminating proxy.
	handler := h2c.NewHandler(corsMiddleware(router), &http2.Server{})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
