// Package server boots the dashboard: configuration, infrastructure
// connections, route tree, and the HTTP (plus optional gRPC) listeners,
// with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/adrialopez/woocommerce-orders/app/repositories"
	"github.com/adrialopez/woocommerce-orders/app/routes"
	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/cache"
	"github.com/adrialopez/woocommerce-orders/pkg/database"
	"github.com/adrialopez/woocommerce-orders/pkg/event"
	"github.com/adrialopez/woocommerce-orders/pkg/grpcserver"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/router"
	"github.com/adrialopez/woocommerce-orders/pkg/storage"
	"github.com/adrialopez/woocommerce-orders/pkg/ws"
)

const shutdownTimeout = 10 * time.Second

// Start boots everything and blocks until the process receives a stop
// signal or the listener fails.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if !config.HasWooCredentials() {
		logger.Warn("credenciales de WooCommerce incompletas; usa /api-test para diagnosticar")
	}

	// Redis degrades to a no-op when unreachable; logins then simply skip
	// the attempt throttle.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis no disponible, límite de intentos deshabilitado", "error", err)
	}
	storage.Connect()

	store, err := buildUserStore()
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()

	event.Listen(event.UserLoggedIn, func(payload interface{}) {
		logger.Info("sesión iniciada", "username", payload)
	})

	r := router.New()
	routes.Register(r, routes.Deps{
		Store:  store,
		Client: woocommerce.New(woocommerce.ConfigFromEnv()),
		Hub:    hub,
	})

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("servidor HTTP iniciado", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	grpcSrv := startGRPC()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("señal recibida, cerrando", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcserver.Stop(grpcSrv)
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("servidor detenido")
	return nil
}

// buildUserStore picks the account store. The memory store is the default;
// AUTH_STORE=database switches to the users table and seeds it on first run.
func buildUserStore() (repositories.UserStore, error) {
	if config.AuthStore() != "database" {
		return repositories.NewMemoryStore(), nil
	}

	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("server: connect database: %w", err)
	}

	store := repositories.NewDBStore(database.DB)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("server: migrate users: %w", err)
	}
	if err := store.Seed(); err != nil {
		return nil, fmt.Errorf("server: seed users: %w", err)
	}

	logger.Info("almacén de usuarios en base de datos", "driver", config.DatabaseDriver())
	return store, nil
}

// startGRPC launches the health listener when GRPC_PORT is set. Returns nil
// when disabled; grpcserver.Stop accepts nil.
func startGRPC() *grpc.Server {
	port := config.GRPCPort()
	if port == "" {
		return nil
	}
	srv, _, err := grpcserver.Start(port)
	if err != nil {
		logger.Error("no se pudo iniciar gRPC", "port", port, "error", err)
		return nil
	}
	return srv
}
