package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"

	"workshop-booking/cmd/bootstrap"
	"workshop-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Fail safe: never expose debug routes because of a missing setting
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           workshop-booking
// @version         1.0
// @description     Booking lifecycle and appointment confirmation engine.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	// event streams hold their connection until the request context ends
	srv.RegisterOnShutdown(cancelBase)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Serving booking API", "address", ln.Addr().String(), "mode", gin.Mode())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cfg.Server.ShutdownTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
				defer cancel()
			}
			logger.Info("Draining booking API", "timeout", cfg.Server.ShutdownTimeout)
			return srv.Shutdown(ctx)
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		fx.Invoke(startServer),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Booking engine failed to start", "error", err)
		os.Exit(1)
	}

	sig := <-app.Wait()
	slog.Info("Shutting down", "signal", sig.String())

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Booking engine failed to stop cleanly", "error", err)
		os.Exit(1)
	}
}
