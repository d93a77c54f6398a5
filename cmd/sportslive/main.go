package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	a.InitializeLogger()
	a.InitializeConfig()
	a.InitializeDatabase()
	a.InitializeServices(ctx)
	defer a.Close()

	a.StartBackground(ctx)

	if a.config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(a.logger), middleware.Logger(a.logger), middleware.CORS(), middleware.Gzip())
	a.handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + a.config.Port,
		Handler: r,
	}

	go func() {
		a.logger.Infof("[App] starting HTTP server on port %s", a.config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatalf("[App] server failed: %v", err)
		}
	}()

	<-ctx.Done()
	a.logger.Infof("[App] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorf("[App] graceful shutdown failed: %v", err)
	}
}
