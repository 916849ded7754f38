package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"axiapac.com/timeclock/app"
	"axiapac.com/timeclock/web"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml")
	migrate := flag.Bool("migrate", false, "apply database migrations before serving")
	flag.Parse()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, *configPath)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.Close()

	if *migrate {
		if err := a.Migrate(); err != nil {
			a.Logger.Fatal("migration failed", zap.Error(err))
		}
	}

	key, err := a.Config.JWTKey()
	if err != nil {
		a.Logger.Fatal("invalid jwt secret", zap.Error(err))
	}

	router := web.NewRouter(web.RouterOptions{
		JWTSecret:  key,
		Location:   a.Location,
		Logger:     a.Logger.Named("http"),
		Reconciler: a.Reconciler,
		Records:    a.Store,
		Syncer:     a.Runner,
		Credits:    a.Granter,
		Directory:  a.Store,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.Logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("shutdown failed", zap.Error(err))
	}
}
