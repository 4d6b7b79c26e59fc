package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credvault/internal/app/server/api"
	"credvault/internal/app/server/config"
	"credvault/internal/infrastructure/storage/postgres"
	"credvault/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := config.NewConfig()
	log := logger.New(conf.Env)

	storage, err := postgres.New(conf)
	if err != nil {
		log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	srv := &http.Server{
		Addr:    conf.Server.RunAddress,
		Handler: api.New(storage, log),
	}

	go func() {
		log.Info("server starting", "address", conf.Server.RunAddress, "env", conf.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
