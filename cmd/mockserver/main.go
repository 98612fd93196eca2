package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itswijay/feedhub/internal/logging"
	"github.com/itswijay/feedhub/internal/mockserver"
)

func main() {

	addr := flag.String("a", "localhost:8000", "address to listen on")
	secret := flag.String("s", "dev-secret", "JWT signing secret")
	flag.Parse()

	logger := logging.NewTextLogger(slog.LevelInfo)
	ctx, cancel := context.WithCancel(context.Background())

	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()

	srv := &http.Server{
		Addr:    *addr,
		Handler: mockserver.New(*secret, mockserver.WithLogger(logger)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "backend stub listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}
