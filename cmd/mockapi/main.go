// Command mockapi is a local stand-in for the remote storefront collaborator.
// It serves the same envelopes from in-memory fixtures so the client can be
// exercised without network access.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8045", "listen address")
	flag.Parse()

	log := logger.New(logger.Options{ServiceName: "mockapi"})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              *addr,
		Handler:           newServer(log).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info(log.WithField(ctx, "addr", *addr), "mockapi listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "mockapi stopped", err)
		os.Exit(1)
	}
}
