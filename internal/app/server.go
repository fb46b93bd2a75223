package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP in the background. The returned channel is closed when
// the process receives SIGINT, SIGTERM or SIGHUP.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		defer stop()
		<-sigCtx.Done()
		slog.Info("shutdown signal received")
		close(done)
	}()

	return done
}

// Serve is Start without signal handling, on a caller supplied listener.
// The channel yields the server's exit error.
func (a *App) Serve(l net.Listener) <-chan error {
	out := make(chan error, 1)
	go func() {
		defer close(out)
		out <- a.httpServer.Serve(l)
	}()
	return out
}

// Stop stops taking requests, cancels background consumers and waits for
// them, then runs the closers.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "http server shutdown incomplete", "error", err)
	}

	a.cancel()
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background tasks ended with errors", "error", err)
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", c.name, "error", err)
		}
	}
	slog.InfoContext(ctx, "application stopped")
}
