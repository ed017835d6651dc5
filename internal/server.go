package internal

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/grpc"
)

// OpenBadger opens the store of a service. Debug logging also turns on
// badger's own debug output.
func OpenBadger(ctx context.Context, path string, log *slog.Logger) (*badger.DB, error) {
	options := badger.DefaultOptions(path)
	if log.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	return db, nil
}

// ServeGRPC serves until ctx is cancelled, then stops gracefully.
func ServeGRPC(ctx context.Context, log *slog.Logger, s *grpc.Server, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		for serviceName := range s.GetServiceInfo() {
			log.Debug("gRPC exposed service", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !goerrors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errChan:
		return err
	}

	log.Info("Shutting down gracefully...")
	s.GracefulStop()
	return nil
}
