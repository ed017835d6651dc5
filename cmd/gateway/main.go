package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"social-lab/gateway"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/infrastructure/grpc/client"
	"social-lab/internal"
	"social-lab/sink"
	"syscall"

	"github.com/mama165/sdk-go/logs"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Gateway terminated with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var config Config
	if err := internal.LoadConfig(&config); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registryConn, err := grpc.NewClient(config.RegistryAddress, client.DialOptions()...)
	if err != nil {
		return fmt.Errorf("registry dial failed: %w", err)
	}
	defer func() { _ = registryConn.Close() }()

	pool := client.NewConnPool()
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("Failed to close backend connections", "error", err)
		}
	}()

	var follower gateway.Follower
	if config.NatsURL != "" {
		nc, err := nats.Connect(config.NatsURL, nats.Name("gateway"))
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()
		js, err := jetstream.New(nc)
		if err != nil {
			return fmt.Errorf("failed to create jetstream context: %w", err)
		}
		if err := sink.EnsureStream(ctx, js, config.NatsStream, config.NatsSubjectPrefix); err != nil {
			return err
		}
		follower = sink.NewFeed(log, js, config.NatsStream, config.NatsSubjectPrefix)
	} else {
		log.Warn("NATS_URL is not set, the live feed is disabled")
	}

	gw := gateway.NewGateway(log, client.NewRegistryLocator(registryConn), pool,
		pb.NewRegistryServiceClient(registryConn), follower, config.CallTimeout)
	app := gw.App()

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listenErr := make(chan error, 1)
	go func() {
		log.Info("Gateway listening", "address", address)
		listenErr <- app.Listen(address)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("gateway stopped: %w", err)
	case <-ctx.Done():
		log.Info("Shutting down gateway...")
	}
	if err := app.ShutdownWithTimeout(config.ShutdownTimeout); err != nil {
		return fmt.Errorf("gateway shutdown failed: %w", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}
