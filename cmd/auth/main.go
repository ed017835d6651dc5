package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"social-lab/auth"
	"social-lab/domain/registry"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/infrastructure/grpc/client"
	"social-lab/infrastructure/grpc/server"
	"social-lab/internal"
	"social-lab/repositories"
	"social-lab/runtime/workers"
	"social-lab/services"
	"syscall"

	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"

	grpc2 "github.com/mama165/sdk-go/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Auth service terminated with error: %v\n", err)
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

	db, err := internal.OpenBadger(ctx, config.BadgerFilepath, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	tokenizer := auth.NewTokenizer(config.AuthSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(repositories.NewUserRepository(db), tokenizer)

	registryConn, err := grpc.NewClient(config.RegistryAddress, client.DialOptions()...)
	if err != nil {
		return fmt.Errorf("registry dial failed: %w", err)
	}
	defer func() { _ = registryConn.Close() }()

	sup := workers.NewSupervisor(log).WithRestartDelay(config.RestartInterval)
	sup.Add(workers.NewHeartbeatWorker(log, pb.NewRegistryServiceClient(registryConn),
		registry.AuthService, config.AdvertiseAddress, config.HeartbeatInterval))
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc2.UnaryLoggingInterceptor(log)))
	pb.RegisterAuthServiceServer(s, server.NewAuthServer(log, authService))

	err = internal.ServeGRPC(ctx, log, s, fmt.Sprintf("%s:%d", config.Host, config.Port))

	sup.Stop()
	<-supervised
	log.Info("Program stopped cleanly")
	return err
}
