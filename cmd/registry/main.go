package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/infrastructure/grpc/server"
	"social-lab/internal"
	"social-lab/runtime/workers"
	"social-lab/services"
	"syscall"

	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"

	grpc2 "github.com/mama165/sdk-go/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Registry terminated with error: %v\n", err)
		os.Exit(1)
	}
}

// The registry keeps its state in memory: services heartbeat every few
// seconds, so a restarted registry is repopulated within one interval.
func run() error {
	var config Config
	if err := internal.LoadConfig(&config); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serviceRegistry := services.NewServiceRegistry(log, config.ServiceTTL)

	sup := workers.NewSupervisor(log)
	sup.Add(workers.NewHealthMonitoringWorker(log, serviceRegistry.List, config.HealthCheckInterval))
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc2.UnaryLoggingInterceptor(log)))
	pb.RegisterRegistryServiceServer(s, server.NewRegistryServer(serviceRegistry))

	err := internal.ServeGRPC(ctx, log, s, fmt.Sprintf("%s:%d", config.Host, config.Port))

	sup.Stop()
	<-supervised
	log.Info("Program stopped cleanly")
	return err
}
