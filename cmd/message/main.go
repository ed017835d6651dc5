package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"social-lab/auth"
	"social-lab/contract"
	"social-lab/domain/event"
	"social-lab/domain/registry"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/infrastructure/grpc/client"
	"social-lab/infrastructure/grpc/server"
	"social-lab/internal"
	"social-lab/moderation"
	"social-lab/repositories"
	"social-lab/runtime/workers"
	"social-lab/services"
	"social-lab/sink"
	"strings"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"google.golang.org/grpc"

	grpc2 "github.com/mama165/sdk-go/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Message service terminated with error: %v\n", err)
		os.Exit(1)
	}
}

// run keeps every defer (badger, NATS, connections) on the exit path.
func run() error {
	// 1. Configuration & Logger
	var config Config
	if err := internal.LoadConfig(&config); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := internal.OpenBadger(ctx, config.BadgerFilepath, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	messageRepository, err := repositories.NewMessageRepository(db, log)
	if err != nil {
		return err
	}
	defer func() { _ = messageRepository.Close() }()
	conversations := services.NewConversationStore(repositories.NewConversationRepository(db, log), log)

	// 3. Notifications
	sinks := []contract.EventSink{sink.NewLogSink(log)}
	if config.NatsURL != "" {
		nc, err := nats.Connect(config.NatsURL, nats.Name(registry.MessageService))
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
		sinks = append(sinks, sink.NewJetStreamSink(log, js, config.NatsSubjectPrefix))
		log.Info("Publishing messages on JetStream", "stream", config.NatsStream, "prefix", config.NatsSubjectPrefix)
	}
	if config.ModerationTerms != "" {
		detector, err := moderation.NewDetector(strings.Split(config.ModerationTerms, ","))
		if err != nil {
			return err
		}
		sinks = append(sinks, sink.NewModerationSink(log, detector))
	}
	events := make(chan event.DomainEvent, config.EventBufferSize)
	chatService := services.NewChatService(log, conversations, messageRepository, events)

	// 4. Registry connection
	registryConn, err := grpc.NewClient(config.RegistryAddress, client.DialOptions()...)
	if err != nil {
		return fmt.Errorf("registry dial failed: %w", err)
	}
	defer func() { _ = registryConn.Close() }()

	// 5. Background workers
	sup := workers.NewSupervisor(log).WithRestartDelay(config.RestartInterval)
	sup.Add(
		workers.NewEventFanout(log, events, config.SinkTimeout, sinks...),
		workers.NewHeartbeatWorker(log, pb.NewRegistryServiceClient(registryConn),
			registry.MessageService, config.AdvertiseAddress, config.HeartbeatInterval),
	)
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	// 6. gRPC Server
	tokenizer := auth.NewTokenizer(config.AuthSecret, time.Hour)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpc2.UnaryLoggingInterceptor(log),
		auth.NewAuthInterceptor(tokenizer, config.AuthEnabled),
	))
	pb.RegisterChatServiceServer(s, server.NewChatServer(log, chatService))

	err = internal.ServeGRPC(ctx, log, s, fmt.Sprintf("%s:%d", config.Host, config.Port))

	// 7. Final Cleanup
	sup.Stop()
	<-supervised
	log.Info("Program stopped cleanly")
	return err
}
