package main

import "time"

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=50052"`
	AdvertiseAddress  string        `env:"ADVERTISE_ADDRESS,default=localhost:50052"`
	RegistryAddress   string        `env:"REGISTRY_ADDRESS,required=true"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	AuthEnabled       bool          `env:"AUTH_ENABLED,default=true"`
	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	EventBufferSize   int           `env:"EVENT_BUFFER_SIZE,default=256"`
	SinkTimeout       time.Duration `env:"SINK_TIMEOUT,default=2s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
	NatsURL           string        `env:"NATS_URL"`
	NatsStream        string        `env:"NATS_STREAM,default=MESSAGES"`
	NatsSubjectPrefix string        `env:"NATS_SUBJECT_PREFIX,default=social.messages"`
	// Comma separated, moderation is off when empty
	ModerationTerms string `env:"MODERATION_TERMS"`
}
