package main

import "time"

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=8000"`
	RegistryAddress   string        `env:"REGISTRY_ADDRESS,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	CallTimeout       time.Duration `env:"CALL_TIMEOUT,default=5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	NatsURL           string        `env:"NATS_URL"`
	NatsStream        string        `env:"NATS_STREAM,default=MESSAGES"`
	NatsSubjectPrefix string        `env:"NATS_SUBJECT_PREFIX,default=social.messages"`
}
