package main

import "time"

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=50051"`
	AdvertiseAddress  string        `env:"ADVERTISE_ADDRESS,default=localhost:50051"`
	RegistryAddress   string        `env:"REGISTRY_ADDRESS,required=true"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
}
