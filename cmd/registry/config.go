package main

import "time"

type Config struct {
	Host                string        `env:"HOST,default=0.0.0.0"`
	Port                int           `env:"PORT,default=50050"`
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	ServiceTTL          time.Duration `env:"SERVICE_TTL,default=15s"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL,default=5s"`
}
