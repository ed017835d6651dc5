package main

import "time"

// Config defines the client-side environment variables.
type Config struct {
	GatewayURL string        `env:"GATEWAY_URL,default=http://127.0.0.1:8000"`
	Timeout    time.Duration `env:"CLIENT_TIMEOUT,default=10s"`
	Colours    bool          `env:"CLIENT_COLOURS,default=true"`
}
