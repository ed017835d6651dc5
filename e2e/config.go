package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	RegistryAddr string `envconfig:"REGISTRY_ADDR"`
	AuthAddr     string `envconfig:"AUTH_ADDR"`
	MessageAddr  string `envconfig:"MESSAGE_ADDR"`
	// E2E_DEBUG_JSON allows dumping full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// Enabled reports whether a running platform was pointed at.
func (c Config) Enabled() bool {
	return c.RegistryAddr != "" && c.AuthAddr != "" && c.MessageAddr != ""
}
