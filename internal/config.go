package internal

import (
	goerrors "errors"
	"fmt"
	"io/fs"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// LoadConfig fills cfg from the environment. Variables found in the .env
// files are loaded first and never override variables already set.
func LoadConfig(cfg any, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !goerrors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
