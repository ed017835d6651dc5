package main

import (
	"fmt"
	"os"
	"social-lab/internal"

	"golang.org/x/term"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if err := internal.LoadConfig(&config); err != nil {
		return exitConfig, err
	}
	m := newMenu(newGatewayClient(config.GatewayURL, config.Timeout), os.Stdin, os.Stdout, config.Colours)
	m.hidden = term.IsTerminal(int(os.Stdin.Fd()))
	if err := m.Run(); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
