package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"weatherlog/cli"
	"weatherlog/config"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configRaw)
	if err != nil {
		fail(err)
	}

	cmd, err := cli.New(cfg)
	if err != nil {
		fail(fmt.Errorf("new cli: %w", err))
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		stop()
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
