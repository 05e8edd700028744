// Package main starts the country capture command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	capturecmd "github.com/louisbranch/countrycapture/internal/cmd/capture"
	"github.com/louisbranch/countrycapture/internal/platform/config"
)

func main() {
	cfg, err := capturecmd.ParseConfig()
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := capturecmd.Execute(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("%v", err)
	}
}
