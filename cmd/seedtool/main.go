package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/encounterseed/internal/platform/cmd"
	"github.com/louisbranch/encounterseed/internal/platform/config"
	"github.com/louisbranch/encounterseed/internal/tools/seedtool"
)

func main() {
	cfg, args, err := seedtool.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exit(cmd.ServiceSeedTool, err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceSeedTool, func(ctx context.Context) error {
		return seedtool.New(cfg, os.Stdout, os.Stderr).Run(ctx, args)
	})
	stop()
	config.Exit(cmd.ServiceSeedTool, err)
}
