package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pgoetz/csvclean/pkg/job"
)

func cmdClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	jobPath := fs.String("job", "job.yaml", "path to the job manifest")
	input := fs.String("input", "", "override the manifest input file")
	output := fs.String("output", "", "override the manifest output file")
	cachePath := fs.String("cache", "", "SQLite file for persistent address-lookup caching")
	fs.Parse(args)

	logger := newLogger()
	loadEnv(logger)

	j, err := job.Load(*jobPath)
	if err != nil {
		logger.Error("load job", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		j.Input = *input
	}
	if *output != "" {
		j.Output = *output
	}

	resolver, cleanup, err := buildResolver(*cachePath, logger)
	if err != nil {
		logger.Error("build resolver", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := job.Run(ctx, j, resolver, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
