package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
)

func cmdResolve(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	cachePath := fs.String("cache", "", "SQLite file for persistent address-lookup caching")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: csvclean resolve [--cache <file>] <address>")
		os.Exit(1)
	}
	address := fs.Arg(0)

	logger := newLogger()
	loadEnv(logger)

	resolver, cleanup, err := buildResolver(*cachePath, logger)
	if err != nil {
		logger.Error("build resolver", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	if resolver == nil {
		logger.Error("OPENCAGE_API_KEY is required for resolve")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	code, err := resolver.Resolve(ctx, address)
	if err != nil {
		logger.Error("resolve failed", "error", err)
		os.Exit(1)
	}
	if code == "" {
		fmt.Println("(no code)")
		return
	}
	fmt.Println(code)
}
