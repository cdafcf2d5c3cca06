// Package main is the csvclean command line tool: it normalizes dates,
// numbers, and phone numbers in CSV columns, and can derive ISO 3166-2
// region codes from address columns.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pgoetz/csvclean/pkg/region"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "clean":
		cmdClean(os.Args[2:])
	case "resolve":
		cmdResolve(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "version":
		fmt.Println("csvclean " + version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: csvclean <command>

Commands:
  clean     Run a cleaning job described by a YAML manifest
  resolve   Resolve one address to an ISO 3166-2 subdivision code
  serve     Start the HTTP API or the MCP stdio server
  version   Print the version
`)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// loadEnv picks up OPENCAGE_API_KEY from a .env file when present.
func loadEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err == nil {
		logger.Info(".env loaded")
	}
}

// buildResolver wires the OpenCage client with a cache. A persistent SQLite
// cache is used when cachePath is set, an in-memory one otherwise. Returns a
// nil resolver when no API key is configured; address rules are then skipped.
func buildResolver(cachePath string, logger *slog.Logger) (region.Resolver, func(), error) {
	apiKey := os.Getenv("OPENCAGE_API_KEY")
	if apiKey == "" {
		logger.Info("OPENCAGE_API_KEY not set, address resolution disabled")
		return nil, func() {}, nil
	}

	base := region.NewOpenCage(apiKey)
	if cachePath == "" {
		return region.WithCache(base, region.NewMemory()), func() {}, nil
	}

	db, err := region.OpenDB(cachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache %s: %w", cachePath, err)
	}
	logger.Info("persistent lookup cache attached", "path", cachePath)
	return region.WithCache(base, db), func() { db.Close() }, nil
}
