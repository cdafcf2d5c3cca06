package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pgoetz/csvclean/pkg/api"
	"github.com/pgoetz/csvclean/pkg/normalize"
	"gopkg.in/yaml.v3"
)

type serveConfig struct {
	Addr          string                 `yaml:"addr"`
	DefaultRegion string                 `yaml:"default_region"`
	NumberFormat  normalize.NumberFormat `yaml:"number_format"`
	Cache         string                 `yaml:"cache"`
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	mcpMode := fs.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	fs.Parse(args)

	logger := newLogger()
	loadEnv(logger)

	cfg := loadServeConfig(*cfgPath, logger)

	resolver, cleanup, err := buildResolver(cfg.Cache, logger)
	if err != nil {
		logger.Error("build resolver", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	apiCfg := api.Config{
		DefaultRegion: cfg.DefaultRegion,
		NumberFormat:  cfg.NumberFormat,
		Resolver:      resolver,
	}

	if *mcpMode {
		mcpSrv := server.NewMCPServer("csvclean", version)
		api.RegisterMCPTools(mcpSrv, apiCfg)
		logger.Info("serving MCP over stdio")
		if err := server.ServeStdio(mcpSrv); err != nil {
			logger.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(apiCfg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("csvclean listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func loadServeConfig(path string, logger *slog.Logger) serveConfig {
	cfg := serveConfig{
		Addr:          ":8421",
		DefaultRegion: "DE",
		NumberFormat:  normalize.DefaultNumberFormat(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	if cfg.NumberFormat.DecimalSep == "" {
		cfg.NumberFormat.DecimalSep = "."
	}
	if err := cfg.NumberFormat.Validate(); err != nil {
		logger.Error("config number_format", "error", err)
		os.Exit(1)
	}
	return cfg
}
