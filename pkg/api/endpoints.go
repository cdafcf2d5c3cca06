package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pgoetz/csvclean/pkg/job"
	"github.com/pgoetz/csvclean/pkg/kit"
	"github.com/pgoetz/csvclean/pkg/normalize"
	"github.com/pgoetz/csvclean/pkg/region"
	"github.com/pgoetz/csvclean/pkg/table"
)

// maxCleanRows bounds one in-memory clean request.
const maxCleanRows = 10000

// Config carries the service-wide normalizer settings.
type Config struct {
	DefaultRegion string
	NumberFormat  normalize.NumberFormat
	// Resolver is optional; without it address rules are skipped.
	Resolver region.Resolver
	// Logger receives per-endpoint request logging; nil means slog.Default().
	Logger *slog.Logger
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

// Shared request/response types used by both HTTP and MCP transports.

type normalizeReq struct {
	Kind  string
	Value string
}

type normalizeResp struct {
	Kind    string `json:"kind"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Changed bool   `json:"changed"`
}

type cleanReq struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Rules   []job.Rule `json:"rules"`
}

type cleanResp struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type kindInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type kindsResp struct {
	Kinds []kindInfo `json:"kinds"`
}

func normalizeValueEndpoint(cfg Config) kit.Endpoint {
	ep := func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		fn, err := normalize.For(req.Kind, cfg.NumberFormat, cfg.DefaultRegion)
		if err != nil {
			return nil, err
		}
		out := fn(req.Value)
		return normalizeResp{Kind: req.Kind, Input: req.Value, Output: out, Changed: out != req.Value}, nil
	}
	return kit.Chain(logged("normalize_value", cfg.logger()))(ep)
}

func cleanRowsEndpoint(cfg Config) kit.Endpoint {
	ep := func(ctx context.Context, request any) (any, error) {
		req := request.(*cleanReq)
		if len(req.Columns) == 0 {
			return nil, fmt.Errorf("columns array is empty")
		}
		if len(req.Rows) > maxCleanRows {
			return nil, fmt.Errorf("too many rows (max %d, got %d)", maxCleanRows, len(req.Rows))
		}

		t := &table.Table{Columns: req.Columns}
		for _, row := range req.Rows {
			cells := make([]string, len(req.Columns))
			copy(cells, row)
			t.Rows = append(t.Rows, cells)
		}

		out, err := job.Transform(ctx, t, req.Rules, cfg.NumberFormat, cfg.DefaultRegion, cfg.Resolver, nil)
		if err != nil {
			return nil, err
		}
		return cleanResp{Columns: out.Columns, Rows: out.Rows}, nil
	}
	return kit.Chain(logged("clean_rows", cfg.logger()))(ep)
}

func listKindsEndpoint(cfg Config) kit.Endpoint {
	kinds := []kindInfo{
		{normalize.KindDate, "normalize date text to ISO 8601 (YYYY-MM-DD)"},
		{normalize.KindNumber, "reformat numbers with configured separators and precision"},
		{normalize.KindPhone, "canonicalize phone numbers to E.164"},
		{job.KindAddress, "derive an ISO 3166-2 region-code column from an address column"},
	}
	ep := func(context.Context, any) (any, error) {
		return kindsResp{Kinds: kinds}, nil
	}
	return kit.Chain(logged("list_kinds", cfg.logger()))(ep)
}
