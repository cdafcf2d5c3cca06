package api

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pgoetz/csvclean/pkg/job"
	"github.com/pgoetz/csvclean/pkg/kit"
)

// RegisterMCPTools registers the csvclean MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, cfg Config) {
	registerNormalizeValue(srv, cfg)
	registerCleanRows(srv, cfg)
	registerListKinds(srv, cfg)
}

func registerNormalizeValue(srv *server.MCPServer, cfg Config) {
	tool := mcp.NewTool("normalize_value",
		mcp.WithDescription("Normalize a single cell value: dates to YYYY-MM-DD, numbers to the configured separator convention, phone numbers to E.164. Unparseable values are returned unchanged."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Normalizer kind: date, number, or phone")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The raw cell text")),
	)

	kit.RegisterMCPTool(srv, tool, normalizeValueEndpoint(cfg), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		kind, _ := args["kind"].(string)
		value, _ := args["value"].(string)
		return &normalizeReq{Kind: kind, Value: value}, nil
	})
}

func registerCleanRows(srv *server.MCPServer, cfg Config) {
	tool := mcp.NewTool("clean_rows",
		mcp.WithDescription("Apply column normalization rules to tabular data (up to 10000 rows). Takes a JSON table {columns, rows} and a JSON rules array [{column, kind}]."),
		mcp.WithString("table", mcp.Required(), mcp.Description(`JSON object with "columns" (string array) and "rows" (array of string arrays)`)),
		mcp.WithString("rules", mcp.Required(), mcp.Description(`JSON array of {"column": ..., "kind": date|number|phone|address}`)),
	)

	kit.RegisterMCPTool(srv, tool, cleanRowsEndpoint(cfg), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		tableStr, _ := args["table"].(string)
		rulesStr, _ := args["rules"].(string)

		var decoded cleanReq
		if err := json.Unmarshal([]byte(tableStr), &decoded); err != nil {
			return nil, fmt.Errorf("table: %w", err)
		}
		var rules []job.Rule
		if err := json.Unmarshal([]byte(rulesStr), &rules); err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}
		decoded.Rules = rules
		return &decoded, nil
	})
}

func registerListKinds(srv *server.MCPServer, cfg Config) {
	tool := mcp.NewTool("list_kinds",
		mcp.WithDescription("List the available normalizer kinds with a short description of each."),
	)

	kit.RegisterMCPTool(srv, tool, listKindsEndpoint(cfg), func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
