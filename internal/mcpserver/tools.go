package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clonehound/clonehound/internal/scanner"
	"github.com/clonehound/clonehound/pkg/analyzer/exact"
	"github.com/clonehound/clonehound/pkg/analyzer/near"
	"github.com/clonehound/clonehound/pkg/analyzer/structural"
	"github.com/clonehound/clonehound/pkg/config"
	"github.com/clonehound/clonehound/pkg/source"
)

// FindInput is the base input for the duplicate-finding tools.
type FindInput struct {
	Paths []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
}

// NearInput adds near-duplicate options.
type NearInput struct {
	FindInput
	Threshold float64 `json:"threshold,omitempty" jsonschema:"Similarity threshold (0.0-1.0). Default 0.8."`
}

func scanFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	scan := scanner.New(config.LoadOrDefault())
	return scan.ScanPaths(paths)
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}, nil, nil
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return toolError(err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(out)}},
	}, data, nil
}

func handleFindExactDuplicates(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, any, error) {
	files, err := scanFiles(input.Paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	result, err := exact.New().Analyze(ctx, files, source.NewFilesystem())
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result)
}

func handleFindNearDuplicates(ctx context.Context, req *mcp.CallToolRequest, input NearInput) (*mcp.CallToolResult, any, error) {
	files, err := scanFiles(input.Paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	threshold := input.Threshold
	if threshold <= 0 {
		threshold = near.DefaultThreshold
	}

	result, err := near.New(near.WithThreshold(threshold)).Analyze(ctx, files, source.NewFilesystem())
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result)
}

func handleFindStructuralDuplicates(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, any, error) {
	files, err := scanFiles(input.Paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	a := structural.New()
	defer a.Close()

	result, err := a.Analyze(ctx, files, source.NewFilesystem())
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result)
}
